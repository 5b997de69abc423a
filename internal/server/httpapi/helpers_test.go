package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/dbx"
	"github.com/mbelov/microblog/internal/logging"
	"github.com/mbelov/microblog/internal/server/auth"
	"github.com/mbelov/microblog/internal/server/config"
	"github.com/mbelov/microblog/internal/server/models"
	postsrepo "github.com/mbelov/microblog/internal/server/repositories/posts"
	usersrepo "github.com/mbelov/microblog/internal/server/repositories/users"
	"github.com/mbelov/microblog/internal/server/services"
)

const testSecret = "test-secret"

// ---- test logger ----

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// ---- fake repositories ----

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmail map[string]*models.User

	byID map[int64]*models.User

	updateSeen *models.User
	updateErr  error

	deleteSeen []int64
	deleteErr  error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	seen := *u
	f.updateSeen = &seen
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return u, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id int64) error {
	f.deleteSeen = append(f.deleteSeen, id)
	return f.deleteErr
}

type fakePostsRepo struct {
	createSeen *models.Post
	createErr  error

	listOut []*models.Post
	listErr error

	byID map[int64]*models.Post

	updateSeen *models.Post
	updateErr  error

	deleteSeen []int64
	deleteErr  error
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	seen := *p
	f.createSeen = &seen
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = 7
	return p, nil
}

func (f *fakePostsRepo) List(ctx context.Context) ([]*models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listOut == nil {
		return []*models.Post{}, nil
	}
	return f.listOut, nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostsRepo) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	seen := *p
	f.updateSeen = &seen
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return p, nil
}

func (f *fakePostsRepo) Delete(ctx context.Context, id int64) error {
	f.deleteSeen = append(f.deleteSeen, id)
	return f.deleteErr
}

type fakeRepoManager struct {
	users usersrepo.Repository
	posts postsrepo.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return f.users }
func (f *fakeRepoManager) Posts(dbx.DBTX) postsrepo.Repository         { return f.posts }

// ---- server + request helpers ----

func newTestServer(t *testing.T, ur usersrepo.Repository, pr postsrepo.Repository) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// The services open a transaction around their update flows; back
	// them with a sqlmock database. The repositories stay faked, so only
	// the begin/commit/rollback envelope reaches the mock.
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectRollback()

	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		BcryptCost:            4,
	}
	rm := &fakeRepoManager{users: ur, posts: pr}

	return NewServer(":0", nopLogger{},
		services.NewUserService(db, rm, cfg),
		services.NewPostService(db, rm),
		testSecret)
}

func tokenFor(t *testing.T, userID int64, email, name string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, email, name, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return tok
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

// doRawHeaderRequest sends the Authorization header exactly as given,
// without the Bearer prefix doRequest adds.
func doRawHeaderRequest(t *testing.T, s *Server, method, path, header string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.NewHasher(4).Hash(password)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	return h
}
