package httpapi

import (
	"math"
	"net/http"
	"testing"

	"github.com/mbelov/microblog/internal/server/auth"
	"github.com/mbelov/microblog/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestAllowOwner(t *testing.T) {
	tests := []struct {
		name       string
		claims     *auth.Claims
		resourceID int64
		want       bool
	}{
		{"match", &auth.Claims{UserID: 5}, 5, true},
		{"mismatch", &auth.Claims{UserID: 5}, 6, false},
		{"nil claims", nil, 5, false},
		{"zero ids", &auth.Claims{UserID: 0}, 0, true},
		{"negative resource", &auth.Claims{UserID: 5}, -5, false},
		{"max int64", &auth.Claims{UserID: math.MaxInt64}, math.MaxInt64, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allowOwner(tt.claims, tt.resourceID))
		})
	}
}

func TestRequireSelf_Mismatch(t *testing.T) {
	users := &fakeUsersRepo{}
	s := newTestServer(t, users, &fakePostsRepo{})

	tok := tokenFor(t, 1, "a@b.io", "a")
	w := doRequest(t, s, http.MethodDelete, "/users/2", tok, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decodeBody(t, w)["error"])
	assert.Empty(t, users.deleteSeen, "handler must not run for another user's id")
}

func TestRequireSelf_Match(t *testing.T) {
	users := &fakeUsersRepo{}
	s := newTestServer(t, users, &fakePostsRepo{})

	tok := tokenFor(t, 2, "a@b.io", "a")
	w := doRequest(t, s, http.MethodDelete, "/users/2", tok, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{2}, users.deleteSeen)
}

func TestRequireSelf_InvalidID(t *testing.T) {
	s := newTestServer(t, &fakeUsersRepo{}, &fakePostsRepo{})

	tok := tokenFor(t, 1, "a@b.io", "a")
	w := doRequest(t, s, http.MethodDelete, "/users/abc", tok, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequirePostAuthor_Match(t *testing.T) {
	posts := &fakePostsRepo{byID: map[int64]*models.Post{
		9: {ID: 9, Title: "t", Content: "c", AuthorID: 4},
	}}
	s := newTestServer(t, &fakeUsersRepo{}, posts)

	tok := tokenFor(t, 4, "a@b.io", "a")
	w := doRequest(t, s, http.MethodDelete, "/posts/9", tok, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{9}, posts.deleteSeen)
}

func TestRequirePostAuthor_NotAuthor(t *testing.T) {
	posts := &fakePostsRepo{byID: map[int64]*models.Post{
		9: {ID: 9, Title: "t", Content: "c", AuthorID: 4},
	}}
	s := newTestServer(t, &fakeUsersRepo{}, posts)

	tok := tokenFor(t, 5, "a@b.io", "a")
	w := doRequest(t, s, http.MethodDelete, "/posts/9", tok, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, posts.deleteSeen, "handler must not run for another author's post")
}

// The guard compares the caller's id with the stored author id, never
// with the post id itself.
func TestRequirePostAuthor_PostIDEqualsCallerID(t *testing.T) {
	posts := &fakePostsRepo{byID: map[int64]*models.Post{
		5: {ID: 5, Title: "t", Content: "c", AuthorID: 4},
	}}
	s := newTestServer(t, &fakeUsersRepo{}, posts)

	tok := tokenFor(t, 5, "a@b.io", "a")
	w := doRequest(t, s, http.MethodDelete, "/posts/5", tok, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePostAuthor_PostNotFound(t *testing.T) {
	posts := &fakePostsRepo{byID: map[int64]*models.Post{}}
	s := newTestServer(t, &fakeUsersRepo{}, posts)

	tok := tokenFor(t, 4, "a@b.io", "a")
	w := doRequest(t, s, http.MethodDelete, "/posts/9", tok, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
