package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/dbx"
	"github.com/mbelov/microblog/internal/server/models"
	"github.com/mbelov/microblog/internal/server/repositories/repomanager"
)

// PostPatch carries optional field updates for a post.
type PostPatch struct {
	Title   *string
	Content *string
}

// PostService provides CRUD operations on posts. The author id always
// comes from the authenticated caller, never from request input.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Create stores a new post authored by authorID.
func (s *PostService) Create(ctx context.Context, authorID int64, title, content string) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.Create(ctx, &models.Post{Title: title, Content: content, AuthorID: authorID})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

// List returns all posts.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	return result, nil
}

// GetByID returns one post, or common.ErrorNotFound.
func (s *PostService) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading post: %w", err)
	}

	return post, nil
}

// Update applies the patch to an existing post. The load and the write
// run in one transaction so a concurrent update cannot slip in between
// them.
func (s *PostService) Update(ctx context.Context, id int64, patch PostPatch) (*models.Post, error) {
	var updated *models.Post

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		post, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error loading post: %w", err)
		}

		if patch.Title != nil {
			post.Title = *patch.Title
		}
		if patch.Content != nil {
			post.Content = *patch.Content
		}

		updated, err = repo.Update(ctx, post)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error updating post: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the post and returns a confirmation referencing the
// deleted id.
func (s *PostService) Delete(ctx context.Context, id int64) (string, error) {
	repo := s.repomanager.Posts(s.db)

	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error deleting post: %w", err)
	}

	return fmt.Sprintf("post with id %d deleted", id), nil
}
