package posts

import (
	"context"

	"github.com/mbelov/microblog/internal/server/models"
)

// Repository is the storage contract for post records. Implementations
// report missing rows as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}
