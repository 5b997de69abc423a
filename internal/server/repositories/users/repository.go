package users

import (
	"context"

	"github.com/mbelov/microblog/internal/server/models"
)

// Repository is the storage contract for user records. Implementations
// report missing rows as common.ErrorNotFound and duplicate emails as
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
