// Package services contains server-side business logic. This file
// implements UserService: registration, login with token issuance, and
// self-service update/delete.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/dbx"
	"github.com/mbelov/microblog/internal/server/auth"
	"github.com/mbelov/microblog/internal/server/config"
	"github.com/mbelov/microblog/internal/server/models"
	"github.com/mbelov/microblog/internal/server/repositories/repomanager"
)

// UserPatch carries optional field updates for a user. Nil means "leave
// unchanged".
type UserPatch struct {
	Email    *string
	Name     *string
	Password *string
}

// UserService provides identity operations:
//   - Register: hash the password and create the user
//   - Login: verify credentials and mint an access token
//   - Update / Delete: self-service account maintenance
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                *auth.Hasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server
// config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		hasher:                auth.NewHasher(cfg.BcryptCost),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user. A duplicate email yields
// common.ErrorAlreadyExists. The returned user never carries the
// password hash.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies the credentials and returns a signed access token.
// Unknown email and wrong password both yield
// common.ErrorInvalidCredentials so that login failures do not reveal
// whether an email is registered.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		return "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Name, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Update applies the patch to an existing user, re-hashing the password
// when it changes. The load and the write run in one transaction so a
// concurrent update cannot slip in between them. Missing user yields
// common.ErrorNotFound, an email collision common.ErrorAlreadyExists.
// The returned user never carries the password hash.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (*models.User, error) {
	var updated *models.User

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Password != nil {
			hash, err := s.hasher.Hash(*patch.Password)
			if err != nil {
				return fmt.Errorf("error hashing password: %w", err)
			}
			user.PasswordHash = hash
		}

		updated, err = repo.Update(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists) {
				return err
			}
			return fmt.Errorf("error updating user: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	updated.PasswordHash = ""
	return updated, nil
}

// Delete removes the user and returns a confirmation referencing the
// deleted id. Missing user yields common.ErrorNotFound.
func (s *UserService) Delete(ctx context.Context, id int64) (string, error) {
	repo := s.repomanager.Users(s.db)

	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error deleting user: %w", err)
	}

	return fmt.Sprintf("user with id %d deleted", id), nil
}
