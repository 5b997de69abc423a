package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/dbx"
	"github.com/mbelov/microblog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (title, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.AuthorID).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query :=
		`SELECT id, title, content, author_id, created_at, updated_at FROM posts
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		post := &models.Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query :=
		`SELECT id, title, content, author_id, created_at, updated_at FROM posts
		 WHERE id = $1
		 `

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`UPDATE posts SET title = $1, content = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.ID).Scan(&post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM posts
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
