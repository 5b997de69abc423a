package repomanager

import (
	"context"
	"database/sql"

	"github.com/mbelov/microblog/internal/dbx"
	"github.com/mbelov/microblog/internal/server/repositories/posts"
	"github.com/mbelov/microblog/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
}
