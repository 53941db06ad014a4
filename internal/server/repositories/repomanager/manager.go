// Package repomanager aggregates the per-entity repositories over a single
// database handle and runs schema migrations at startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/blogward/blogward/internal/server/repositories/blogs"
	"github.com/blogward/blogward/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Blogs() blogs.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
