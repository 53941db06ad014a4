// Package httpapi exposes the blogging service over HTTP/JSON. It owns the
// gin router, the authentication/authorization middleware and the
// handlers; all application logic lives in the services it is given.
package httpapi

import (
	"context"

	"github.com/blogward/blogward/internal/server/models"
	"github.com/blogward/blogward/internal/server/services"
)

// UserDirectory is the slice of the user service the HTTP layer needs.
type UserDirectory interface {
	Register(ctx context.Context, fullName, email, rawPassword string) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, email, rawPassword string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
	Update(ctx context.Context, identity models.Identity, input services.UpdateInput) (int64, error)
	Delete(ctx context.Context, identity models.Identity, rawPassword string) (int64, error)
}

// BlogStore is the slice of the blog service the HTTP layer needs.
type BlogStore interface {
	Create(ctx context.Context, title, mainContent string, author models.Identity) (*models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	Update(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context) ([]models.Blog, error)
	AuthorizeOwner(identity models.Identity, blog *models.Blog) bool
}

// CommentManager is the slice of the comment service the HTTP layer needs.
type CommentManager interface {
	Add(ctx context.Context, blogID, text string, owner models.Identity) (int64, error)
	Remove(ctx context.Context, blogID, commentID string, requester models.Identity) (int64, error)
}

var (
	_ UserDirectory  = (*services.UserService)(nil)
	_ BlogStore      = (*services.BlogService)(nil)
	_ CommentManager = (*services.CommentService)(nil)
)
