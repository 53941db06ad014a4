// Package blogs persists blog posts with their embedded comment lists.
package blogs

import (
	"context"

	"github.com/blogward/blogward/internal/server/models"
)

// Repository is the persistence contract of the blog store. Comment
// mutations go through ReplaceComments, which rewrites the embedded list
// whole; there is no finer-grained comment operation on purpose.
type Repository interface {
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	Update(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context) ([]models.Blog, error)
	ReplaceComments(ctx context.Context, blogID string, comments []models.Comment) (int64, error)
}
