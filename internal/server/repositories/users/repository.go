// Package users persists account records.
package users

import (
	"context"

	"github.com/blogward/blogward/internal/server/models"
)

// Repository is the persistence contract of the user directory.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context) ([]models.User, error)
}
