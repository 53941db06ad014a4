package services

import (
	"context"
	"fmt"
	"time"

	"github.com/blogward/blogward/internal/server/models"
	"github.com/blogward/blogward/internal/server/repositories/blogs"
)

const dateLayout = "2006-01-02"

// BlogService is the blog store: CRUD over posts plus the ownership check
// used by the authorization layer.
type BlogService struct {
	repo blogs.Repository
}

func NewBlogService(repo blogs.Repository) *BlogService {
	return &BlogService{repo: repo}
}

// Create persists a new blog. The author identity is snapshotted into the
// record and stays the owner-of-record for later authorization checks.
// CreatedDate carries date-only granularity.
func (s *BlogService) Create(ctx context.Context, title, mainContent string, author models.Identity) (*models.Blog, error) {
	blog := &models.Blog{
		Title: title,
		Author: models.AuthorRef{
			ID:       author.ID,
			Email:    author.Email,
			FullName: author.FullName,
		},
		MainContent: mainContent,
		CreatedDate: time.Now().UTC().Format(dateLayout),
		Comments:    []models.Comment{},
	}

	blog, err := s.repo.Create(ctx, blog)
	if err != nil {
		return nil, fmt.Errorf("error creating blog: %w", err)
	}

	return blog, nil
}

// GetByID returns the blog or common.ErrorNotFound.
func (s *BlogService) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a shallow field patch and returns the pre-update snapshot,
// or common.ErrorNotFound. Comments are never touched by a patch.
func (s *BlogService) Update(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the blog by id. A zero count for an unknown id is not an
// error.
func (s *BlogService) Delete(ctx context.Context, id string) (int64, error) {
	return s.repo.Delete(ctx, id)
}

// List returns all blogs with their embedded comment lists.
func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.repo.List(ctx)
}

// AuthorizeOwner reports whether identity is the blog's author. The check
// compares immutable user ids, not emails, so a later email change cannot
// reassign ownership.
func (s *BlogService) AuthorizeOwner(identity models.Identity, blog *models.Blog) bool {
	return blog != nil && identity.ID != "" && identity.ID == blog.Author.ID
}
