package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/blogward/blogward/internal/common"
	"github.com/blogward/blogward/internal/server/models"
	"github.com/blogward/blogward/internal/server/repositories/blogs"
)

// CommentService manages the comment sub-resource embedded in blogs. Every
// mutation is a read-modify-write of the full list; two concurrent
// mutations on the same blog race and the second write wins.
type CommentService struct {
	repo blogs.Repository
}

func NewCommentService(repo blogs.Repository) *CommentService {
	return &CommentService{repo: repo}
}

// Add appends a comment to the blog's list and persists it. The owner
// identity is snapshotted into the comment. common.ErrorNotFound when the
// blog does not exist. Returns the number of matched rows (0 or 1).
func (s *CommentService) Add(ctx context.Context, blogID, text string, owner models.Identity) (int64, error) {
	blog, err := s.repo.GetByID(ctx, blogID)
	if err != nil {
		return 0, err
	}

	comment := models.Comment{
		ID:   uuid.NewString(),
		Text: text,
		Owner: models.CommentOwner{
			ID:       owner.ID,
			FullName: owner.FullName,
		},
		OwnerID: owner.ID,
	}

	matched, err := s.repo.ReplaceComments(ctx, blogID, append(blog.Comments, comment))
	if err != nil {
		return 0, fmt.Errorf("error saving comments: %w", err)
	}

	return matched, nil
}

// Remove deletes the first comment whose id AND owner match. A comment
// belonging to someone else is indistinguishable from a missing one:
// common.ErrorNotFound either way, with no mutation. Returns the number of
// matched rows (0 or 1).
func (s *CommentService) Remove(ctx context.Context, blogID, commentID string, requester models.Identity) (int64, error) {
	blog, err := s.repo.GetByID(ctx, blogID)
	if err != nil {
		return 0, err
	}

	target := -1
	for i, c := range blog.Comments {
		if c.ID == commentID && c.OwnerID == requester.ID {
			target = i
			break
		}
	}
	if target == -1 {
		return 0, common.ErrorNotFound
	}

	remaining := append(blog.Comments[:target], blog.Comments[target+1:]...)

	matched, err := s.repo.ReplaceComments(ctx, blogID, remaining)
	if err != nil {
		return 0, fmt.Errorf("error saving comments: %w", err)
	}

	return matched, nil
}
