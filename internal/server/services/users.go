// Package services implements the application logic of the blogging
// service on top of the repositories: the user directory, the blog store
// and the comment sub-resource manager.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogward/blogward/internal/common"
	"github.com/blogward/blogward/internal/server/auth"
	"github.com/blogward/blogward/internal/server/config"
	"github.com/blogward/blogward/internal/server/models"
	"github.com/blogward/blogward/internal/server/repositories/users"
)

// UserService is the user directory: registration, authentication and
// self-service account maintenance.
type UserService struct {
	repo          users.Repository
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:          repo,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
	}
}

// NormalizeEmail lowercases and trims an email address. All storage and
// lookups go through this, so addresses differing only by case are the same
// account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. common.ErrorAlreadyExists when a live
// user shares the normalized email.
func (s *UserService) Register(ctx context.Context, fullName, email, rawPassword string) (*models.User, error) {
	email = NormalizeEmail(email)

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := auth.HashPassword(rawPassword, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// EmailTaken reports whether a live user holds the normalized email.
func (s *UserService) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("error checking email: %w", err)
}

// Login verifies the credentials and issues a signed session token.
// common.ErrorNotFound when no user holds the email,
// common.ErrorUnauthorized when the password does not verify.
func (s *UserService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(rawPassword, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Authenticate resolves a bearer token to the identity it encodes,
// hydrating the live user record and stripping the password hash. Any
// failure along the way is common.ErrInvalidToken; an empty token is
// common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	identity := user.Identity()
	return &identity, nil
}

// GetByID returns the user record for id or common.ErrorNotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// UpdateInput is the self-service account patch. A present Password is
// re-hashed before persisting; other fields are applied verbatim.
type UpdateInput struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Update patches the identity's own record. Returns the number of matched
// rows (0 or 1).
func (s *UserService) Update(ctx context.Context, identity models.Identity, input UpdateInput) (int64, error) {
	patch := models.UserPatch{FullName: input.FullName}

	if input.Email != nil {
		normalized := NormalizeEmail(*input.Email)
		patch.Email = &normalized
	}

	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return 0, fmt.Errorf("error hashing password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	matched, err := s.repo.Update(ctx, identity.ID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return 0, common.ErrorAlreadyExists
		}
		return 0, fmt.Errorf("error updating user: %w", err)
	}

	return matched, nil
}

// Delete removes the identity's own record after re-verifying the
// password. Fails closed: a wrong password yields a zero count and no
// mutation.
func (s *UserService) Delete(ctx context.Context, identity models.Identity, rawPassword string) (int64, error) {
	user, err := s.repo.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(rawPassword, user.PasswordHash) {
		return 0, nil
	}

	deleted, err := s.repo.Delete(ctx, identity.ID)
	if err != nil {
		return 0, fmt.Errorf("error deleting user: %w", err)
	}

	return deleted, nil
}
