package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages user accounts and profile data.
type UserService struct {
	userRepo repository.UserRepository
}

// CreateUserInput carries a signup-confirmation payload. Password is
// optional; identity normally lives with the external provider.
type CreateUserInput struct {
	UID      string
	Name     string
	Email    string
	Password string
	Bio      string
	Location string
	Avatar   string
	Website  string
}

// UpdateUserInput carries a self-service profile edit. Empty fields are
// left untouched.
type UpdateUserInput struct {
	UID      string
	Name     string
	Bio      string
	Location string
	Avatar   string
	Website  string
}

// NewUserService returns a UserService backed by the given repository.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers a new user. Duplicate uid or email fails with Conflict.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.UID = strings.TrimSpace(in.UID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.UID == "" || in.Name == "" || in.Email == "" {
		return nil, models.NewValidationError("uid, name and email are required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, models.NewValidationError("Invalid email address")
	}

	user := &models.User{
		UID:      in.UID,
		Name:     in.Name,
		Email:    in.Email,
		Bio:      in.Bio,
		Location: in.Location,
		Avatar:   in.Avatar,
		Website:  in.Website,
	}

	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, models.NewValidationError("Password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the user by external uid, cache-aside.
func (s *UserService) Get(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, models.NewValidationError("uid is required")
	}
	return cache.CacheAside(ctx, cache.UserKey(uid), cache.UserTTL, func() (*models.User, error) {
		return s.userRepo.GetByUID(ctx, uid)
	})
}

func (s *UserService) invalidate(ctx context.Context, uid string) {
	if err := cache.Invalidate(ctx, cache.UserKey(uid)); err != nil {
		middleware.Logger.WarnContext(ctx, "user cache invalidation failed", "uid", uid, "error", err)
	}
}

// List returns a page of users, newest first.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(ctx, limit, offset)
}

// Update applies a self-service profile edit. Posts and comments keep the
// author snapshot taken at their creation; profile edits do not propagate.
func (s *UserService) Update(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.UID == "" {
		return nil, models.NewValidationError("uid is required")
	}
	user, err := s.userRepo.GetByUID(ctx, in.UID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.Website != "" {
		user.Website = in.Website
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, in.UID)
	return user, nil
}

// Delete removes the account (soft delete at the storage layer).
func (s *UserService) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return models.NewValidationError("uid is required")
	}
	if _, err := s.userRepo.GetByUID(ctx, uid); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return err
	}
	s.invalidate(ctx, uid)
	return nil
}

// SyncVerification records a verification callback from the identity
// provider and stamps the last login time.
func (s *UserService) SyncVerification(ctx context.Context, uid string, verified bool) (*models.User, error) {
	if uid == "" {
		return nil, models.NewValidationError("uid is required")
	}
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	user.IsVerified = verified
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, uid)
	return user, nil
}
