package service

import (
	"context"
	"time"

	"inkwell/internal/models"
)

// Function-field stubs. An unset function field panics when called, so
// each test declares exactly the calls it expects.

type stubUserRepo struct {
	GetByUIDFn    func(ctx context.Context, uid string) (*models.User, error)
	GetManyByIDFn func(ctx context.Context, ids []uint) ([]models.User, error)
}

func (s *stubUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	return s.GetByUIDFn(ctx, uid)
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (s *stubUserRepo) GetManyByID(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.GetManyByIDFn(ctx, ids)
}
func (s *stubUserRepo) Create(context.Context, *models.User) error        { return nil }
func (s *stubUserRepo) Update(context.Context, *models.User) error        { return nil }
func (s *stubUserRepo) Delete(context.Context, string) error              { return nil }
func (s *stubUserRepo) List(context.Context, int, int) ([]models.User, error) {
	return nil, nil
}

type stubFollowRepo struct {
	AddFollowingFn     func(ctx context.Context, userID, targetID uint) (bool, error)
	AddFollowerFn      func(ctx context.Context, userID, followerID uint) (bool, error)
	RemoveFollowingFn  func(ctx context.Context, userID, targetID uint) (bool, error)
	RemoveFollowerFn   func(ctx context.Context, userID, followerID uint) (bool, error)
	ListFollowingIDsFn func(ctx context.Context, userID uint) ([]uint, error)
	ListFollowerIDsFn  func(ctx context.Context, userID uint) ([]uint, error)
}

func (s *stubFollowRepo) AddFollowing(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.AddFollowingFn(ctx, userID, targetID)
}
func (s *stubFollowRepo) RemoveFollowing(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.RemoveFollowingFn(ctx, userID, targetID)
}
func (s *stubFollowRepo) AddFollower(ctx context.Context, userID, followerID uint) (bool, error) {
	return s.AddFollowerFn(ctx, userID, followerID)
}
func (s *stubFollowRepo) RemoveFollower(ctx context.Context, userID, followerID uint) (bool, error) {
	return s.RemoveFollowerFn(ctx, userID, followerID)
}
func (s *stubFollowRepo) IsFollowing(context.Context, uint, uint) (bool, error) { return false, nil }
func (s *stubFollowRepo) ListFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.ListFollowingIDsFn(ctx, userID)
}
func (s *stubFollowRepo) ListFollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.ListFollowerIDsFn(ctx, userID)
}

type stubInteractionRepo struct {
	AddFn         func(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error)
	RemoveFn      func(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error)
	ListPostIDsFn func(ctx context.Context, userID uint, kind models.InteractionKind) ([]string, error)
}

func (s *stubInteractionRepo) Add(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error) {
	return s.AddFn(ctx, userID, postID, kind)
}
func (s *stubInteractionRepo) Remove(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error) {
	return s.RemoveFn(ctx, userID, postID, kind)
}
func (s *stubInteractionRepo) Has(context.Context, uint, string, models.InteractionKind) (bool, error) {
	return false, nil
}
func (s *stubInteractionRepo) ListPostIDs(ctx context.Context, userID uint, kind models.InteractionKind) ([]string, error) {
	return s.ListPostIDsFn(ctx, userID, kind)
}

type stubPostRepo struct {
	FindRecentByTitleFn func(ctx context.Context, title string, since time.Time) ([]models.Post, error)
	AdjustLikesFn       func(ctx context.Context, id string, delta int) error
	CreateFn            func(ctx context.Context, post *models.Post) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	return s.CreateFn(ctx, post)
}
func (s *stubPostRepo) GetByID(context.Context, string) (*models.Post, error) { return nil, nil }
func (s *stubPostRepo) GetManyByID(context.Context, []string) ([]models.Post, error) {
	return nil, nil
}
func (s *stubPostRepo) List(context.Context, string, int, int) ([]models.Post, int64, error) {
	return nil, 0, nil
}
func (s *stubPostRepo) Update(context.Context, *models.Post) error { return nil }
func (s *stubPostRepo) ReplaceSections(context.Context, string, []models.Section) error {
	return nil
}
func (s *stubPostRepo) Delete(context.Context, string) error { return nil }
func (s *stubPostRepo) FindRecentByTitle(ctx context.Context, title string, since time.Time) ([]models.Post, error) {
	return s.FindRecentByTitleFn(ctx, title, since)
}
func (s *stubPostRepo) AdjustLikes(ctx context.Context, id string, delta int) error {
	return s.AdjustLikesFn(ctx, id, delta)
}
func (s *stubPostRepo) IncrementViews(context.Context, string) error { return nil }

type stubCommentRepo struct {
	ListByPostFn func(ctx context.Context, postID string) ([]models.Comment, error)
	GetByIDFn    func(ctx context.Context, id string) (*models.Comment, error)
}

func (s *stubCommentRepo) Create(context.Context, *models.Comment) error { return nil }
func (s *stubCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *stubCommentRepo) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.ListByPostFn(ctx, postID)
}
func (s *stubCommentRepo) Update(context.Context, *models.Comment) error { return nil }
func (s *stubCommentRepo) AddLike(context.Context, string, string) (bool, error) {
	return false, nil
}
func (s *stubCommentRepo) RemoveLike(context.Context, string, string) (bool, error) {
	return false, nil
}
func (s *stubCommentRepo) AdjustLikes(context.Context, string, int) error { return nil }
