package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository manages the two independent sides of a follow edge.
// Each side is a membership set persisted in its own table; callers
// mutate the sides separately, so a half-written edge is representable.
type FollowRepository interface {
	AddFollowing(ctx context.Context, userID, targetID uint) (bool, error)
	RemoveFollowing(ctx context.Context, userID, targetID uint) (bool, error)
	AddFollower(ctx context.Context, userID, followerID uint) (bool, error)
	RemoveFollower(ctx context.Context, userID, followerID uint) (bool, error)
	IsFollowing(ctx context.Context, userID, targetID uint) (bool, error)
	ListFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	ListFollowerIDs(ctx context.Context, userID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) AddFollowing(ctx context.Context, userID, targetID uint) (bool, error) {
	entry := models.FollowingEntry{UserID: userID, TargetID: targetID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return false, nil
		}
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) RemoveFollowing(ctx context.Context, userID, targetID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Delete(&models.FollowingEntry{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) AddFollower(ctx context.Context, userID, followerID uint) (bool, error) {
	entry := models.FollowerEntry{UserID: userID, FollowerID: followerID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return false, nil
		}
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) RemoveFollower(ctx context.Context, userID, followerID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.FollowerEntry{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FollowingEntry{}).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) ListFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.FollowingEntry{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) ListFollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.FollowerEntry{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
