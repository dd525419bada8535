package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository manages the per-user likedPosts and savedPosts
// membership sets. Post ids are opaque; no existence check is performed.
type InteractionRepository interface {
	Add(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error)
	Remove(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error)
	Has(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error)
	ListPostIDs(ctx context.Context, userID uint, kind models.InteractionKind) ([]string, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository returns a new InteractionRepository implementation.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Add(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error) {
	entry := models.InteractionEntry{UserID: userID, PostID: postID, Kind: kind}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return false, nil
		}
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *interactionRepository) Remove(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, kind).
		Delete(&models.InteractionEntry{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *interactionRepository) Has(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InteractionEntry{}).
		Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, kind).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *interactionRepository) ListPostIDs(ctx context.Context, userID uint, kind models.InteractionKind) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.InteractionEntry{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at ASC").
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
