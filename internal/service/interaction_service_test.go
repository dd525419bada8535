package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okUserRepo() *stubUserRepo {
	return &stubUserRepo{
		GetByUIDFn: func(ctx context.Context, uid string) (*models.User, error) {
			return &models.User{ID: 7, UID: uid}, nil
		},
	}
}

func TestApplyUnlikeNoopStillDecrements(t *testing.T) {
	t.Parallel()

	interactions := &stubInteractionRepo{
		RemoveFn: func(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error) {
			return false, nil // nothing to remove
		},
		ListPostIDsFn: func(ctx context.Context, userID uint, kind models.InteractionKind) ([]string, error) {
			return []string{}, nil
		},
	}

	var adjusted []int
	posts := &stubPostRepo{
		AdjustLikesFn: func(ctx context.Context, id string, delta int) error {
			adjusted = append(adjusted, delta)
			return nil
		},
	}
	svc := NewInteractionService(okUserRepo(), interactions, posts, nil)

	_, err := svc.Apply(context.Background(), ApplyInteractionInput{
		UID: "reader", Action: ActionUnlike, TargetID: "post-1",
	})
	require.NoError(t, err)
	// the counter moves even though the set did not
	assert.Equal(t, []int{-1}, adjusted)
}

func TestApplySaveLeavesCounterAlone(t *testing.T) {
	t.Parallel()

	interactions := &stubInteractionRepo{
		AddFn: func(ctx context.Context, userID uint, postID string, kind models.InteractionKind) (bool, error) {
			assert.Equal(t, models.InteractionSaved, kind)
			return true, nil
		},
		ListPostIDsFn: func(ctx context.Context, userID uint, kind models.InteractionKind) ([]string, error) {
			return []string{"post-1"}, nil
		},
	}
	posts := &stubPostRepo{
		AdjustLikesFn: func(ctx context.Context, id string, delta int) error {
			t.Fatal("save must not touch the like counter")
			return nil
		},
	}
	svc := NewInteractionService(okUserRepo(), interactions, posts, nil)

	ids, err := svc.Apply(context.Background(), ApplyInteractionInput{
		UID: "reader", Action: ActionSave, TargetID: "post-1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"post-1"}, ids)
}

func TestApplyInvalidAction(t *testing.T) {
	t.Parallel()

	svc := NewInteractionService(okUserRepo(), &stubInteractionRepo{}, &stubPostRepo{}, nil)
	_, err := svc.Apply(context.Background(), ApplyInteractionInput{
		UID: "reader", Action: "boost", TargetID: "post-1",
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
