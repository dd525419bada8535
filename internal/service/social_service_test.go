package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFollowStateSelfFollowSkipsLookup(t *testing.T) {
	t.Parallel()

	lookups := 0
	users := &stubUserRepo{
		GetByUIDFn: func(ctx context.Context, uid string) (*models.User, error) {
			lookups++
			return &models.User{UID: uid}, nil
		},
	}
	svc := NewSocialService(users, &stubFollowRepo{}, nil)

	_, err := svc.SetFollowState(context.Background(), SetFollowStateInput{
		CurrentUserUID: "alice",
		TargetUserUID:  "alice",
		Follow:         true,
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_OPERATION", appErr.Code)
	assert.Zero(t, lookups, "self-follow must be rejected before any user lookup")
}

func TestSetFollowStatePartialWriteIsKept(t *testing.T) {
	t.Parallel()

	users := &stubUserRepo{
		GetByUIDFn: func(ctx context.Context, uid string) (*models.User, error) {
			if uid == "alice" {
				return &models.User{ID: 1, UID: "alice"}, nil
			}
			return &models.User{ID: 2, UID: "bob"}, nil
		},
	}

	firstWriteDone := false
	follows := &stubFollowRepo{
		AddFollowingFn: func(ctx context.Context, userID, targetID uint) (bool, error) {
			firstWriteDone = true
			return true, nil
		},
		AddFollowerFn: func(ctx context.Context, userID, followerID uint) (bool, error) {
			return false, errors.New("connection reset")
		},
	}
	svc := NewSocialService(users, follows, nil)

	_, err := svc.SetFollowState(context.Background(), SetFollowStateInput{
		CurrentUserUID: "alice",
		TargetUserUID:  "bob",
		Follow:         true,
	})

	require.Error(t, err)
	// the first side of the edge stays written; there is no rollback
	assert.True(t, firstWriteDone)
}

func TestSetFollowStateValidation(t *testing.T) {
	t.Parallel()

	svc := NewSocialService(&stubUserRepo{}, &stubFollowRepo{}, nil)
	_, err := svc.SetFollowState(context.Background(), SetFollowStateInput{
		CurrentUserUID: "alice",
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestListFollowersSkipsUnresolvableIDs(t *testing.T) {
	t.Parallel()

	users := &stubUserRepo{
		GetByUIDFn: func(ctx context.Context, uid string) (*models.User, error) {
			return &models.User{ID: 1, UID: uid}, nil
		},
		GetManyByIDFn: func(ctx context.Context, ids []uint) ([]models.User, error) {
			// id 3 has been deleted since the edge was written
			return []models.User{{ID: 2, UID: "bob", Name: "Bob"}}, nil
		},
	}
	follows := &stubFollowRepo{
		ListFollowerIDsFn: func(ctx context.Context, userID uint) ([]uint, error) {
			return []uint{2, 3}, nil
		},
	}
	svc := NewSocialService(users, follows, nil)

	profiles, err := svc.ListFollowers(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "bob", profiles[0].UID)
}
