// Package service contains the business rules of the application.
package service

import (
	"context"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// FollowNotifier is the subset of the notifications publisher the social
// service needs. Publishing is best effort and never fails a request.
type FollowNotifier interface {
	PublishFollow(ctx context.Context, targetUID, followerUID string, following bool) error
}

// SocialService maintains the follow graph between users.
type SocialService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	notifier   FollowNotifier
}

// SetFollowStateInput carries one follow or unfollow request.
type SetFollowStateInput struct {
	CurrentUserUID string
	TargetUserUID  string
	Follow         bool
}

// NewSocialService returns a SocialService backed by the given repositories.
func NewSocialService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notifier FollowNotifier,
) *SocialService {
	return &SocialService{
		userRepo:   userRepo,
		followRepo: followRepo,
		notifier:   notifier,
	}
}

// SetFollowState adds or removes the follow edge between the current user
// and the target, and reports the resulting state from the current user's
// perspective.
//
// The two sides of the edge live in separate tables and are written one
// after the other with no transaction. If the second write fails the first
// is not rolled back, so the edge can be left half-written. Callers see the
// error; the partial state stays.
func (s *SocialService) SetFollowState(ctx context.Context, in SetFollowStateInput) (bool, error) {
	if in.CurrentUserUID == "" || in.TargetUserUID == "" {
		return false, models.NewValidationError("currentUserUid and targetUserUid are required")
	}
	// Rejected before any existence check.
	if in.CurrentUserUID == in.TargetUserUID {
		return false, models.NewInvalidOperationError("Users cannot follow themselves")
	}

	current, err := s.userRepo.GetByUID(ctx, in.CurrentUserUID)
	if err != nil {
		return false, err
	}
	target, err := s.userRepo.GetByUID(ctx, in.TargetUserUID)
	if err != nil {
		return false, err
	}

	if in.Follow {
		if _, err := s.followRepo.AddFollowing(ctx, current.ID, target.ID); err != nil {
			return false, err
		}
		if _, err := s.followRepo.AddFollower(ctx, target.ID, current.ID); err != nil {
			return false, err
		}
		observability.FollowMutationsTotal.WithLabelValues("follow").Inc()
	} else {
		if _, err := s.followRepo.RemoveFollowing(ctx, current.ID, target.ID); err != nil {
			return false, err
		}
		if _, err := s.followRepo.RemoveFollower(ctx, target.ID, current.ID); err != nil {
			return false, err
		}
		observability.FollowMutationsTotal.WithLabelValues("unfollow").Inc()
	}

	if s.notifier != nil {
		if err := s.notifier.PublishFollow(ctx, target.UID, current.UID, in.Follow); err != nil {
			middleware.Logger.WarnContext(ctx, "follow event publish failed", "error", err)
		}
	}

	return in.Follow, nil
}

// ListFollowers resolves uid and expands its followers set into profile
// projections, oldest edge first.
func (s *SocialService) ListFollowers(ctx context.Context, uid string) ([]models.Profile, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	ids, err := s.followRepo.ListFollowerIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.expandProfiles(ctx, ids)
}

// ListFollowing is the symmetric expansion of the following set.
func (s *SocialService) ListFollowing(ctx context.Context, uid string) ([]models.Profile, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	ids, err := s.followRepo.ListFollowingIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.expandProfiles(ctx, ids)
}

// expandProfiles fetches the users behind ids and returns their profiles in
// the same order as ids. Entries that no longer resolve are skipped.
func (s *SocialService) expandProfiles(ctx context.Context, ids []uint) ([]models.Profile, error) {
	users, err := s.userRepo.GetManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	profiles := make([]models.Profile, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			profiles = append(profiles, u.AsProfile())
		}
	}
	return profiles, nil
}
