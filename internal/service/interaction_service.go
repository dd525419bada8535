package service

import (
	"context"
	"sort"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// Interaction actions accepted by ApplyInteraction.
const (
	ActionLike   = "like"
	ActionUnlike = "unlike"
	ActionSave   = "save"
	ActionUnsave = "unsave"
)

// InteractionNotifier is the subset of the notifications publisher the
// interaction service needs.
type InteractionNotifier interface {
	PublishInteraction(ctx context.Context, authorUID, actorUID, postID, action string) error
}

// InteractionService maintains the per-user likedPosts and savedPosts sets
// and the denormalized like counter on posts.
type InteractionService struct {
	userRepo        repository.UserRepository
	interactionRepo repository.InteractionRepository
	postRepo        repository.PostRepository
	notifier        InteractionNotifier
}

// ApplyInteractionInput carries one like/unlike/save/unsave request.
type ApplyInteractionInput struct {
	UID      string
	Action   string
	TargetID string
}

// NewInteractionService returns an InteractionService backed by the given
// repositories.
func NewInteractionService(
	userRepo repository.UserRepository,
	interactionRepo repository.InteractionRepository,
	postRepo repository.PostRepository,
	notifier InteractionNotifier,
) *InteractionService {
	return &InteractionService{
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		notifier:        notifier,
	}
}

// Apply performs the requested set mutation and returns the membership set
// of the mutated kind after the operation.
//
// The set write and the counter write are independent. On like/unlike the
// counter is adjusted even when the set membership did not change, and it
// is never floored at zero. The resulting drift is accepted; the set rows
// are the authoritative ledger.
func (s *InteractionService) Apply(ctx context.Context, in ApplyInteractionInput) ([]string, error) {
	if in.UID == "" || in.TargetID == "" || in.Action == "" {
		return nil, models.NewValidationError("uid, action and targetId are required")
	}

	var kind models.InteractionKind
	switch in.Action {
	case ActionLike, ActionUnlike:
		kind = models.InteractionLiked
	case ActionSave, ActionUnsave:
		kind = models.InteractionSaved
	default:
		return nil, models.NewValidationError("Invalid action")
	}

	user, err := s.userRepo.GetByUID(ctx, in.UID)
	if err != nil {
		return nil, err
	}

	var changed bool
	switch in.Action {
	case ActionLike, ActionSave:
		changed, err = s.interactionRepo.Add(ctx, user.ID, in.TargetID, kind)
	case ActionUnlike, ActionUnsave:
		changed, err = s.interactionRepo.Remove(ctx, user.ID, in.TargetID, kind)
	}
	if err != nil {
		return nil, err
	}

	outcome := "noop"
	if changed {
		outcome = "applied"
	}
	observability.InteractionsTotal.WithLabelValues(in.Action, outcome).Inc()

	// Best-effort counter adjustment, applied regardless of whether the
	// set mutation changed anything. Missing posts match zero rows.
	switch in.Action {
	case ActionLike:
		if err := s.postRepo.AdjustLikes(ctx, in.TargetID, 1); err != nil {
			middleware.Logger.WarnContext(ctx, "like counter increment failed", "postId", in.TargetID, "error", err)
		}
	case ActionUnlike:
		if err := s.postRepo.AdjustLikes(ctx, in.TargetID, -1); err != nil {
			middleware.Logger.WarnContext(ctx, "like counter decrement failed", "postId", in.TargetID, "error", err)
		}
	}

	if s.notifier != nil && (in.Action == ActionLike || in.Action == ActionSave) {
		if post, postErr := s.postRepo.GetByID(ctx, in.TargetID); postErr == nil {
			if err := s.notifier.PublishInteraction(ctx, post.AuthorUID, user.UID, post.ID, in.Action); err != nil {
				middleware.Logger.WarnContext(ctx, "interaction event publish failed", "error", err)
			}
		}
	}

	return s.interactionRepo.ListPostIDs(ctx, user.ID, kind)
}

// ListPosts expands the user's set of the given kind into post summaries,
// newest post first. Set entries whose post id no longer resolves are
// dropped from the result.
func (s *InteractionService) ListPosts(ctx context.Context, uid string, kind models.InteractionKind) ([]models.PostSummary, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	ids, err := s.interactionRepo.ListPostIDs(ctx, user.ID, kind)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	summaries := make([]models.PostSummary, 0, len(posts))
	for i := range posts {
		summaries = append(summaries, posts[i].AsSummary())
	}
	return summaries, nil
}
