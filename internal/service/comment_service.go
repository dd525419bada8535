package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const maxCommentLen = 1000

// CommentNotifier is the subset of the notifications publisher the comment
// service needs.
type CommentNotifier interface {
	PublishComment(ctx context.Context, authorUID, commenterUID, postID, commentID string) error
}

// CommentService manages comment threads, their soft-delete lifecycle and
// their per-user like ledger.
type CommentService struct {
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	notifier    CommentNotifier
}

// CreateCommentInput carries one new comment or reply.
type CreateCommentInput struct {
	PostID    string
	AuthorUID string
	Content   string
	ParentID  *string
}

// UpdateCommentInput carries an owner edit of an existing comment.
type UpdateCommentInput struct {
	CommentID string
	AuthorUID string
	Content   string
}

// NewCommentService returns a CommentService backed by the given repositories.
func NewCommentService(
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	notifier CommentNotifier,
) *CommentService {
	return &CommentService{
		userRepo:    userRepo,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notifier:    notifier,
	}
}

func validateCommentContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", models.NewValidationError("Comment content is required")
	}
	// the limit counts characters, not bytes
	if utf8.RuneCountInString(trimmed) > maxCommentLen {
		return "", models.NewValidationError("Comment content too long (max 1000 characters)")
	}
	return trimmed, nil
}

// Create validates and persists a new comment, embedding a point-in-time
// snapshot of the author. PostID and ParentID are opaque: neither is
// existence-checked, a reply to an unknown parent is accepted. When the
// parent does resolve and is itself a reply, the comment is rejected so
// threads stay one level deep.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.PostID == "" || in.AuthorUID == "" {
		return nil, models.NewValidationError("postId and authorUid are required")
	}
	content, err := validateCommentContent(in.Content)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByUID(ctx, in.AuthorUID)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil && *in.ParentID != "" {
		if parent, parentErr := s.commentRepo.GetByID(ctx, *in.ParentID); parentErr == nil {
			if parent.IsReply() {
				return nil, models.NewValidationError("Replies cannot be nested more than one level")
			}
		}
	} else {
		in.ParentID = nil
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		ParentID: in.ParentID,
		Author:   author.AsAuthorSnapshot(),
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if post, postErr := s.postRepo.GetByID(ctx, in.PostID); postErr == nil && post.AuthorUID != author.UID {
			if err := s.notifier.PublishComment(ctx, post.AuthorUID, author.UID, post.ID, comment.ID); err != nil {
				middleware.Logger.WarnContext(ctx, "comment event publish failed", "error", err)
			}
		}
	}

	return comment, nil
}

// ListThread returns the post's comments assembled into threads: parents
// newest-first, each parent's replies oldest-first. Total counts every
// non-deleted comment fetched, including replies whose parent was deleted
// and therefore no longer appears in any thread.
func (s *CommentService) ListThread(ctx context.Context, postID string) ([]models.Thread, int, error) {
	if postID == "" {
		return nil, 0, models.NewValidationError("postId is required")
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}

	threads := make([]models.Thread, 0)
	replies := make(map[string][]models.Comment)
	for _, c := range comments {
		if c.IsReply() {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		} else {
			threads = append(threads, models.Thread{Comment: c})
		}
	}
	// comments arrive newest-first; replies read oldest-first within a
	// thread, so flip each reply list.
	for i := range threads {
		rs := replies[threads[i].ID]
		for l, r := 0, len(rs)-1; l < r; l, r = l+1, r-1 {
			rs[l], rs[r] = rs[r], rs[l]
		}
		if rs == nil {
			rs = []models.Comment{}
		}
		threads[i].Replies = rs
	}

	return threads, len(comments), nil
}

// Update applies an owner edit. Ownership is exact string equality between
// the embedded author snapshot uid and the caller's uid.
func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.CommentID == "" || in.AuthorUID == "" {
		return nil, models.NewValidationError("commentId and authorUid are required")
	}
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.IsDeleted {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.Author.UID != in.AuthorUID {
		return nil, models.NewForbiddenError("Only the comment author can edit it")
	}
	content, err := validateCommentContent(in.Content)
	if err != nil {
		return nil, err
	}
	comment.Content = content
	comment.IsEdited = true
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft-deletes a comment: content is replaced with the sentinel and
// the deleted flag set. Replies are left untouched; they simply stop
// appearing once their parent is filtered from listings.
func (s *CommentService) Delete(ctx context.Context, commentID, authorUID string) error {
	if commentID == "" || authorUID == "" {
		return models.NewValidationError("commentId and authorUid are required")
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.IsDeleted {
		return models.NewNotFoundError("Comment", commentID)
	}
	if comment.Author.UID != authorUID {
		return models.NewForbiddenError("Only the comment author can delete it")
	}
	comment.Content = models.DeletedContentSentinel
	comment.IsDeleted = true
	return s.commentRepo.Update(ctx, comment)
}

// ToggleLike sets the caller's membership in the comment's likedBy set and
// adjusts the like counter to match. The counter only moves up when the
// like actually added a member, but an unlike decrements even when the
// caller was not in the set, so it is never floored at zero.
func (s *CommentService) ToggleLike(ctx context.Context, commentID, uid string, liked bool) (int, error) {
	if commentID == "" || uid == "" {
		return 0, models.NewValidationError("commentId and uid are required")
	}
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return 0, err
	}

	delta := 0
	if liked {
		added, err := s.commentRepo.AddLike(ctx, commentID, uid)
		if err != nil {
			return 0, err
		}
		if added {
			delta = 1
		}
	} else {
		if _, err := s.commentRepo.RemoveLike(ctx, commentID, uid); err != nil {
			return 0, err
		}
		delta = -1
	}
	if delta != 0 {
		if err := s.commentRepo.AdjustLikes(ctx, commentID, delta); err != nil {
			return 0, err
		}
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return 0, err
	}
	return comment.Likes, nil
}
