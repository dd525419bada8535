package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// duplicateWindow is the trailing interval inside which a publish with an
// identical fingerprint is treated as a double submission.
const duplicateWindow = 30 * time.Second

// PostNotifier is the subset of the notifications publisher the publish
// service needs.
type PostNotifier interface {
	PublishPostCreated(ctx context.Context, authorUID, postID string, duplicate bool) error
}

// PublishService owns the post lifecycle, including the duplicate guard
// applied on publish.
type PublishService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	notifier PostNotifier
	now      func() time.Time
}

// SectionInput is one ordered content block of a publish request.
type SectionInput struct {
	SubHeading string `json:"subHeading"`
	Content    string `json:"content"`
}

// CreatePostInput carries one publish request.
type CreatePostInput struct {
	Title           string
	Category        string
	Summary         string
	Sections        []SectionInput
	TableOfContents []string
	Tags            []string
	ReadTime        string
	AuthorUID       string
}

// UpdatePostInput carries an owner edit of an existing post.
type UpdatePostInput struct {
	PostID    string
	AuthorUID string
	Title     string
	Category  string
	Summary   string
	Sections  []SectionInput
	Tags      []string
	ReadTime  string
}

// CreatePostResult reports the outcome of a publish: either a freshly
// created post, or the post an identical recent submission already created.
type CreatePostResult struct {
	Post      *models.Post
	Duplicate bool
}

// NewPublishService returns a PublishService backed by the given
// repositories. The clock defaults to time.Now.
func NewPublishService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	notifier PostNotifier,
) *PublishService {
	return &PublishService{
		userRepo: userRepo,
		postRepo: postRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetClock overrides the duplicate-guard clock. Intended for tests.
func (s *PublishService) SetClock(now func() time.Time) {
	s.now = now
}

// fingerprintMatch reports whether an existing post carries the same
// publish fingerprint as the incoming request: title, summary and the
// content of the first section.
func fingerprintMatch(existing *models.Post, in CreatePostInput) bool {
	if existing.Title != in.Title || existing.Summary != in.Summary {
		return false
	}
	if len(existing.Sections) == 0 || len(in.Sections) == 0 {
		return false
	}
	return existing.Sections[0].Content == in.Sections[0].Content
}

// CreatePost publishes a post after running the duplicate guard: if any
// post with an identical fingerprint exists within the trailing 30
// seconds, no new post is created and the existing id is returned with
// Duplicate set. The guard is global, not per author; the author is
// resolved before it runs, so an unknown uid is a not-found even when a
// matching post exists. The window is best effort, not a uniqueness
// constraint; the same payload resubmitted after the window creates a
// distinct post.
func (s *PublishService) CreatePost(ctx context.Context, in CreatePostInput) (*CreatePostResult, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.AuthorUID == "" {
		return nil, models.NewValidationError("authorUid is required")
	}
	if len(in.Sections) == 0 {
		return nil, models.NewValidationError("At least one section is required")
	}

	author, err := s.userRepo.GetByUID(ctx, in.AuthorUID)
	if err != nil {
		return nil, err
	}

	since := s.now().Add(-duplicateWindow)
	recent, err := s.postRepo.FindRecentByTitle(ctx, in.Title, since)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		if fingerprintMatch(&recent[i], in) {
			observability.DuplicatePublishesTotal.Inc()
			s.announce(ctx, author.UID, recent[i].ID, true)
			return &CreatePostResult{Post: &recent[i], Duplicate: true}, nil
		}
	}

	category := in.Category
	if category == "" {
		category = "Uncategorized"
	}
	readTime := in.ReadTime
	if readTime == "" {
		readTime = "5 min read"
	}
	post := &models.Post{
		Title:           in.Title,
		Category:        category,
		Summary:         in.Summary,
		Author:          author.AsAuthorSnapshot(),
		AuthorUID:       author.UID,
		TableOfContents: in.TableOfContents,
		Tags:            in.Tags,
		ReadTime:        readTime,
		Published:       true,
		CreatedAt:       s.now(),
	}
	for i, sec := range in.Sections {
		post.Sections = append(post.Sections, models.Section{
			Position:   i,
			SubHeading: sec.SubHeading,
			Content:    sec.Content,
		})
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.invalidateListings(ctx)
	s.announce(ctx, author.UID, post.ID, false)

	return &CreatePostResult{Post: post}, nil
}

// GetPost returns the post by id and best-effort bumps its view counter.
func (s *PublishService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if id == "" {
		return nil, models.NewValidationError("Post id is required")
	}
	post, err := cache.CacheAside(ctx, cache.PostKey(id), cache.PostTTL, func() (*models.Post, error) {
		return s.postRepo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		middleware.Logger.WarnContext(ctx, "view counter increment failed", "postId", id, "error", err)
	}
	return post, nil
}

type postPage struct {
	Posts []models.Post `json:"posts"`
	Total int64         `json:"total"`
}

// ListPosts returns published posts newest-first. Uncategorized listings
// are served cache-aside with a short TTL.
func (s *PublishService) ListPosts(ctx context.Context, category string, page, limit int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	load := func() (postPage, error) {
		posts, total, err := s.postRepo.List(ctx, category, limit, (page-1)*limit)
		return postPage{Posts: posts, Total: total}, err
	}
	if category != "" {
		result, err := load()
		return result.Posts, result.Total, err
	}
	result, err := cache.CacheAside(ctx, cache.PostListKey(page, limit), cache.PostListTTL, load)
	if err != nil {
		return nil, 0, err
	}
	return result.Posts, result.Total, nil
}

// UpdatePost applies an owner edit. Empty fields are left untouched; a
// non-empty section list replaces the post's sections wholesale. The
// author snapshot is refreshed from the current profile on edit.
func (s *PublishService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.PostID == "" || in.AuthorUID == "" {
		return nil, models.NewValidationError("Post id and authorUid are required")
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorUID != in.AuthorUID {
		return nil, models.NewForbiddenError("Only the post author can edit it")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Category != "" {
		post.Category = in.Category
	}
	if in.Summary != "" {
		post.Summary = in.Summary
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if in.ReadTime != "" {
		post.ReadTime = in.ReadTime
	}
	if author, authorErr := s.userRepo.GetByUID(ctx, in.AuthorUID); authorErr == nil {
		post.Author = author.AsAuthorSnapshot()
	}

	var sections []models.Section
	if len(in.Sections) > 0 {
		for i, sec := range in.Sections {
			sections = append(sections, models.Section{
				PostID:     post.ID,
				Position:   i,
				SubHeading: sec.SubHeading,
				Content:    sec.Content,
			})
		}
	}

	// Save the scalar columns without re-upserting stale association rows.
	post.Sections = nil
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	if sections != nil {
		if err := s.postRepo.ReplaceSections(ctx, post.ID, sections); err != nil {
			return nil, err
		}
	}
	s.invalidatePost(ctx, post.ID)

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost hard-deletes the post and its sections, owner-only.
func (s *PublishService) DeletePost(ctx context.Context, postID, authorUID string) error {
	if postID == "" || authorUID == "" {
		return models.NewValidationError("Post id and authorUid are required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorUID != authorUID {
		return models.NewForbiddenError("Only the post author can delete it")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	s.invalidatePost(ctx, postID)
	return nil
}

func (s *PublishService) announce(ctx context.Context, authorUID, postID string, duplicate bool) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishPostCreated(ctx, authorUID, postID, duplicate); err != nil {
		middleware.Logger.WarnContext(ctx, "publish event failed", "postId", postID, "error", err)
	}
}

func (s *PublishService) invalidatePost(ctx context.Context, postID string) {
	if err := cache.Invalidate(ctx, cache.PostKey(postID)); err != nil {
		middleware.Logger.WarnContext(ctx, "post cache invalidation failed", "postId", postID, "error", err)
	}
	s.invalidateListings(ctx)
}

func (s *PublishService) invalidateListings(ctx context.Context) {
	if err := cache.InvalidatePattern(ctx, "posts:page:*"); err != nil {
		middleware.Logger.WarnContext(ctx, "post list cache invalidation failed", "error", err)
	}
}
