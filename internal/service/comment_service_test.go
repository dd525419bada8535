package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommentContent(t *testing.T) {
	t.Parallel()

	got, err := validateCommentContent("  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = validateCommentContent("   ")
	assert.Error(t, err)

	_, err = validateCommentContent(strings.Repeat("a", maxCommentLen))
	assert.NoError(t, err)

	_, err = validateCommentContent(strings.Repeat("a", maxCommentLen+1))
	assert.Error(t, err)

	// multibyte runes count as single characters
	_, err = validateCommentContent(strings.Repeat("é", maxCommentLen))
	assert.NoError(t, err)

	_, err = validateCommentContent(strings.Repeat("é", maxCommentLen+1))
	assert.Error(t, err)

	// trimming happens before the length check
	_, err = validateCommentContent("  " + strings.Repeat("a", maxCommentLen) + "  ")
	assert.NoError(t, err)
}

func TestListThreadCountsOrphanedReplies(t *testing.T) {
	t.Parallel()

	deletedParent := "gone"
	base := time.Now()
	comments := &stubCommentRepo{
		// newest-first, the way the repository returns them; the reply's
		// parent was soft-deleted and is not in the result set
		ListByPostFn: func(ctx context.Context, postID string) ([]models.Comment, error) {
			return []models.Comment{
				{ID: "c2", PostID: postID, Content: "newer", CreatedAt: base.Add(time.Minute)},
				{ID: "r1", PostID: postID, ParentID: &deletedParent, Content: "orphan", CreatedAt: base.Add(30 * time.Second)},
				{ID: "c1", PostID: postID, Content: "older", CreatedAt: base},
			}, nil
		},
	}
	svc := NewCommentService(nil, comments, nil, nil)

	threads, total, err := svc.ListThread(context.Background(), "post-1")
	require.NoError(t, err)

	// the orphaned reply appears in no thread but still counts
	assert.Equal(t, 3, total)
	require.Len(t, threads, 2)
	assert.Equal(t, "c2", threads[0].ID)
	assert.Equal(t, "c1", threads[1].ID)
	assert.Empty(t, threads[0].Replies)
	assert.Empty(t, threads[1].Replies)
}

func TestListThreadRequiresPostID(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(nil, &stubCommentRepo{}, nil, nil)
	_, _, err := svc.ListThread(context.Background(), "")

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
