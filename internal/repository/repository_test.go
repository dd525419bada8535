package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestFollowRepositoryIdempotentAdd(t *testing.T) {
	t.Parallel()
	repo := NewFollowRepository(newTestDB(t))
	ctx := context.Background()

	changed, err := repo.AddFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, changed)

	// the second add hits the unique index and reports no change
	changed, err = repo.AddFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, changed)

	following, err := repo.IsFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, following)

	// the reverse-direction table is untouched by following writes
	ids, err := repo.ListFollowerIDs(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, ids)

	changed, err = repo.RemoveFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.RemoveFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestInteractionRepositorySetSemantics(t *testing.T) {
	t.Parallel()
	repo := NewInteractionRepository(newTestDB(t))
	ctx := context.Background()

	changed, err := repo.Add(ctx, 1, "post-1", models.InteractionLiked)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.Add(ctx, 1, "post-1", models.InteractionLiked)
	require.NoError(t, err)
	assert.False(t, changed)

	// the saved set is keyed independently of the liked set
	changed, err = repo.Add(ctx, 1, "post-1", models.InteractionSaved)
	require.NoError(t, err)
	assert.True(t, changed)

	has, err := repo.Has(ctx, 1, "post-1", models.InteractionLiked)
	require.NoError(t, err)
	assert.True(t, has)

	changed, err = repo.Remove(ctx, 1, "post-1", models.InteractionLiked)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.Remove(ctx, 1, "post-1", models.InteractionLiked)
	require.NoError(t, err)
	assert.False(t, changed)

	ids, err := repo.ListPostIDs(ctx, 1, models.InteractionSaved)
	require.NoError(t, err)
	assert.Equal(t, []string{"post-1"}, ids)
}

func TestCommentAdjustLikesIsUnfloored(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{PostID: "post-1", Content: "hi"}
	require.NoError(t, db.Create(comment).Error)

	require.NoError(t, repo.AdjustLikes(ctx, comment.ID, -1))
	require.NoError(t, repo.AdjustLikes(ctx, comment.ID, -1))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, got.Likes)
}

func TestPostFindRecentByTitleIgnoresAuthor(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	now := time.Now()
	inside := &models.Post{Title: "Dup", AuthorUID: "writer", CreatedAt: now.Add(-5 * time.Second)}
	outside := &models.Post{Title: "Dup", AuthorUID: "other", CreatedAt: now.Add(-40 * time.Second)}
	differing := &models.Post{Title: "Other", AuthorUID: "writer", CreatedAt: now.Add(-5 * time.Second)}
	require.NoError(t, db.Create(inside).Error)
	require.NoError(t, db.Create(outside).Error)
	require.NoError(t, db.Create(differing).Error)

	got, err := repo.FindRecentByTitle(ctx, "Dup", now.Add(-30*time.Second))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
}

func TestPostAdjustLikesMissingRowIsNoError(t *testing.T) {
	t.Parallel()
	repo := NewPostRepository(newTestDB(t))

	// zero rows matched is not an error
	assert.NoError(t, repo.AdjustLikes(context.Background(), "no-such-post", 1))
}
