package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "thing:1", cachedThing{Name: "a", Count: 2}, time.Minute))

	var got cachedThing
	require.NoError(t, GetJSON(ctx, "thing:1", &got))
	assert.Equal(t, cachedThing{Name: "a", Count: 2}, got)

	err := GetJSON(ctx, "thing:absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheAside(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func() (cachedThing, error) {
		loads++
		return cachedThing{Name: "loaded", Count: loads}, nil
	}

	got, err := CacheAside(ctx, "thing:2", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)

	// second read is served from the cache
	got, err = CacheAside(ctx, "thing:2", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 1, loads)

	require.NoError(t, Invalidate(ctx, "thing:2"))
	got, err = CacheAside(ctx, "thing:2", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}

func TestCacheAsideLoadErrorPassesThrough(t *testing.T) {
	withMiniredis(t)

	boom := errors.New("db down")
	_, err := CacheAside(context.Background(), "thing:3", time.Minute, func() (cachedThing, error) {
		return cachedThing{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInvalidatePattern(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "posts:page:1:limit:10", cachedThing{}, time.Minute))
	require.NoError(t, SetJSON(ctx, "posts:page:2:limit:10", cachedThing{}, time.Minute))
	require.NoError(t, SetJSON(ctx, "post:abc", cachedThing{}, time.Minute))

	require.NoError(t, InvalidatePattern(ctx, "posts:page:*"))

	assert.False(t, mr.Exists("posts:page:1:limit:10"))
	assert.False(t, mr.Exists("posts:page:2:limit:10"))
	assert.True(t, mr.Exists("post:abc"))
}

func TestNilClientIsTolerated(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	assert.NoError(t, SetJSON(ctx, "k", cachedThing{}, time.Minute))
	assert.ErrorIs(t, GetJSON(ctx, "k", &cachedThing{}), ErrCacheMiss)
	assert.NoError(t, Invalidate(ctx, "k"))
	assert.NoError(t, InvalidatePattern(ctx, "k:*"))

	// the loader still runs, uncached
	got, err := CacheAside(ctx, "k", time.Minute, func() (cachedThing, error) {
		return cachedThing{Name: "direct"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got.Name)
}
