package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestAside(t *testing.T) {
	t.Run("miss fetches and populates cache", func(t *testing.T) {
		mr := withMiniredis(t)
		ctx := context.Background()

		fetches := 0
		var got cachedUser
		err := Aside(ctx, UserKey(1), &got, UserTTL, func() error {
			fetches++
			got = cachedUser{ID: 1, Name: "alice"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
		assert.Equal(t, "alice", got.Name)
		assert.True(t, mr.Exists(UserKey(1)))

		// Second read is served from cache.
		var again cachedUser
		err = Aside(ctx, UserKey(1), &again, UserTTL, func() error {
			fetches++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
		assert.Equal(t, "alice", again.Name)
	})

	t.Run("fetch error propagates and nothing is cached", func(t *testing.T) {
		mr := withMiniredis(t)

		var got cachedUser
		err := Aside(context.Background(), UserKey(2), &got, UserTTL, func() error {
			return assert.AnError
		})
		require.Error(t, err)
		assert.False(t, mr.Exists(UserKey(2)))
	})

	t.Run("nil client degrades to direct fetch", func(t *testing.T) {
		SetClient(nil)

		fetches := 0
		var got cachedUser
		err := Aside(context.Background(), UserKey(3), &got, UserTTL, func() error {
			fetches++
			got = cachedUser{ID: 3, Name: "bob"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
		assert.Equal(t, "bob", got.Name)
	})
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ThreadKey(7), cachedUser{ID: 7}, ThreadTTL))
	require.NoError(t, SetJSON(ctx, ThreadListKey, []uint{7}, ThreadListTTL))

	InvalidateThread(ctx, 7)
	assert.False(t, mr.Exists(ThreadKey(7)))
	assert.False(t, mr.Exists(ThreadListKey), "thread invalidation also drops the listing key")
}

func TestSetJSONTTL(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UnreadCountKey(1), 4, UnreadCountTTL))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(UnreadCountKey(1)))
}
