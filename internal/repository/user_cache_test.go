package repository

import (
	"context"
	"encoding/json"
	"testing"

	"forumverse/internal/cache"
	"forumverse/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCachedUserRepo(t *testing.T) (UserRepository, *miniredis.Miniredis, *models.User) {
	t.Helper()
	db := setupCascadeTestDB(t)
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	user := &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMye",
	}
	require.NoError(t, db.Create(user).Error)

	return NewUserRepository(db), mr, user
}

func TestUserRepository_GetByID_CacheRoundTripsPasswordHash(t *testing.T) {
	repo, mr, user := setupCachedUserRepo(t)
	ctx := context.Background()

	// Cache miss reads from the DB and populates Redis.
	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, first.PasswordHash)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	// Cache hit must return the same hash, not an empty one.
	second, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, second.PasswordHash)

	// The hash still never appears in the user's public JSON shape.
	body, err := json.Marshal(second)
	require.NoError(t, err)
	assert.NotContains(t, string(body), user.PasswordHash)
}

func TestUserRepository_Update_AfterCacheHitKeepsPasswordHash(t *testing.T) {
	repo, _, user := setupCachedUserRepo(t)
	ctx := context.Background()

	// Warm the cache, then read through it.
	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	// A profile update on the cached copy must not clobber the stored hash.
	cached.DisplayName = "Alice W"
	require.NoError(t, repo.Update(ctx, cached))

	fresh, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice W", fresh.DisplayName)
	assert.Equal(t, user.PasswordHash, fresh.PasswordHash)
}
