package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestMarkAndCachedRevoked(t *testing.T) {
	mr, rdb := testRedis(t)
	ctx := context.Background()

	assert.False(t, cachedRevoked(ctx, rdb, "jti-1"))

	markRevoked(ctx, rdb, "jti-1", time.Minute)
	assert.True(t, cachedRevoked(ctx, rdb, "jti-1"))
	assert.False(t, cachedRevoked(ctx, rdb, "jti-2"))

	ttl := mr.TTL(revokedKeyPrefix + "jti-1")
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, time.Minute)
}

func TestMarkRevokedExpires(t *testing.T) {
	mr, rdb := testRedis(t)
	ctx := context.Background()

	markRevoked(ctx, rdb, "jti-short", time.Second)
	require.True(t, cachedRevoked(ctx, rdb, "jti-short"))

	// the mirror entry dies with the token's remaining lifetime
	mr.FastForward(2 * time.Second)
	assert.False(t, cachedRevoked(ctx, rdb, "jti-short"))
}

func TestMarkRevokedIgnoresNonPositiveTTL(t *testing.T) {
	mr, rdb := testRedis(t)
	ctx := context.Background()

	markRevoked(ctx, rdb, "jti-dead", 0)
	markRevoked(ctx, rdb, "jti-dead", -time.Minute)

	assert.False(t, mr.Exists(revokedKeyPrefix+"jti-dead"))
	assert.False(t, cachedRevoked(ctx, rdb, "jti-dead"))
}

func TestRevocationCacheToleratesNilClient(t *testing.T) {
	ctx := context.Background()

	markRevoked(ctx, nil, "jti-x", time.Minute)
	assert.False(t, cachedRevoked(ctx, nil, "jti-x"))
}
