package kv

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cartItems:s1", []byte(`[{"id":1}]`), 0))

	raw, err := mr.Get("storefront:cartItems:s1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, raw)

	got, err := store.Get(ctx, "cartItems:s1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	require.NoError(t, store.Delete(ctx, "cartItems:s1"))
	assert.False(t, mr.Exists("storefront:cartItems:s1"))
}

func TestRedisStore_Miss(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "checkout:s1", []byte("{}"), 30*time.Minute))
	assert.Equal(t, 30*time.Minute, mr.TTL("storefront:checkout:s1"))

	mr.FastForward(31 * time.Minute)
	_, err := store.Get(ctx, "checkout:s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
