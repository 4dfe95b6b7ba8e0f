package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "cartItems:s1", []byte(`[]`), 0))
	got, err := s.Get(ctx, "cartItems:s1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	got[0] = 'x'
	again, _ := s.Get(ctx, "cartItems:s1")
	assert.Equal(t, `[]`, string(again), "callers must not alias stored bytes")

	require.NoError(t, s.Delete(ctx, "cartItems:s1"))
	_, err = s.Get(ctx, "cartItems:s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "checkout:s1", []byte("{}"), time.Minute))

	now = now.Add(59 * time.Second)
	_, err := s.Get(ctx, "checkout:s1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Get(ctx, "checkout:s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "wishlist:abc", Key("wishlist", "abc"))
}
