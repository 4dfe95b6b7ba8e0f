package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/kv"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

type fixture struct {
	wishlist *Service
	cart     *cart.Service
	store    *kv.MemoryStore
	counts   map[events.Type]int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kv.NewMemoryStore()
	bus := events.NewBus()
	f := &fixture{store: store, counts: map[events.Type]int{}}
	bus.Subscribe(func(e events.Event) { f.counts[e.Type] = e.Count })

	cat := catalog.Default()
	f.cart = cart.NewService(cart.NewRepository(store, time.Hour, zap.NewNop()), cat, pricing.DefaultRates(), bus, zap.NewNop())
	f.wishlist = NewService(store, time.Hour, cat, f.cart, bus, zap.NewNop())
	return f
}

func TestAddIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.wishlist.Add(ctx, "s1", 3)
	require.NoError(t, err)
	items, err := f.wishlist.Add(ctx, "s1", 3)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "149.99", items[0].Price.StringFixed(2))
	assert.Equal(t, 1, f.counts[events.WishlistUpdated])

	_, err = f.wishlist.Add(ctx, "s1", 404)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.wishlist.Add(ctx, "s1", 3)
	require.NoError(t, err)
	_, err = f.wishlist.Add(ctx, "s1", 6)
	require.NoError(t, err)

	items, err := f.wishlist.Remove(ctx, "s1", 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].ID)

	_, err = f.wishlist.Remove(ctx, "s1", 3)
	require.ErrorIs(t, err, ErrNotInWishlist)

	n, err := f.wishlist.Count(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMoveFromCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, "s1", 1, 2, pricing.Monthly)
	require.NoError(t, err)

	items, err := f.wishlist.MoveFromCart(ctx, "s1", 1)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, pricing.Monthly, items[0].RentalPeriod)
	assert.Equal(t, "134.85", items[0].Price.StringFixed(2))
	assert.True(t, items[0].Available)
	assert.Equal(t, 1, f.counts[events.WishlistUpdated])
	assert.Equal(t, 0, f.counts[events.CartUpdated])

	c, err := f.cart.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	_, err = f.wishlist.MoveFromCart(ctx, "s1", 1)
	require.ErrorIs(t, err, cart.ErrItemNotInCart)
}

func TestMoveToCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.wishlist.Add(ctx, "s1", 8)
	require.NoError(t, err)

	c, items, err := f.wishlist.MoveToCart(ctx, "s1", 8)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, pricing.Weekly, c.Items[0].RentalPeriod)
	assert.Equal(t, 0, f.counts[events.WishlistUpdated])
	assert.Equal(t, 1, f.counts[events.CartUpdated])
}

func TestMoveToCartRejectsUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.wishlist.Add(ctx, "s1", 5)
	require.NoError(t, err)

	_, _, err = f.wishlist.MoveToCart(ctx, "s1", 5)
	require.ErrorIs(t, err, ErrUnavailable)

	n, err := f.wishlist.Count(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "unavailable item stays in the wishlist")

	_, _, err = f.wishlist.MoveToCart(ctx, "s1", 9)
	require.ErrorIs(t, err, ErrNotInWishlist)
}

func TestCorruptWishlistIsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, "wishlist:s1", []byte("[{"), 0))

	items, err := f.wishlist.List(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

type ttlStore struct {
	*kv.MemoryStore
	ttls []time.Duration
}

func (s *ttlStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.ttls = append(s.ttls, ttl)
	return s.MemoryStore.Set(ctx, key, value, ttl)
}

func TestWritesCarryTheSessionTTL(t *testing.T) {
	store := &ttlStore{MemoryStore: kv.NewMemoryStore()}
	bus := events.NewBus()
	cat := catalog.Default()
	carts := cart.NewService(cart.NewRepository(kv.NewMemoryStore(), time.Hour, zap.NewNop()), cat, pricing.DefaultRates(), bus, zap.NewNop())
	svc := NewService(store, 30*time.Minute, cat, carts, bus, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", 3)
	require.NoError(t, err)
	_, err = svc.Remove(ctx, "s1", 3)
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{30 * time.Minute, 30 * time.Minute}, store.ttls)
}
