// Package badge keeps the cart and wishlist counters shown in the navigation bar.
package badge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
)

type Counts struct {
	Cart     int `json:"cart"`
	Wishlist int `json:"wishlist"`
}

type CartCounter interface {
	ItemCount(ctx context.Context, sessionID string) (int, error)
}

type WishlistCounter interface {
	Count(ctx context.Context, sessionID string) (int, error)
}

type entry struct {
	counts   Counts
	cartSeen bool
	wishSeen bool
	used     time.Time
}

// Board follows update events so reads do not touch storage. Counters it has
// not seen an event for yet are read from the services once. Sessions idle for
// longer than ttl are forgotten, matching the expiry of the stored cart and
// wishlist; a zero ttl keeps them forever.
type Board struct {
	cart     CartCounter
	wishlist WishlistCounter
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	entries   map[string]*entry
	lastSweep time.Time

	unsubscribe func()
}

func NewBoard(bus *events.Bus, cart CartCounter, wishlist WishlistCounter, ttl time.Duration) *Board {
	b := &Board{
		cart:     cart,
		wishlist: wishlist,
		ttl:      ttl,
		now:      time.Now,
		entries:  map[string]*entry{},
	}
	b.unsubscribe = bus.Subscribe(b.apply, events.CartUpdated, events.WishlistUpdated)
	return b
}

func (b *Board) Close() {
	b.unsubscribe()
}

func (b *Board) Get(ctx context.Context, sessionID string) (Counts, error) {
	b.mu.Lock()
	now := b.now()
	if e, ok := b.entries[sessionID]; ok && e.cartSeen && e.wishSeen && !b.idle(e, now) {
		e.used = now
		c := e.counts
		b.mu.Unlock()
		return c, nil
	}
	b.mu.Unlock()

	cartCount, err := b.cart.ItemCount(ctx, sessionID)
	if err != nil {
		return Counts{}, fmt.Errorf("count cart items: %w", err)
	}
	wishCount, err := b.wishlist.Count(ctx, sessionID)
	if err != nil {
		return Counts{}, fmt.Errorf("count wishlist items: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entry(sessionID)
	// an event that arrived during the reads is newer than what we read
	if !e.cartSeen {
		e.counts.Cart = cartCount
		e.cartSeen = true
	}
	if !e.wishSeen {
		e.counts.Wishlist = wishCount
		e.wishSeen = true
	}
	return e.counts, nil
}

func (b *Board) apply(ev events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entry(ev.SessionID)
	switch ev.Type {
	case events.CartUpdated:
		e.counts.Cart = ev.Count
		e.cartSeen = true
	case events.WishlistUpdated:
		e.counts.Wishlist = ev.Count
		e.wishSeen = true
	}
}

// entry must be called with mu held. It also sweeps idle sessions, at most
// once per ttl.
func (b *Board) entry(sessionID string) *entry {
	now := b.now()
	if b.ttl > 0 && now.Sub(b.lastSweep) >= b.ttl {
		for id, e := range b.entries {
			if b.idle(e, now) {
				delete(b.entries, id)
			}
		}
		b.lastSweep = now
	}

	e, ok := b.entries[sessionID]
	if !ok || b.idle(e, now) {
		e = &entry{}
		b.entries[sessionID] = e
	}
	e.used = now
	return e
}

func (b *Board) idle(e *entry, now time.Time) bool {
	return b.ttl > 0 && now.Sub(e.used) >= b.ttl
}
