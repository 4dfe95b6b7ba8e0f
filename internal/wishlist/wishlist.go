package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/kv"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

const keyNamespace = "wishlist"

var (
	ErrNotInWishlist = errors.New("item not in wishlist")
	ErrUnavailable   = errors.New("product is not available for rent")
)

type Item struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	RentalPeriod pricing.Period  `json:"rentalPeriod"`
	Available    bool            `json:"available"`
}

type ProductLookup interface {
	Product(id int) (catalog.Product, error)
}

// Cart is the part of the cart service the wishlist moves items through.
type Cart interface {
	AddItem(ctx context.Context, sessionID string, productID, quantity int, period pricing.Period) (*cart.Cart, error)
	TakeItem(ctx context.Context, sessionID string, productID int) (cart.LineItem, *cart.Cart, error)
}

type Publisher interface {
	Publish(e events.Event)
}

type Service struct {
	store    kv.Store
	ttl      time.Duration
	products ProductLookup
	cart     Cart
	notifier Publisher
	locks    *session.Locks
	logger   *zap.Logger
}

// NewService keeps each wishlist for ttl after its last change.
func NewService(store kv.Store, ttl time.Duration, products ProductLookup, c Cart, notifier Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		ttl:      ttl,
		products: products,
		cart:     c,
		notifier: notifier,
		locks:    session.NewLocks(),
		logger:   logger,
	}
}

func (s *Service) List(ctx context.Context, sessionID string) ([]Item, error) {
	return s.load(ctx, sessionID)
}

func (s *Service) Count(ctx context.Context, sessionID string) (int, error) {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Add saves a catalog product at its advertised price. Adding twice is a no-op.
func (s *Service) Add(ctx context.Context, sessionID string, productID int) ([]Item, error) {
	p, err := s.products.Product(productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(items []Item) ([]Item, error) {
		return upsert(items, Item{
			ID:           p.ID,
			Name:         p.Name,
			Image:        p.Image,
			Price:        p.Price,
			RentalPeriod: p.RentalPeriod,
			Available:    p.Available,
		}), nil
	})
}

func (s *Service) Remove(ctx context.Context, sessionID string, productID int) ([]Item, error) {
	return s.mutate(ctx, sessionID, func(items []Item) ([]Item, error) {
		i := indexOf(items, productID)
		if i < 0 {
			return nil, ErrNotInWishlist
		}
		return append(items[:i], items[i+1:]...), nil
	})
}

// MoveFromCart takes the line out of the cart and saves it here with the
// period and price it had in the cart.
func (s *Service) MoveFromCart(ctx context.Context, sessionID string, productID int) ([]Item, error) {
	line, _, err := s.cart.TakeItem(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	available := true
	if p, err := s.products.Product(productID); err == nil {
		available = p.Available
	}
	return s.mutate(ctx, sessionID, func(items []Item) ([]Item, error) {
		return upsert(items, Item{
			ID:           line.ID,
			Name:         line.Name,
			Image:        line.Image,
			Price:        line.Price,
			RentalPeriod: line.RentalPeriod,
			Available:    available,
		}), nil
	})
}

// MoveToCart adds one unit to the cart and drops the wishlist entry.
func (s *Service) MoveToCart(ctx context.Context, sessionID string, productID int) (*cart.Cart, []Item, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	i := indexOf(items, productID)
	if i < 0 {
		return nil, nil, ErrNotInWishlist
	}
	it := items[i]
	if !it.Available {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnavailable, it.Name)
	}

	period := it.RentalPeriod
	if _, err := period.Multiplier(); err != nil {
		period = pricing.Weekly
	}
	c, err := s.cart.AddItem(ctx, sessionID, productID, 1, period)
	if err != nil {
		return nil, nil, err
	}

	items = append(items[:i], items[i+1:]...)
	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, nil, err
	}
	return c, items, nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func([]Item) ([]Item, error)) ([]Item, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items, err = fn(items)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) load(ctx context.Context, sessionID string) ([]Item, error) {
	raw, err := s.store.Get(ctx, kv.Key(keyNamespace, sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("discarding unreadable wishlist", zap.String("session_id", sessionID), zap.Error(err))
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, sessionID string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}
	if err := s.store.Set(ctx, kv.Key(keyNamespace, sessionID), raw, s.ttl); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}
	s.notifier.Publish(events.Event{Type: events.WishlistUpdated, SessionID: sessionID, Count: len(items)})
	return nil
}

func indexOf(items []Item, productID int) int {
	for i, it := range items {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

func upsert(items []Item, it Item) []Item {
	if i := indexOf(items, it.ID); i >= 0 {
		items[i] = it
		return items
	}
	return append(items, it)
}
