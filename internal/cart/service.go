package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

// MaxQuantity caps a single cart line.
const MaxQuantity = 99

var (
	ErrItemNotInCart      = errors.New("item not in cart")
	ErrInvalidQuantity    = fmt.Errorf("quantity must be between 1 and %d", MaxQuantity)
	ErrProductUnavailable = errors.New("product is not available for rent")
)

type ProductLookup interface {
	Product(id int) (catalog.Product, error)
}

type PriceTable interface {
	Price(productID int, p pricing.Period) (decimal.Decimal, error)
}

type Publisher interface {
	Publish(e events.Event)
}

// Service owns every cart mutation and announces the new item count after each one.
type Service struct {
	repo     Repository
	products ProductLookup
	prices   PriceTable
	notifier Publisher
	locks    *session.Locks
	loads    singleflight.Group
	logger   *zap.Logger
}

func NewService(repo Repository, products ProductLookup, prices PriceTable, notifier Publisher, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		prices:   prices,
		notifier: notifier,
		locks:    session.NewLocks(),
		logger:   logger,
	}
}

// Get loads the cart; concurrent loads of one session share a single read.
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	v, err, _ := s.loads.Do(sessionID, func() (any, error) {
		// shared by every waiter, so one caller going away must not fail the rest
		return s.repo.GetCart(context.WithoutCancel(ctx), sessionID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Cart).clone(), nil
}

// ItemCount is the sum of quantities, the figure shown on the cart badge.
func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return c.ItemCount(), nil
}

// AddItem adds a product at the price of the requested period. Adding a product
// already in the cart merges quantities and adopts the new period.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID, quantity int, period pricing.Period) (*Cart, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	p, err := s.products.Product(productID)
	if err != nil {
		return nil, err
	}
	if !p.Available {
		return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, p.Name)
	}
	price, err := s.prices.Price(productID, period)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(c *Cart) error {
		if i := c.indexOf(productID); i >= 0 {
			if c.Items[i].Quantity > MaxQuantity-quantity {
				return ErrInvalidQuantity
			}
			c.Items[i].Quantity += quantity
			c.Items[i].RentalPeriod = period
			c.Items[i].Price = price
			return nil
		}
		c.Items = append(c.Items, LineItem{
			ID:           p.ID,
			Name:         p.Name,
			Image:        p.Image,
			Price:        price,
			RentalPeriod: period,
			Quantity:     quantity,
		})
		return nil
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) (*Cart, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		i := c.indexOf(productID)
		if i < 0 {
			return ErrItemNotInCart
		}
		c.Items[i].Quantity = quantity
		return nil
	})
}

// UpdateRentalPeriod switches a line to another period and reprices it; the
// quantity is left alone.
func (s *Service) UpdateRentalPeriod(ctx context.Context, sessionID string, productID int, period pricing.Period) (*Cart, error) {
	price, err := s.prices.Price(productID, period)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		i := c.indexOf(productID)
		if i < 0 {
			return ErrItemNotInCart
		}
		c.Items[i].RentalPeriod = period
		c.Items[i].Price = price
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int) (*Cart, error) {
	_, c, err := s.TakeItem(ctx, sessionID, productID)
	return c, err
}

// TakeItem removes a line and returns it, for moves into the wishlist.
func (s *Service) TakeItem(ctx context.Context, sessionID string, productID int) (LineItem, *Cart, error) {
	var taken LineItem
	c, err := s.mutate(ctx, sessionID, func(c *Cart) error {
		i := c.indexOf(productID)
		if i < 0 {
			return ErrItemNotInCart
		}
		taken = c.Items[i]
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	})
	if err != nil {
		return LineItem{}, nil, err
	}
	return taken, c, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.repo.ClearCart(ctx, sessionID); err != nil {
		return err
	}
	s.notify(sessionID, 0)
	return nil
}

// CheckOut hands the cart to place while no other writer can touch it and
// empties it once place succeeds. An empty cart is passed through as is.
func (s *Service) CheckOut(ctx context.Context, sessionID string, place func(*Cart) error) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	c, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := place(c.clone()); err != nil {
		return err
	}
	if err := s.repo.ClearCart(ctx, sessionID); err != nil {
		s.logger.Error("clear cart after checkout", zap.String("session_id", sessionID), zap.Error(err))
		return nil
	}
	s.notify(sessionID, 0)
	return nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Cart) error) (*Cart, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	c, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertCart(ctx, c); err != nil {
		return nil, err
	}
	s.notify(sessionID, c.ItemCount())
	return c.clone(), nil
}

func (s *Service) notify(sessionID string, count int) {
	s.notifier.Publish(events.Event{Type: events.CartUpdated, SessionID: sessionID, Count: count})
	s.logger.Debug("cart updated", zap.String("session_id", sessionID), zap.Int("item_count", count))
}

func validQuantity(q int) bool {
	return q >= 1 && q <= MaxQuantity
}
