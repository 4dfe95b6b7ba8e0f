package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/kv"
)

const keyNamespace = "cartItems"

type Repository interface {
	GetCart(ctx context.Context, sessionID string) (*Cart, error)
	UpsertCart(ctx context.Context, c *Cart) error
	ClearCart(ctx context.Context, sessionID string) error
}

type repo struct {
	store  kv.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewRepository stores each cart as a JSON array of line items under
// cartItems:<session>. Every write pushes the expiry out to ttl.
func NewRepository(store kv.Store, ttl time.Duration, logger *zap.Logger) Repository {
	return &repo{store: store, ttl: ttl, logger: logger}
}

// GetCart never returns nil: a missing or unreadable cart is an empty one.
func (r *repo) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	c := &Cart{SessionID: sessionID, Items: []LineItem{}}

	raw, err := r.store.Get(ctx, kv.Key(keyNamespace, sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		r.logger.Warn("discarding unreadable cart",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return c, nil
	}
	valid := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			valid = append(valid, it)
		}
	}
	c.Items = valid
	return c, nil
}

func (r *repo) UpsertCart(ctx context.Context, c *Cart) error {
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.store.Set(ctx, kv.Key(keyNamespace, c.SessionID), raw, r.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *repo) ClearCart(ctx context.Context, sessionID string) error {
	if err := r.store.Delete(ctx, kv.Key(keyNamespace, sessionID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
