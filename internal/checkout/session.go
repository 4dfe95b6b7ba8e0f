package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/kv"
)

const keyNamespace = "checkout"

// Session is the transient checkout state of one shopper.
type Session struct {
	Step            Step             `json:"step"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod"`
	PromoCode       string           `json:"promoCode,omitempty"`
	DiscountPercent int              `json:"promoDiscountPercent"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
}

func NewSession() Session {
	return Session{Step: StepCart, PaymentMethod: PaymentCreditCard}
}

// SessionRepository keeps sessions in the key-value store with a sliding ttl.
type SessionRepository struct {
	store  kv.Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionRepository(store kv.Store, ttl time.Duration, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{store: store, ttl: ttl, logger: logger}
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (Session, error) {
	raw, err := r.store.Get(ctx, kv.Key(keyNamespace, sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return NewSession(), nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("load checkout session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || !s.valid() {
		r.logger.Warn("resetting unreadable checkout session", zap.String("session_id", sessionID), zap.Error(err))
		return NewSession(), nil
	}
	return s, nil
}

func (r *SessionRepository) Save(ctx context.Context, sessionID string, s Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal checkout session: %w", err)
	}
	if err := r.store.Set(ctx, kv.Key(keyNamespace, sessionID), raw, r.ttl); err != nil {
		return fmt.Errorf("save checkout session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Reset(ctx context.Context, sessionID string) error {
	if err := r.store.Delete(ctx, kv.Key(keyNamespace, sessionID)); err != nil {
		return fmt.Errorf("reset checkout session: %w", err)
	}
	return nil
}

func (s Session) valid() bool {
	switch s.Step {
	case StepCart, StepShipping, StepPayment, StepReview:
	default:
		return false
	}
	_, err := ParsePaymentMethod(string(s.PaymentMethod))
	return err == nil
}
