package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/promo"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

var ErrEmptyCart = errors.New("Your cart is empty")

type Carts interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	CheckOut(ctx context.Context, sessionID string, place func(*cart.Cart) error) error
}

type Deps struct {
	Flow      Flow
	Sessions  *SessionRepository
	Carts     Carts
	Promos    promo.Validator
	Orders    order.Repository
	Publisher events.OrderPublisher
	Delivery  cart.DeliveryPolicy
	Logger    *zap.Logger
}

// State is what the checkout page renders.
type State struct {
	Flow      string      `json:"flow"`
	Steps     []Step      `json:"steps"`
	Session   Session     `json:"session"`
	Cart      *cart.Cart  `json:"cart"`
	ItemCount int         `json:"itemCount"`
	Totals    cart.Totals `json:"totals"`
}

type Controller struct {
	flow      Flow
	sessions  *SessionRepository
	carts     Carts
	promos    promo.Validator
	orders    order.Repository
	publisher events.OrderPublisher
	delivery  cart.DeliveryPolicy
	locks     *session.Locks
	now       func() time.Time
	logger    *zap.Logger
}

func NewController(d Deps) *Controller {
	return &Controller{
		flow:      d.Flow,
		sessions:  d.Sessions,
		carts:     d.Carts,
		promos:    d.Promos,
		orders:    d.Orders,
		publisher: d.Publisher,
		delivery:  d.Delivery,
		locks:     session.NewLocks(),
		now:       time.Now,
		logger:    d.Logger,
	}
}

func (c *Controller) View(ctx context.Context, sessionID string) (State, error) {
	s, err := c.load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	return c.state(ctx, sessionID, s)
}

// ApplyPromo validates code and records its discount, replacing any earlier
// code. Only allowed while the shopper is still on the cart step.
func (c *Controller) ApplyPromo(ctx context.Context, sessionID, code string) (State, error) {
	s, err := c.load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	if s.Step != StepCart {
		return State{}, fmt.Errorf("%w: promo codes are applied from the cart step", ErrIllegalTransition)
	}

	// the simulated lookup runs without holding the session lock
	d, err := c.promos.Validate(ctx, code)
	if err != nil {
		return State{}, err
	}

	return c.update(ctx, sessionID, func(s *Session, _ *cart.Cart) error {
		if s.Step != StepCart {
			return fmt.Errorf("%w: promo codes are applied from the cart step", ErrIllegalTransition)
		}
		s.PromoCode = d.Code
		s.DiscountPercent = d.Percent
		return nil
	})
}

func (c *Controller) ProceedToCheckout(ctx context.Context, sessionID string) (State, error) {
	return c.update(ctx, sessionID, func(s *Session, crt *cart.Cart) error {
		next, err := c.flow.Next(s.Step, ActionProceed)
		if err != nil {
			return err
		}
		if crt.IsEmpty() {
			return ErrEmptyCart
		}
		s.Step = next
		return nil
	})
}

func (c *Controller) SubmitShipping(ctx context.Context, sessionID string, addr ShippingAddress) (State, error) {
	return c.update(ctx, sessionID, func(s *Session, _ *cart.Cart) error {
		next, err := c.flow.Next(s.Step, ActionSubmitShipping)
		if err != nil {
			return err
		}
		addr = addr.Normalize()
		if err := addr.Validate(); err != nil {
			return err
		}
		s.ShippingAddress = &addr
		s.Step = next
		return nil
	})
}

func (c *Controller) SelectPaymentMethod(ctx context.Context, sessionID string, m PaymentMethod) (State, error) {
	m, err := ParsePaymentMethod(string(m))
	if err != nil {
		return State{}, err
	}
	return c.update(ctx, sessionID, func(s *Session, _ *cart.Cart) error {
		if s.Step != StepPayment {
			return fmt.Errorf("%w: payment method is chosen on the payment step", ErrIllegalTransition)
		}
		s.PaymentMethod = m
		return nil
	})
}

func (c *Controller) ReviewOrder(ctx context.Context, sessionID string) (State, error) {
	return c.update(ctx, sessionID, func(s *Session, _ *cart.Cart) error {
		next, err := c.flow.Next(s.Step, ActionReview)
		if err != nil {
			return err
		}
		s.Step = next
		return nil
	})
}

// Back returns to the previous step keeping address, payment method and promo.
func (c *Controller) Back(ctx context.Context, sessionID string) (State, error) {
	return c.update(ctx, sessionID, func(s *Session, _ *cart.Cart) error {
		prev, err := c.flow.Next(s.Step, ActionBack)
		if err != nil {
			return err
		}
		s.Step = prev
		return nil
	})
}

// PlaceOrder records the order, empties the cart and starts a fresh session.
func (c *Controller) PlaceOrder(ctx context.Context, sessionID, userID string) (*order.Order, State, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	s, err := c.load(ctx, sessionID)
	if err != nil {
		return nil, State{}, err
	}
	if _, err := c.flow.Next(s.Step, ActionPlaceOrder); err != nil {
		return nil, State{}, err
	}
	// the cart stays locked from read to clear so no add slips between them
	var o *order.Order
	err = c.carts.CheckOut(ctx, sessionID, func(crt *cart.Cart) error {
		if crt.IsEmpty() {
			return ErrEmptyCart
		}
		o = c.buildOrder(sessionID, userID, s, crt)
		if err := c.orders.Create(ctx, o); err != nil {
			return fmt.Errorf("record order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, State{}, err
	}

	if err := c.sessions.Reset(ctx, sessionID); err != nil {
		c.logger.Error("reset checkout after order", zap.String("order_id", o.ID), zap.Error(err))
	}
	if err := c.publisher.PublishOrderPlaced(ctx, o); err != nil {
		c.logger.Warn("order placed event not published", zap.String("order_id", o.ID), zap.Error(err))
	}
	c.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("session_id", sessionID),
		zap.String("total", o.Total.StringFixed(2)),
	)

	st, err := c.state(ctx, sessionID, NewSession())
	if err != nil {
		return nil, State{}, err
	}
	return o, st, nil
}

func (c *Controller) buildOrder(sessionID, userID string, s Session, crt *cart.Cart) *order.Order {
	totals := c.delivery.Compute(crt.Items, s.DiscountPercent).Rounded()

	items := make([]order.Item, 0, len(crt.Items))
	for _, it := range crt.Items {
		items = append(items, order.Item{
			ProductID:    it.ID,
			Name:         it.Name,
			RentalPeriod: it.RentalPeriod,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}

	o := &order.Order{
		SessionID:     sessionID,
		UserID:        userID,
		Items:         items,
		PaymentMethod: string(s.PaymentMethod),
		PromoCode:     s.PromoCode,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		DeliveryFee:   totals.DeliveryFee,
		Total:         totals.Total,
		Status:        order.StatusPending,
		CreatedAt:     c.now().UTC(),
	}
	if s.ShippingAddress != nil {
		o.ShippingAddress = s.ShippingAddress.toOrder()
	}
	return o
}

func (c *Controller) update(ctx context.Context, sessionID string, fn func(*Session, *cart.Cart) error) (State, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	s, err := c.load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	crt, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	if err := fn(&s, crt); err != nil {
		return State{}, err
	}
	if err := c.sessions.Save(ctx, sessionID, s); err != nil {
		return State{}, err
	}
	return c.stateFor(s, crt), nil
}

// load drops a stored step the configured flow does not have.
func (c *Controller) load(ctx context.Context, sessionID string) (Session, error) {
	s, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if c.flow == ThreeStep && s.Step == StepShipping {
		s.Step = StepCart
	}
	return s, nil
}

func (c *Controller) state(ctx context.Context, sessionID string, s Session) (State, error) {
	crt, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	return c.stateFor(s, crt), nil
}

func (c *Controller) stateFor(s Session, crt *cart.Cart) State {
	return State{
		Flow:      c.flow.String(),
		Steps:     c.flow.Steps(),
		Session:   s,
		Cart:      crt,
		ItemCount: crt.ItemCount(),
		Totals:    c.delivery.Compute(crt.Items, s.DiscountPercent).Rounded(),
	}
}
