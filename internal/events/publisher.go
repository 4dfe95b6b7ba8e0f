package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

var ErrBrokerUnavailable = errors.New("event broker unavailable")

const (
	publishTimeout          = 3 * time.Second
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

// OrderPublisher announces placed orders to other services.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *order.Order) error
}

type Publisher struct {
	ch      channel
	seq     SequenceRepository
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *zap.Logger
}

func NewPublisher(conn *amqp.Connection, seq SequenceRepository, logger *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newPublisher(ch, seq, logger)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newPublisher(ch channel, seq SequenceRepository, logger *zap.Logger) (*Publisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "rabbitmq-publisher",
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Publisher{ch: ch, seq: seq, breaker: breaker, logger: logger}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	seq, err := p.seq.NextSequence(ctx, o.SessionID)
	if err != nil {
		return fmt.Errorf("order placed sequence: %w", err)
	}

	env := BuildOrderPlacedEvent(o, EnvelopeOptions{
		Sequence:      seq,
		CorrelationID: middleware.GetCorrelationID(ctx),
	})
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.publishJSON(ctx, OrderPlacedRoutingKey, env.EventID, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrBrokerUnavailable, err)
	}
	if err != nil {
		return fmt.Errorf("publish OrderPlaced: %w", err)
	}

	p.logger.Debug("order placed event published",
		zap.String("order_id", o.ID),
		zap.String("event_id", env.EventID),
		zap.Int64("sequence", seq),
	)
	return nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     messageID,
			CorrelationId: middleware.GetCorrelationID(ctx),
			Timestamp:     time.Now().UTC(),
			Body:          body,
		},
	)
}

// LogPublisher stands in for the broker when RABBITMQ_URL is not set.
type LogPublisher struct {
	Logger *zap.Logger
}

func (l LogPublisher) PublishOrderPlaced(_ context.Context, o *order.Order) error {
	l.Logger.Info("order placed (no broker configured)",
		zap.String("order_id", o.ID),
		zap.String("session_id", o.SessionID),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return nil
}
