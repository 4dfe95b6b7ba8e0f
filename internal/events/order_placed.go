package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

const (
	OrderPlacedEventName    = "OrderPlaced"
	OrderPlacedEventVersion = 1
	OrderPlacedSchemaPath   = "contracts/events/storefront/OrderPlaced.v1.enveloped.schema.json"
)

type EventEnvelope struct {
	EventName     string             `json:"eventName"`
	EventVersion  int                `json:"eventVersion"`
	EventID       string             `json:"eventId"`
	CorrelationID string             `json:"correlationId,omitempty"`
	CausationID   string             `json:"causationId,omitempty"`
	Producer      string             `json:"producer"`
	PartitionKey  string             `json:"partitionKey"`
	Sequence      int64              `json:"sequence"`
	OccurredAt    time.Time          `json:"occurredAt"`
	Schema        string             `json:"schema"`
	Payload       OrderPlacedPayload `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID       string            `json:"orderId"`
	SessionID     string            `json:"sessionId"`
	UserID        string            `json:"userId,omitempty"`
	Items         []OrderPlacedItem `json:"items"`
	PaymentMethod string            `json:"paymentMethod"`
	PromoCode     string            `json:"promoCode,omitempty"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Discount      decimal.Decimal   `json:"discount"`
	DeliveryFee   decimal.Decimal   `json:"deliveryFee"`
	Total         decimal.Decimal   `json:"total"`
	PlacedAt      time.Time         `json:"placedAt"`
}

type OrderPlacedItem struct {
	ProductID    int             `json:"productId"`
	RentalPeriod string          `json:"rentalPeriod"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type EnvelopeOptions struct {
	PartitionKey  string
	Sequence      int64
	CorrelationID string
	CausationID   string
	EventID       string
	OccurredAt    time.Time
}

func BuildOrderPlacedEvent(o *order.Order, opts EnvelopeOptions) EventEnvelope {
	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	partitionKey := opts.PartitionKey
	if partitionKey == "" {
		partitionKey = o.SessionID
	}

	payload := OrderPlacedPayload{
		OrderID:       o.ID,
		SessionID:     o.SessionID,
		UserID:        o.UserID,
		Items:         make([]OrderPlacedItem, 0, len(o.Items)),
		PaymentMethod: o.PaymentMethod,
		PromoCode:     o.PromoCode,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		PlacedAt:      o.CreatedAt,
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, OrderPlacedItem{
			ProductID:    it.ProductID,
			RentalPeriod: string(it.RentalPeriod),
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}

	return EventEnvelope{
		EventName:     OrderPlacedEventName,
		EventVersion:  OrderPlacedEventVersion,
		EventID:       eventID,
		CorrelationID: opts.CorrelationID,
		CausationID:   opts.CausationID,
		Producer:      storefrontProducer,
		PartitionKey:  partitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    occurredAt,
		Schema:        OrderPlacedSchemaPath,
		Payload:       payload,
	}
}
