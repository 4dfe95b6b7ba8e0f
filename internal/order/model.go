package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

type Item struct {
	ProductID    int             `json:"productId"`
	Name         string          `json:"name"`
	RentalPeriod pricing.Period  `json:"rentalPeriod"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type Address struct {
	FullName      string `json:"fullName"`
	StreetAddress string `json:"streetAddress"`
	Apartment     string `json:"apartment,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
}

type Order struct {
	ID              string          `json:"orderId"`
	SessionID       string          `json:"sessionId"`
	UserID          string          `json:"userId,omitempty"`
	Items           []Item          `json:"items"`
	ShippingAddress *Address        `json:"shippingAddress,omitempty"`
	PaymentMethod   string          `json:"paymentMethod"`
	PromoCode       string          `json:"promoCode,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}
