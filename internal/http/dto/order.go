package dto

import (
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

type OrderItem struct {
	ProductID    int    `json:"productId"`
	Name         string `json:"name"`
	RentalPeriod string `json:"rentalPeriod"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
}

type Order struct {
	OrderID         string         `json:"orderId"`
	Status          string         `json:"status"`
	Items           []OrderItem    `json:"items"`
	ShippingAddress *order.Address `json:"shippingAddress,omitempty"`
	PaymentMethod   string         `json:"paymentMethod"`
	PromoCode       string         `json:"promoCode,omitempty"`
	Subtotal        string         `json:"subtotal"`
	Discount        string         `json:"discount"`
	DeliveryFee     string         `json:"deliveryFee"`
	Total           string         `json:"total"`
	CreatedAt       time.Time      `json:"createdAt"`
}

func FromOrder(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			ProductID:    it.ProductID,
			Name:         it.Name,
			RentalPeriod: string(it.RentalPeriod),
			Quantity:     it.Quantity,
			Price:        Money(it.Price),
		})
	}
	return Order{
		OrderID:         o.ID,
		Status:          string(o.Status),
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		PromoCode:       o.PromoCode,
		Subtotal:        Money(o.Subtotal),
		Discount:        Money(o.Discount),
		DeliveryFee:     Money(o.DeliveryFee),
		Total:           Money(o.Total),
		CreatedAt:       o.CreatedAt,
	}
}
