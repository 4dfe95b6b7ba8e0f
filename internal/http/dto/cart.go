package dto

import (
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

type CartItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Price        string `json:"price"`
	RentalPeriod string `json:"rentalPeriod"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"lineTotal"`
}

type Totals struct {
	Subtotal        string `json:"subtotal"`
	DiscountPercent int    `json:"discountPercent"`
	Discount        string `json:"discount"`
	DeliveryFee     string `json:"deliveryFee"`
	Total           string `json:"total"`
	FreeDeliveryGap string `json:"freeDeliveryGap"`
}

type Cart struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	PromoCode string     `json:"promoCode,omitempty"`
	Totals    Totals     `json:"totals"`
}

type AddCartItemRequest struct {
	ProductID    int    `json:"productId"`
	Quantity     int    `json:"quantity"`
	RentalPeriod string `json:"rentalPeriod"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type UpdatePeriodRequest struct {
	RentalPeriod string `json:"rentalPeriod"`
}

func FromCartItems(items []cart.LineItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, CartItem{
			ID:           it.ID,
			Name:         it.Name,
			Image:        it.Image,
			Price:        Money(it.Price),
			RentalPeriod: string(it.RentalPeriod),
			Quantity:     it.Quantity,
			LineTotal:    Money(it.LineTotal()),
		})
	}
	return out
}

func FromTotals(t cart.Totals) Totals {
	t = t.Rounded()
	return Totals{
		Subtotal:        Money(t.Subtotal),
		DiscountPercent: t.DiscountPercent,
		Discount:        Money(t.Discount),
		DeliveryFee:     Money(t.DeliveryFee),
		Total:           Money(t.Total),
		FreeDeliveryGap: Money(t.FreeDeliveryGap),
	}
}
