package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

// LineItem is one product in the cart. Price is per unit for one RentalPeriod.
type LineItem struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	RentalPeriod pricing.Period  `json:"rentalPeriod"`
	Quantity     int             `json:"quantity"`
}

func (it LineItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ItemCount is the number of units in the cart, not the number of lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) indexOf(productID int) int {
	for i, it := range c.Items {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) clone() *Cart {
	cp := *c
	cp.Items = append([]LineItem(nil), c.Items...)
	return &cp
}
