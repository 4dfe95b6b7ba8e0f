package cart

import "github.com/shopspring/decimal"

// DeliveryPolicy waives the fee when the subtotal is strictly above FreeThreshold.
type DeliveryPolicy struct {
	FreeThreshold decimal.Decimal
	Fee           decimal.Decimal
}

var DefaultDelivery = DeliveryPolicy{
	FreeThreshold: decimal.NewFromInt(150),
	Fee:           decimal.RequireFromString("15.99"),
}

type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent int             `json:"discountPercent"`
	Discount        decimal.Decimal `json:"discount"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	Total           decimal.Decimal `json:"total"`
	// FreeDeliveryGap is how much more the shopper must add to lose the fee.
	FreeDeliveryGap decimal.Decimal `json:"freeDeliveryGap"`
}

func ComputeTotals(items []LineItem, discountPercent int) Totals {
	return DefaultDelivery.Compute(items, discountPercent)
}

// Compute is exact; call Rounded for display values.
func (p DeliveryPolicy) Compute(items []LineItem, discountPercent int) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	discount := subtotal.Mul(decimal.NewFromInt(int64(discountPercent))).Div(decimal.NewFromInt(100))

	fee := decimal.Zero
	gap := decimal.Zero
	if !subtotal.GreaterThan(p.FreeThreshold) {
		fee = p.Fee
		gap = p.FreeThreshold.Sub(subtotal)
	}

	return Totals{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		Discount:        discount,
		DeliveryFee:     fee,
		Total:           subtotal.Sub(discount).Add(fee),
		FreeDeliveryGap: gap,
	}
}

// Rounded rounds every amount to cents, half away from zero.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:        t.Subtotal.Round(2),
		DiscountPercent: t.DiscountPercent,
		Discount:        t.Discount.Round(2),
		DeliveryFee:     t.DeliveryFee.Round(2),
		Total:           t.Total.Round(2),
		FreeDeliveryGap: t.FreeDeliveryGap.Round(2),
	}
}
