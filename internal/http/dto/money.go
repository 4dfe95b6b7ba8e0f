package dto

import "github.com/shopspring/decimal"

// Money renders an amount with exactly two decimals, e.g. "15.99".
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
