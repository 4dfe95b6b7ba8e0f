package pricing

import "github.com/shopspring/decimal"

// DefaultDailyRate applies to products missing from the rate table.
var DefaultDailyRate = decimal.RequireFromString("9.99")

// RateTable maps product id to its base daily rate.
type RateTable map[int]decimal.Decimal

func DefaultRates() RateTable {
	return RateTable{
		1:  decimal.RequireFromString("8.99"),
		2:  decimal.RequireFromString("5.99"),
		3:  decimal.RequireFromString("24.99"),
		4:  decimal.RequireFromString("4.99"),
		5:  decimal.RequireFromString("15.99"),
		6:  decimal.RequireFromString("1.99"),
		7:  decimal.RequireFromString("6.99"),
		8:  decimal.RequireFromString("5.99"),
		9:  decimal.RequireFromString("2.99"),
		10: decimal.RequireFromString("2.59"),
	}
}

func (t RateTable) DailyRate(productID int) decimal.Decimal {
	if r, ok := t[productID]; ok {
		return r
	}
	return DefaultDailyRate
}

func (t RateTable) Price(productID int, p Period) (decimal.Decimal, error) {
	return PeriodPrice(t.DailyRate(productID), p)
}
