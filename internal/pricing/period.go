package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnknownPeriod = errors.New("unknown rental period")

type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, err := p.Multiplier(); err != nil {
		return "", err
	}
	return p, nil
}

// Multiplier is the number of billable days in one period.
func (p Period) Multiplier() (int64, error) {
	switch p {
	case Daily:
		return 1, nil
	case Weekly:
		return 5, nil
	case Monthly:
		return 15, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, string(p))
	}
}

// PeriodPrice is the price of one rental period at the given daily rate.
func PeriodPrice(dailyRate decimal.Decimal, p Period) (decimal.Decimal, error) {
	m, err := p.Multiplier()
	if err != nil {
		return decimal.Zero, err
	}
	return dailyRate.Mul(decimal.NewFromInt(m)), nil
}
