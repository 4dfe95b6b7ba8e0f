package promo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/latency"
)

var (
	ErrEmptyCode   = errors.New("empty promo code")
	ErrInvalidCode = errors.New("invalid promo code")
)

var messages = []struct {
	err error
	msg string
}{
	{ErrEmptyCode, "Please enter a promo code"},
	{ErrInvalidCode, "Invalid promo code"},
}

// Message returns the text shown under the promo field, or false when err is
// not a promo rejection.
func Message(err error) (string, bool) {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg, true
		}
	}
	return "", false
}

// Discount is an accepted code and the percentage it takes off the subtotal.
type Discount struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}

type Validator interface {
	Validate(ctx context.Context, code string) (Discount, error)
}

// CodeValidator accepts a fixed set of codes after a simulated lookup.
type CodeValidator struct {
	codes map[string]int
	delay latency.Delay
}

func NewCodeValidator(codes map[string]int, delay latency.Delay) *CodeValidator {
	if delay == nil {
		delay = latency.None
	}
	normalised := make(map[string]int, len(codes))
	for c, pct := range codes {
		normalised[Normalise(c)] = pct
	}
	return &CodeValidator{codes: normalised, delay: delay}
}

func Normalise(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate rejects blank input immediately; everything else pays the lookup delay.
func (v *CodeValidator) Validate(ctx context.Context, code string) (Discount, error) {
	code = Normalise(code)
	if code == "" {
		return Discount{}, ErrEmptyCode
	}
	if err := v.delay(ctx); err != nil {
		return Discount{}, fmt.Errorf("validate promo code: %w", err)
	}
	pct, ok := v.codes[code]
	if !ok {
		return Discount{}, ErrInvalidCode
	}
	return Discount{Code: code, Percent: pct}, nil
}

// ParseCodes reads "CODE=PERCENT" pairs separated by commas, e.g. "BUCKET10=10".
func ParseCodes(s string) (map[string]int, error) {
	out := map[string]int{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, pctStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("promo code %q: missing percentage", pair)
		}
		pct, err := strconv.Atoi(strings.TrimSpace(pctStr))
		if err != nil || pct <= 0 || pct > 100 {
			return nil, fmt.Errorf("promo code %q: percentage must be 1-100", pair)
		}
		code = Normalise(code)
		if code == "" {
			return nil, fmt.Errorf("promo code %q: empty code", pair)
		}
		out[code] = pct
	}
	return out, nil
}
