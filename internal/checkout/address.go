package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

var ErrInvalidAddress = errors.New("invalid shipping address")

const DefaultCountry = "United States"

type ShippingAddress struct {
	FullName      string `json:"fullName"`
	StreetAddress string `json:"streetAddress"`
	Apartment     string `json:"apartment,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
}

// Normalize trims every field and fills the default country.
func (a ShippingAddress) Normalize() ShippingAddress {
	out := ShippingAddress{
		FullName:      strings.TrimSpace(a.FullName),
		StreetAddress: strings.TrimSpace(a.StreetAddress),
		Apartment:     strings.TrimSpace(a.Apartment),
		City:          strings.TrimSpace(a.City),
		State:         strings.TrimSpace(a.State),
		ZipCode:       strings.TrimSpace(a.ZipCode),
		Country:       strings.TrimSpace(a.Country),
		Phone:         strings.TrimSpace(a.Phone),
	}
	if out.Country == "" {
		out.Country = DefaultCountry
	}
	return out
}

// Validate reports the first missing required field. Apartment is optional.
func (a ShippingAddress) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"streetAddress", a.StreetAddress},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"country", a.Country},
		{"phone", a.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidAddress, f.name)
		}
	}
	return nil
}

func (a ShippingAddress) toOrder() *order.Address {
	return &order.Address{
		FullName:      a.FullName,
		StreetAddress: a.StreetAddress,
		Apartment:     a.Apartment,
		City:          a.City,
		State:         a.State,
		ZipCode:       a.ZipCode,
		Country:       a.Country,
		Phone:         a.Phone,
	}
}
