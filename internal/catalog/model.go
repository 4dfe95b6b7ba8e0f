package catalog

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

var ErrProductNotFound = errors.New("product not found")

type Review struct {
	ID      int    `json:"id"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"`
	Comment string `json:"comment"`
}

// Product is a rentable catalog entry. Price is the advertised price for
// RentalPeriod; cart prices come from the rate table.
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	RentalPeriod pricing.Period  `json:"rentalPeriod"`
	Available    bool            `json:"available"`
	Description  string          `json:"description,omitempty"`
	Details      string          `json:"details,omitempty"`
	Reviews      []Review        `json:"reviews,omitempty"`
}

// Summary drops the detail-page fields for listings.
func (p Product) Summary() Product {
	p.Description = ""
	p.Details = ""
	p.Reviews = nil
	return p
}

type Category struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Listing is the result of a category lookup. An unknown slug yields a
// NotFound listing rather than an error.
type Listing struct {
	Category Category  `json:"category"`
	Products []Product `json:"products"`
	NotFound bool      `json:"notFound"`
}
