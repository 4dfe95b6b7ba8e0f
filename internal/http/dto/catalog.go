package dto

import "github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"

type Review struct {
	ID      int    `json:"id"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"`
	Comment string `json:"comment"`
}

type Product struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Price        string   `json:"price"`
	Category     string   `json:"category"`
	RentalPeriod string   `json:"rentalPeriod"`
	Available    bool     `json:"available"`
	Description  string   `json:"description,omitempty"`
	Details      string   `json:"details,omitempty"`
	Reviews      []Review `json:"reviews,omitempty"`
}

type CategoryListing struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Products    []Product `json:"products"`
	NotFound    bool      `json:"notFound"`
}

type PeriodPrice struct {
	ProductID    int    `json:"productId"`
	RentalPeriod string `json:"rentalPeriod"`
	Price        string `json:"price"`
}

func FromProduct(p catalog.Product) Product {
	out := Product{
		ID:           p.ID,
		Name:         p.Name,
		Image:        p.Image,
		Price:        Money(p.Price),
		Category:     p.Category,
		RentalPeriod: string(p.RentalPeriod),
		Available:    p.Available,
		Description:  p.Description,
		Details:      p.Details,
	}
	for _, r := range p.Reviews {
		out.Reviews = append(out.Reviews, Review(r))
	}
	return out
}

func FromProducts(ps []catalog.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromListing(l catalog.Listing) CategoryListing {
	return CategoryListing{
		Slug:        l.Category.Slug,
		Title:       l.Category.Title,
		Description: l.Category.Description,
		Products:    FromProducts(l.Products),
		NotFound:    l.NotFound,
	}
}
