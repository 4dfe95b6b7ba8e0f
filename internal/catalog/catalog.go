package catalog

import (
	"fmt"
	"sort"
	"strings"
)

const (
	notFoundTitle       = "Category Not Found"
	notFoundDescription = "The requested category does not exist."
)

// Catalog is a read-only, in-memory product catalog.
type Catalog struct {
	products   map[int]Product
	categories map[string]Category
}

func New(products []Product, categories []Category) *Catalog {
	c := &Catalog{
		products:   make(map[int]Product, len(products)),
		categories: make(map[string]Category, len(categories)),
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	for _, cat := range categories {
		c.categories[cat.Slug] = cat
	}
	return c
}

// Default returns the storefront's built-in catalog.
func Default() *Catalog {
	return New(defaultProducts(), defaultCategories())
}

func (c *Catalog) Product(id int) (Product, error) {
	p, ok := c.products[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return p, nil
}

// Products lists every product ordered by id.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Category(slug string) Listing {
	slug = strings.ToLower(strings.TrimSpace(slug))
	cat, ok := c.categories[slug]
	if !ok {
		return Listing{
			Category: Category{Slug: slug, Title: notFoundTitle, Description: notFoundDescription},
			Products: []Product{},
			NotFound: true,
		}
	}

	products := []Product{}
	for _, p := range c.Products() {
		if p.Category == cat.Slug {
			products = append(products, p)
		}
	}
	return Listing{Category: cat, Products: products}
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
