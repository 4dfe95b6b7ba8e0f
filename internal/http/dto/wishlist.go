package dto

import "github.com/andreasstove999/ecommerce-system/storefront-go/internal/wishlist"

type WishlistItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Price        string `json:"price"`
	RentalPeriod string `json:"rentalPeriod"`
	Available    bool   `json:"available"`
}

type Wishlist struct {
	Items []WishlistItem `json:"items"`
	Count int            `json:"count"`
}

type MoveToCartResponse struct {
	Wishlist Wishlist `json:"wishlist"`
	Cart     Cart     `json:"cart"`
}

func FromWishlist(items []wishlist.Item) Wishlist {
	out := Wishlist{Items: make([]WishlistItem, 0, len(items)), Count: len(items)}
	for _, it := range items {
		out.Items = append(out.Items, WishlistItem{
			ID:           it.ID,
			Name:         it.Name,
			Image:        it.Image,
			Price:        Money(it.Price),
			RentalPeriod: string(it.RentalPeriod),
			Available:    it.Available,
		})
	}
	return out
}
