package dto

import (
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
)

type Checkout struct {
	Flow            string                    `json:"flow"`
	Steps           []string                  `json:"steps"`
	Step            string                    `json:"step"`
	PaymentMethod   string                    `json:"paymentMethod"`
	PromoCode       string                    `json:"promoCode,omitempty"`
	ShippingAddress *checkout.ShippingAddress `json:"shippingAddress,omitempty"`
	Cart            Cart                      `json:"cart"`
}

type ApplyPromoRequest struct {
	Code string `json:"code"`
}

type PaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type PlaceOrderResponse struct {
	Order    Order    `json:"order"`
	Checkout Checkout `json:"checkout"`
}

func FromState(st checkout.State) Checkout {
	steps := make([]string, 0, len(st.Steps))
	for _, s := range st.Steps {
		steps = append(steps, string(s))
	}
	return Checkout{
		Flow:            st.Flow,
		Steps:           steps,
		Step:            string(st.Session.Step),
		PaymentMethod:   string(st.Session.PaymentMethod),
		PromoCode:       st.Session.PromoCode,
		ShippingAddress: st.Session.ShippingAddress,
		Cart:            CartFromState(st),
	}
}

// CartFromState is the cart page view: lines plus totals with any promo applied.
func CartFromState(st checkout.State) Cart {
	return Cart{
		Items:     FromCartItems(st.Cart.Items),
		ItemCount: st.ItemCount,
		PromoCode: st.Session.PromoCode,
		Totals:    FromTotals(st.Totals),
	}
}
