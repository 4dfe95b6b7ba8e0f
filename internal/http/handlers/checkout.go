package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/account"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
)

type CheckoutHandler struct {
	checkout *checkout.Controller
	accounts account.Authenticator
	logger   *zap.Logger
}

func NewCheckoutHandler(co *checkout.Controller, accounts account.Authenticator, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: co, accounts: accounts, logger: logger}
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.write(w, r)(h.checkout.View(r.Context(), sessionID(r)))
}

func (h *CheckoutHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyPromoRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.write(w, r)(h.checkout.ApplyPromo(r.Context(), sessionID(r), req.Code))
}

func (h *CheckoutHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	h.write(w, r)(h.checkout.ProceedToCheckout(r.Context(), sessionID(r)))
}

func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	var addr checkout.ShippingAddress
	if err := decode(r, &addr); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.write(w, r)(h.checkout.SubmitShipping(r.Context(), sessionID(r), addr))
}

func (h *CheckoutHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentMethodRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.write(w, r)(h.checkout.SelectPaymentMethod(r.Context(), sessionID(r), checkout.PaymentMethod(req.PaymentMethod)))
}

func (h *CheckoutHandler) Review(w http.ResponseWriter, r *http.Request) {
	h.write(w, r)(h.checkout.ReviewOrder(r.Context(), sessionID(r)))
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.write(w, r)(h.checkout.Back(r.Context(), sessionID(r)))
}

// PlaceOrder attaches the logged-in user when there is one; guests may rent too.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)

	var userID string
	u, err := h.accounts.CurrentUser(r.Context(), sid)
	switch {
	case err == nil:
		userID = u.ID
	case !errors.Is(err, account.ErrNotLoggedIn):
		writeError(w, r, h.logger, err)
		return
	}

	o, st, err := h.checkout.PlaceOrder(r.Context(), sid, userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.PlaceOrderResponse{
		Order:    dto.FromOrder(o),
		Checkout: dto.FromState(st),
	})
}

func (h *CheckoutHandler) write(w http.ResponseWriter, r *http.Request) func(checkout.State, error) {
	return func(st checkout.State, err error) {
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.FromState(st))
	}
}
