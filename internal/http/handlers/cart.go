package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/wishlist"
)

// CartHandler answers every cart call with the full cart view, totals
// included, so the client never computes money itself.
type CartHandler struct {
	carts    *cart.Service
	wishlist *wishlist.Service
	checkout *checkout.Controller
	logger   *zap.Logger
}

func NewCartHandler(carts *cart.Service, wl *wishlist.Service, co *checkout.Controller, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, wishlist: wl, checkout: co, logger: logger}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	period := pricing.Weekly
	if req.RentalPeriod != "" {
		var err error
		if period, err = pricing.ParsePeriod(req.RentalPeriod); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	}

	if _, err := h.carts.AddItem(r.Context(), sessionID(r), req.ProductID, req.Quantity, period); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r, http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req dto.UpdateQuantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if _, err := h.carts.UpdateQuantity(r.Context(), sessionID(r), id, req.Quantity); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}

func (h *CartHandler) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req dto.UpdatePeriodRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	period, err := pricing.ParsePeriod(req.RentalPeriod)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if _, err := h.carts.UpdateRentalPeriod(r.Context(), sessionID(r), id, period); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if _, err := h.carts.RemoveItem(r.Context(), sessionID(r), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}

func (h *CartHandler) MoveToWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if _, err := h.wishlist.MoveFromCart(r.Context(), sessionID(r), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), sessionID(r)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.respond(w, r, http.StatusOK)
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, status int) {
	st, err := h.checkout.View(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, status, dto.CartFromState(st))
}
