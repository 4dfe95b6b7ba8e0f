package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/wishlist"
)

type WishlistHandler struct {
	wishlist *wishlist.Service
	checkout *checkout.Controller
	logger   *zap.Logger
}

func NewWishlistHandler(wl *wishlist.Service, co *checkout.Controller, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wl, checkout: co, logger: logger}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.wishlist.List(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromWishlist(items))
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items, err := h.wishlist.Add(r.Context(), sessionID(r), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromWishlist(items))
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items, err := h.wishlist.Remove(r.Context(), sessionID(r), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromWishlist(items))
}

func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	sid := sessionID(r)
	_, items, err := h.wishlist.MoveToCart(r.Context(), sid, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	st, err := h.checkout.View(r.Context(), sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MoveToCartResponse{
		Wishlist: dto.FromWishlist(items),
		Cart:     dto.CartFromState(st),
	})
}
