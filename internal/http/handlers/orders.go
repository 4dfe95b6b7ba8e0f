package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

type OrderHandler struct {
	orders order.Repository
	logger *zap.Logger
}

func NewOrderHandler(orders order.Repository, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListBySession(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	out := make([]dto.Order, 0, len(orders))
	for i := range orders {
		out = append(out, dto.FromOrder(&orders[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get hides orders placed by other sessions behind a 404.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if o.SessionID != sessionID(r) {
		writeError(w, r, h.logger, order.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromOrder(o))
}
