package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/badge"
)

type BadgeHandler struct {
	board  *badge.Board
	logger *zap.Logger
}

func NewBadgeHandler(board *badge.Board, logger *zap.Logger) *BadgeHandler {
	return &BadgeHandler{board: board, logger: logger}
}

func (h *BadgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.board.Get(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
