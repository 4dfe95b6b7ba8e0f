package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/account"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
)

type AccountHandler struct {
	accounts account.Authenticator
	logger   *zap.Logger
}

func NewAccountHandler(accounts account.Authenticator, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// Register does not log the new user in.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req account.Registration
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	u, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	u, err := h.accounts.Login(r.Context(), sessionID(r), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context(), sessionID(r)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.accounts.CurrentUser(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req account.ProfileUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	u, err := h.accounts.UpdateProfile(r.Context(), sessionID(r), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
