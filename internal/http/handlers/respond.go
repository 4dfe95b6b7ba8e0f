package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/account"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/promo"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/wishlist"
)

var (
	errBadRequest = errors.New("bad request")
	errBadID      = errors.New("invalid product id")
)

// statuses is checked in order; the first match wins.
var statuses = []struct {
	err    error
	status int
}{
	{errBadRequest, http.StatusBadRequest},
	{errBadID, http.StatusBadRequest},
	{pricing.ErrUnknownPeriod, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{cart.ErrProductUnavailable, http.StatusBadRequest},
	{wishlist.ErrUnavailable, http.StatusBadRequest},
	{promo.ErrEmptyCode, http.StatusBadRequest},
	{promo.ErrInvalidCode, http.StatusBadRequest},
	{checkout.ErrInvalidAddress, http.StatusBadRequest},
	{checkout.ErrUnknownPaymentMethod, http.StatusBadRequest},
	{checkout.ErrEmptyCart, http.StatusBadRequest},
	{account.ErrPasswordMismatch, http.StatusBadRequest},
	{account.ErrTermsNotAccepted, http.StatusBadRequest},
	{account.ErrInvalidEmail, http.StatusBadRequest},
	{account.ErrWeakPassword, http.StatusBadRequest},
	{account.ErrPasswordTooLong, http.StatusBadRequest},
	{account.ErrNameRequired, http.StatusBadRequest},

	{catalog.ErrProductNotFound, http.StatusNotFound},
	{cart.ErrItemNotInCart, http.StatusNotFound},
	{wishlist.ErrNotInWishlist, http.StatusNotFound},
	{order.ErrNotFound, http.StatusNotFound},

	{account.ErrInvalidCredentials, http.StatusUnauthorized},
	{account.ErrNotLoggedIn, http.StatusUnauthorized},
	{account.ErrEmailTaken, http.StatusConflict},
	{checkout.ErrIllegalTransition, http.StatusConflict},
}

func statusFor(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// messageFor keeps infrastructure details out of responses.
func messageFor(err error, status int) string {
	if msg, ok := promo.Message(err); ok && status < http.StatusInternalServerError {
		return msg
	}
	switch {
	case status >= http.StatusInternalServerError:
		return "internal error"
	case status == http.StatusNotFound:
		return "not found"
	case isAccountError(err):
		return account.Message(err)
	default:
		return err.Error()
	}
}

func isAccountError(err error) bool {
	return account.Message(err) != account.Message(nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
	}
	writeJSON(w, status, model.ErrorResponse{
		Error:         messageFor(err, status),
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}

func productID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

func sessionID(r *http.Request) string {
	return middleware.GetSessionID(r.Context())
}
