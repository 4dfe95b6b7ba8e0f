package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/account"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/badge"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/handlers"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/kv"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/latency"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/promo"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/wishlist"
)

func newTestRouter(t *testing.T, flow checkout.Flow, probes ...handlers.HealthProbe) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	store := kv.NewMemoryStore()
	bus := events.NewBus()
	cat := catalog.Default()
	rates := pricing.DefaultRates()

	carts := cart.NewService(cart.NewRepository(store, time.Hour, logger), cat, rates, bus, logger)
	wl := wishlist.NewService(store, time.Hour, cat, carts, bus, logger)
	orders := order.NewMemoryRepository()
	co := checkout.NewController(checkout.Deps{
		Flow:      flow,
		Sessions:  checkout.NewSessionRepository(store, time.Hour, logger),
		Carts:     carts,
		Promos:    promo.NewCodeValidator(map[string]int{"BUCKET10": 10}, latency.None),
		Orders:    orders,
		Publisher: events.LogPublisher{Logger: logger},
		Delivery:  cart.DefaultDelivery,
		Logger:    logger,
	})
	board := badge.NewBoard(bus, carts, wl, time.Hour)
	t.Cleanup(board.Close)

	return NewRouter(Deps{
		Logger:       logger,
		Cfg:          config.Config{CORSAllowOrigins: []string{"*"}},
		Catalog:      cat,
		Prices:       rates,
		Carts:        carts,
		Wishlist:     wl,
		Checkout:     co,
		Accounts:     account.NewLocalAuthenticator(store, time.Hour, latency.None, logger),
		Orders:       orders,
		Badges:       board,
		HealthProbes: probes,
	})
}

type client struct {
	t      *testing.T
	router http.Handler
	sid    string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.sid != "" {
		req.Header.Set(middleware.HeaderSessionID, c.sid)
	}
	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealthRoute(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep)}

	rr := c.do(http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[dto.HealthResponse](t, rr)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Service: "storefront"}, body)
}

func TestDependencyHealth(t *testing.T) {
	probes := []handlers.HealthProbe{
		{Name: "store", Check: func(context.Context) error { return nil }},
		{Name: "broker", Check: func(context.Context) error { return errors.New("connection refused") }},
	}
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep, probes...)}

	rr := c.do(http.MethodGet, "/health/dependencies", nil)

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	body := decodeBody[dto.DependenciesHealthResponse](t, rr)
	assert.Equal(t, "degraded", body.Status)
	require.Len(t, body.Dependencies, 2)
	assert.True(t, body.Dependencies[0].OK)
	assert.Equal(t, "connection refused", body.Dependencies[1].Error)
}

func TestCatalogRoutes(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep)}

	rr := c.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]dto.Product](t, rr), 10)

	rr = c.do(http.MethodGet, "/api/products/3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	p := decodeBody[dto.Product](t, rr)
	assert.Equal(t, catalog.Electronics, p.Category)
	assert.NotEmpty(t, p.Reviews)

	tests := map[string]struct {
		path   string
		status int
	}{
		"unknown product":   {path: "/api/products/999", status: http.StatusNotFound},
		"malformed product": {path: "/api/products/abc", status: http.StatusNotFound},
		"unknown period":    {path: "/api/products/3/price?period=yearly", status: http.StatusBadRequest},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rr := c.do(http.MethodGet, tc.path, nil)
			assert.Equal(t, tc.status, rr.Code)
		})
	}

	rr = c.do(http.MethodGet, "/api/products/3/price?period=monthly", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, dto.PeriodPrice{ProductID: 3, RentalPeriod: "monthly", Price: "374.85"}, decodeBody[dto.PeriodPrice](t, rr))
}

func TestUnknownCategoryIsNotAnError(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep)}

	rr := c.do(http.MethodGet, "/api/categories/garden", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	l := decodeBody[dto.CategoryListing](t, rr)
	assert.True(t, l.NotFound)
	assert.Equal(t, "Category Not Found", l.Title)
	assert.Empty(t, l.Products)
}

func TestSessionIDIsIssuedAndHonoured(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep)}

	rr := c.do(http.MethodPost, "/api/cart/items", dto.AddCartItemRequest{ProductID: 1, Quantity: 1, RentalPeriod: "weekly"})
	require.Equal(t, http.StatusCreated, rr.Code)
	sid := rr.Header().Get(middleware.HeaderSessionID)
	require.NotEmpty(t, sid)

	other := c.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 0, decodeBody[dto.Cart](t, other).ItemCount, "a new session starts empty")

	c.sid = sid
	same := c.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 1, decodeBody[dto.Cart](t, same).ItemCount)
}

func TestCartRoutes(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep), sid: "s1"}

	rr := c.do(http.MethodPost, "/api/cart/items", dto.AddCartItemRequest{ProductID: 1, Quantity: 2, RentalPeriod: "weekly"})
	require.Equal(t, http.StatusCreated, rr.Code)
	got := decodeBody[dto.Cart](t, rr)
	assert.Equal(t, 2, got.ItemCount)
	assert.Equal(t, "89.90", got.Totals.Subtotal)
	assert.Equal(t, "15.99", got.Totals.DeliveryFee)
	assert.Equal(t, "105.89", got.Totals.Total)

	rr = c.do(http.MethodPatch, "/api/cart/items/1/period", dto.UpdatePeriodRequest{RentalPeriod: "monthly"})
	require.Equal(t, http.StatusOK, rr.Code)
	got = decodeBody[dto.Cart](t, rr)
	assert.Equal(t, "134.85", got.Items[0].Price)
	assert.Equal(t, "269.70", got.Totals.Subtotal)
	assert.Equal(t, "0.00", got.Totals.DeliveryFee)

	rr = c.do(http.MethodPatch, "/api/cart/items/1/quantity", dto.UpdateQuantityRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = c.do(http.MethodPatch, "/api/cart/items/1/quantity", dto.UpdateQuantityRequest{Quantity: cart.MaxQuantity + 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = c.do(http.MethodDelete, "/api/cart/items/7", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = c.do(http.MethodPost, "/api/cart/items", dto.AddCartItemRequest{ProductID: 5, Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = c.do(http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeBody[dto.Cart](t, rr).Items)
}

func TestErrorBodyCarriesCorrelationID(t *testing.T) {
	router := newTestRouter(t, checkout.FourStep)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewBufferString("{not json"))
	req.Header.Set(middleware.HeaderCorrelationID, "cid-42")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, model.ErrorResponse{Error: "bad request", CorrelationID: "cid-42"}, decodeBody[model.ErrorResponse](t, rr))
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep), sid: "s1"}

	rr := c.do(http.MethodPost, "/api/checkout/proceed", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Your cart is empty", decodeBody[model.ErrorResponse](t, rr).Error)

	rr = c.do(http.MethodPost, "/api/cart/items", dto.AddCartItemRequest{ProductID: 1, Quantity: 2, RentalPeriod: "weekly"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = c.do(http.MethodPost, "/api/checkout/promo", dto.ApplyPromoRequest{Code: " "})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please enter a promo code", decodeBody[model.ErrorResponse](t, rr).Error)

	rr = c.do(http.MethodPost, "/api/checkout/promo", dto.ApplyPromoRequest{Code: "nope"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid promo code", decodeBody[model.ErrorResponse](t, rr).Error)

	rr = c.do(http.MethodPost, "/api/checkout/promo", dto.ApplyPromoRequest{Code: "bucket10"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "96.90", decodeBody[dto.Checkout](t, rr).Cart.Totals.Total)

	rr = c.do(http.MethodPost, "/api/checkout/review", nil)
	require.Equal(t, http.StatusConflict, rr.Code)

	rr = c.do(http.MethodPost, "/api/checkout/proceed", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "shipping", decodeBody[dto.Checkout](t, rr).Step)

	rr = c.do(http.MethodPost, "/api/checkout/shipping", checkout.ShippingAddress{FullName: "Jane Doe"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = c.do(http.MethodPost, "/api/checkout/shipping", checkout.ShippingAddress{
		FullName:      "Jane Doe",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		State:         "IL",
		ZipCode:       "62701",
		Phone:         "555-0100",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = c.do(http.MethodPut, "/api/checkout/payment-method", dto.PaymentMethodRequest{PaymentMethod: "cash"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr = c.do(http.MethodPut, "/api/checkout/payment-method", dto.PaymentMethodRequest{PaymentMethod: "paypal"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = c.do(http.MethodPost, "/api/checkout/review", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = c.do(http.MethodPost, "/api/checkout/place", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	placed := decodeBody[dto.PlaceOrderResponse](t, rr)
	assert.Equal(t, "96.90", placed.Order.Total)
	assert.Equal(t, "pending", placed.Order.Status)
	assert.Equal(t, "cart", placed.Checkout.Step)
	assert.Equal(t, 0, placed.Checkout.Cart.ItemCount)

	rr = c.do(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	orders := decodeBody[[]dto.Order](t, rr)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.Order.OrderID, orders[0].OrderID)

	rr = c.do(http.MethodGet, "/api/orders/"+placed.Order.OrderID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	stranger := &client{t: t, router: c.router, sid: "s2"}
	rr = stranger.do(http.MethodGet, "/api/orders/"+placed.Order.OrderID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestThreeStepFlowOverHTTP(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.ThreeStep), sid: "s1"}

	rr := c.do(http.MethodPost, "/api/cart/items", dto.AddCartItemRequest{ProductID: 2, Quantity: 1})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = c.do(http.MethodPost, "/api/checkout/proceed", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	co := decodeBody[dto.Checkout](t, rr)
	assert.Equal(t, "payment", co.Step)
	assert.Equal(t, []string{"cart", "payment", "review"}, co.Steps)

	rr = c.do(http.MethodPost, "/api/checkout/back", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "cart", decodeBody[dto.Checkout](t, rr).Step)
}

func TestWishlistRoutes(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep), sid: "s1"}

	rr := c.do(http.MethodPost, "/api/wishlist/items/3", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = c.do(http.MethodPost, "/api/wishlist/items/5", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, decodeBody[dto.Wishlist](t, rr).Count)

	rr = c.do(http.MethodPost, "/api/wishlist/items/5/cart", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unavailable items stay on the wishlist")

	rr = c.do(http.MethodPost, "/api/wishlist/items/3/cart", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	moved := decodeBody[dto.MoveToCartResponse](t, rr)
	assert.Equal(t, 1, moved.Wishlist.Count)
	assert.Equal(t, 1, moved.Cart.ItemCount)

	rr = c.do(http.MethodPost, "/api/cart/items/3/wishlist", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeBody[dto.Cart](t, rr).ItemCount)

	rr = c.do(http.MethodGet, "/api/badges", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, badge.Counts{Cart: 0, Wishlist: 2}, decodeBody[badge.Counts](t, rr))

	rr = c.do(http.MethodDelete, "/api/wishlist/items/9", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAccountRoutes(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, checkout.FourStep), sid: "s1"}

	reg := account.Registration{
		Email:           "jane@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
		FirstName:       "Jane",
		AgreeToTerms:    true,
	}
	rr := c.do(http.MethodPost, "/api/account/register", reg)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Passwords do not match", decodeBody[model.ErrorResponse](t, rr).Error)

	reg.Password = strings.Repeat("p", 80)
	reg.ConfirmPassword = reg.Password
	rr = c.do(http.MethodPost, "/api/account/register", reg)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Password must be at most 72 characters", decodeBody[model.ErrorResponse](t, rr).Error)

	reg.Password, reg.ConfirmPassword = "secret1", "secret1"
	rr = c.do(http.MethodPost, "/api/account/register", reg)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = c.do(http.MethodPost, "/api/account/register", reg)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = c.do(http.MethodGet, "/api/account/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = c.do(http.MethodPost, "/api/account/login", dto.LoginRequest{Email: "jane@example.com", Password: "nope"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid email or password", decodeBody[model.ErrorResponse](t, rr).Error)

	rr = c.do(http.MethodPost, "/api/account/login", dto.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = c.do(http.MethodPatch, "/api/account/me", account.ProfileUpdate{Name: "Jane Roe", Phone: "555-0100"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Jane Roe", decodeBody[account.User](t, rr).Name)

	rr = c.do(http.MethodPost, "/api/account/logout", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = c.do(http.MethodGet, "/api/account/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, checkout.FourStep)

	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "http://shop.test")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://shop.test", rr.Header().Get("Access-Control-Allow-Origin"))
}
