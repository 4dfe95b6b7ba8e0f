package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/account"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/badge"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/handlers"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/wishlist"
)

type Deps struct {
	Logger *zap.Logger
	Cfg    config.Config

	Catalog  *catalog.Catalog
	Prices   pricing.RateTable
	Carts    *cart.Service
	Wishlist *wishlist.Service
	Checkout *checkout.Controller
	Accounts account.Authenticator
	Orders   order.Repository
	Badges   *badge.Board

	HealthProbes []handlers.HealthProbe
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middlewares (outer -> inner)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.SessionID)
	r.Use(middleware.Logging(d.Logger))

	// Health
	health := &handlers.HealthHandler{Probes: d.HealthProbes}
	r.Get("/health", health.Liveness)
	r.Get("/health/dependencies", health.Dependencies)

	r.Route("/api", func(r chi.Router) {
		cat := handlers.NewCatalogHandler(d.Catalog, d.Prices, d.Logger)
		r.Get("/products", cat.ListProducts)
		r.Get("/products/{id}", cat.GetProduct)
		r.Get("/products/{id}/price", cat.GetPrice)
		r.Get("/categories", cat.ListCategories)
		r.Get("/categories/{slug}", cat.GetCategory)

		c := handlers.NewCartHandler(d.Carts, d.Wishlist, d.Checkout, d.Logger)
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", c.GetCart)
			r.Delete("/", c.Clear)
			r.Post("/items", c.AddItem)
			r.Patch("/items/{id}/quantity", c.UpdateQuantity)
			r.Patch("/items/{id}/period", c.UpdatePeriod)
			r.Delete("/items/{id}", c.RemoveItem)
			r.Post("/items/{id}/wishlist", c.MoveToWishlist)
		})

		co := handlers.NewCheckoutHandler(d.Checkout, d.Accounts, d.Logger)
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", co.Get)
			r.Post("/promo", co.ApplyPromo)
			r.Post("/proceed", co.Proceed)
			r.Post("/shipping", co.SubmitShipping)
			r.Put("/payment-method", co.SelectPaymentMethod)
			r.Post("/review", co.Review)
			r.Post("/back", co.Back)
			r.Post("/place", co.PlaceOrder)
		})

		wl := handlers.NewWishlistHandler(d.Wishlist, d.Checkout, d.Logger)
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wl.List)
			r.Post("/items/{id}", wl.Add)
			r.Delete("/items/{id}", wl.Remove)
			r.Post("/items/{id}/cart", wl.MoveToCart)
		})

		ord := handlers.NewOrderHandler(d.Orders, d.Logger)
		r.Get("/orders", ord.List)
		r.Get("/orders/{orderId}", ord.Get)

		acc := handlers.NewAccountHandler(d.Accounts, d.Logger)
		r.Route("/account", func(r chi.Router) {
			r.Post("/register", acc.Register)
			r.Post("/login", acc.Login)
			r.Post("/logout", acc.Logout)
			r.Get("/me", acc.Me)
			r.Patch("/me", acc.UpdateProfile)
		})

		b := handlers.NewBadgeHandler(d.Badges, d.Logger)
		r.Get("/badges", b.Get)
	})

	return otelhttp.NewHandler(r, "storefront")
}
