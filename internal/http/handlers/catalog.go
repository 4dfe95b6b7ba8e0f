package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	prices  pricing.RateTable
	logger  *zap.Logger
}

func NewCatalogHandler(c *catalog.Catalog, prices pricing.RateTable, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, prices: prices, logger: logger}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.FromProducts(h.catalog.Products()))
}

// GetProduct answers 404 for unknown and malformed ids alike.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, catalog.ErrProductNotFound)
		return
	}
	p, err := h.catalog.Product(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromProduct(p))
}

func (h *CatalogHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, r, h.logger, catalog.ErrProductNotFound)
		return
	}
	if _, err := h.catalog.Product(id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	period := pricing.Weekly
	if q := r.URL.Query().Get("period"); q != "" {
		if period, err = pricing.ParsePeriod(q); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	}
	price, err := h.prices.Price(id, period)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PeriodPrice{ProductID: id, RentalPeriod: string(period), Price: dto.Money(price)})
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

// GetCategory always answers 200; unknown slugs carry notFound.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.FromListing(h.catalog.Category(chi.URLParam(r, "slug"))))
}
