package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
)

const serviceName = "storefront"

// HealthProbe checks one backing dependency, e.g. the Redis store or the broker.
type HealthProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	Probes  []HealthProbe
	Timeout time.Duration
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Service: serviceName})
}

// Dependencies runs every probe concurrently and answers 503 if any fails.
func (h *HealthHandler) Dependencies(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	results := make([]dto.DependencyHealth, len(h.Probes))

	var wg sync.WaitGroup
	wg.Add(len(h.Probes))
	for i := range h.Probes {
		go func() {
			defer wg.Done()
			res := dto.DependencyHealth{Name: h.Probes[i].Name, OK: true}
			if err := h.Probes[i].Check(ctx); err != nil {
				res.OK = false
				res.Error = err.Error()
			}
			results[i] = res
		}()
	}
	wg.Wait()

	status, code := "ok", http.StatusOK
	for _, res := range results {
		if !res.OK {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}
	writeJSON(w, code, dto.DependenciesHealthResponse{Status: status, Service: serviceName, Dependencies: results})
}
