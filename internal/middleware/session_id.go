package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
)

const HeaderSessionID = "X-Session-Id"

const maxSessionIDLen = 128

// SessionID identifies the shopper. A missing header starts a new session and
// the id is echoed back so the client can keep using it.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(HeaderSessionID))
		if len(sid) > maxSessionIDLen || strings.ContainsAny(sid, ": \t") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(model.ErrorResponse{
				Error:         "invalid header: " + HeaderSessionID,
				CorrelationID: GetCorrelationID(r.Context()),
			})
			return
		}
		if sid == "" {
			sid = uuid.NewString()
		}

		w.Header().Set(HeaderSessionID, sid)
		ctx := context.WithValue(r.Context(), ctxSessionID, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetSessionID(ctx context.Context) string {
	return stringFromContext(ctx, ctxSessionID)
}

func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxSessionID, sid)
}
