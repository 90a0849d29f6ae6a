// file: internal/middleware/request_id.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofrs/uuid"
)

// ContextKey type for context keys to avoid conflicts.
type ContextKey string

const (
	// RequestIDKey is the context key for the correlation ID.
	RequestIDKey ContextKey = "request_id"
	// CurrentUserKey is the context key for the authenticated user.
	CurrentUserKey ContextKey = "current_user"
)

// HeaderXRequestID carries the correlation ID on requests and responses.
const HeaderXRequestID = "X-Request-ID"

// RequestID injects a correlation ID, honoring one supplied by the caller.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderXRequestID)
			if requestID == "" {
				if id, err := uuid.NewV4(); err == nil {
					requestID = id.String()
				} else {
					requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
				}
			}

			w.Header().Set(HeaderXRequestID, requestID)
			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the correlation ID stored on the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
