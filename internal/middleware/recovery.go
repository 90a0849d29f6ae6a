// file: internal/middleware/recovery.go
package middleware

import (
	"net/http"
	"runtime/debug"

	"vidhub/internal/response"
	"vidhub/internal/services"

	"go.uber.org/zap"
)

// Recovery converts handler panics into a 500 envelope and logs the stack.
func Recovery(builder *response.Builder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic recovered",
						zap.String("request_id", GetRequestID(r.Context())),
						zap.String("path", r.URL.Path),
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()),
					)
					builder.WriteError(w, r, services.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
