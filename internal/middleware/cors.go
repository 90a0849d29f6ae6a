// file: internal/middleware/cors.go
package middleware

import (
	"net/http"

	"vidhub/internal/config"

	"golang.org/x/exp/slices"
)

// CORS applies the configured origin allowlist. Auth tokens travel in
// cookies, so credentialed requests follow the config flag.
func CORS(cfg *config.CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && originAllowed(cfg.AllowedOrigins, origin)
			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				w.Header().Set("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				// Preflight from a disallowed origin gets no CORS grants.
				if !allowed {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	if slices.Contains(allowed, "*") {
		return true
	}
	return slices.Contains(allowed, origin)
}
