// file: internal/middleware/middleware.go
package middleware

import (
	"net/http"

	"vidhub/internal/config"
	"vidhub/internal/response"

	"go.uber.org/zap"
)

// Chain applies middleware in declaration order: the first entry is the
// outermost wrapper.
func Chain(h http.Handler, wrappers ...func(http.Handler) http.Handler) http.Handler {
	for i := len(wrappers) - 1; i >= 0; i-- {
		h = wrappers[i](h)
	}
	return h
}

// Base returns the ordered pipeline applied to every request: request ID,
// access logging, panic recovery, CORS, then body limits. The auth gate is
// mounted per route group, not here.
func Base(cfg *config.Config, builder *response.Builder, logger *zap.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RequestID(),
		Logger(logger),
		Recovery(builder, logger),
		CORS(&cfg.CORS),
		BodyLimit(cfg.Server.MaxBodyBytes, cfg.Server.MaxUploadBytes),
	}
}
