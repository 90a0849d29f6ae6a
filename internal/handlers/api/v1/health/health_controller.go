// ===============================
// FILE: internal/handlers/api/v1/health/health_controller.go
// ===============================

package health

import (
	"net/http"
	"time"

	"vidhub/internal/cache"
	"vidhub/internal/database"
	"vidhub/internal/response"

	"go.uber.org/zap"
)

// HealthController serves liveness and dependency health.
type HealthController struct {
	db      *database.Manager
	cache   cache.Cache
	logger  *zap.Logger
	builder *response.Builder
}

// NewHealthController creates a new health controller.
func NewHealthController(db *database.Manager, c cache.Cache, logger *zap.Logger, builder *response.Builder) *HealthController {
	return &HealthController{db: db, cache: c, logger: logger, builder: builder}
}

// Check handles GET /api/v1/healthcheck with a DB and cache snapshot.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	dbStatus := c.db.Health(r.Context())

	cacheStatus := "healthy"
	if err := c.cache.Health(r.Context()); err != nil {
		cacheStatus = "unhealthy: " + err.Error()
	}

	c.builder.WriteSuccess(w, r, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"database":  dbStatus,
		"cache":     cacheStatus,
	}, "service is healthy")
}
