// ===============================
// FILE: internal/handlers/api/v1/dashboard/dashboard_controller.go
// ===============================

package dashboard

import (
	"net/http"

	"vidhub/internal/middleware"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"go.uber.org/zap"
)

// DashboardController serves the channel owner's aggregates.
type DashboardController struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewDashboardController creates a new dashboard controller.
func NewDashboardController(sc *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *DashboardController {
	return &DashboardController{services: sc, logger: logger, builder: builder}
}

// Stats handles GET /api/v1/dashboard/stats: total views, subscribers,
// videos and likes across the caller's channel.
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.services.Videos.GetChannelStats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, stats, "channel stats fetched successfully")
}

// Videos handles GET /api/v1/dashboard/videos: every video the caller
// owns, published or not.
func (c *DashboardController) Videos(w http.ResponseWriter, r *http.Request) {
	videos, err := c.services.Videos.GetChannelVideos(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, videos, "channel videos fetched successfully")
}
