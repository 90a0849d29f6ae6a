// ===============================
// FILE: internal/handlers/api/v1/subscriptions/subscriptions_controller.go
// ===============================

package subscriptions

import (
	"net/http"
	"strconv"

	"vidhub/internal/middleware"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SubscriptionController handles subscription endpoints.
type SubscriptionController struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewSubscriptionController creates a new subscription controller.
func NewSubscriptionController(sc *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *SubscriptionController {
	return &SubscriptionController{services: sc, logger: logger, builder: builder}
}

// Toggle handles POST /api/v1/subscriptions/c/{channelId}.
func (c *SubscriptionController) Toggle(w http.ResponseWriter, r *http.Request) {
	channelID, ok := c.channelID(w, r)
	if !ok {
		return
	}

	subscribed, err := c.services.Subscriptions.Toggle(r.Context(), middleware.GetUserID(r.Context()), channelID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	message := "unsubscribed"
	if subscribed {
		message = "subscribed"
	}
	c.builder.WriteSuccess(w, r, map[string]bool{"subscribed": subscribed}, message)
}

// Subscribers handles GET /api/v1/subscriptions/c/{channelId}.
func (c *SubscriptionController) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, ok := c.channelID(w, r)
	if !ok {
		return
	}

	profiles, err := c.services.Subscriptions.ListSubscribers(r.Context(), channelID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, profiles, "subscribers fetched successfully")
}

// SubscribedChannels handles GET /api/v1/subscriptions.
func (c *SubscriptionController) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	profiles, err := c.services.Subscriptions.ListSubscribedChannels(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, profiles, "subscribed channels fetched successfully")
}

func (c *SubscriptionController) channelID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "channelId"), 10, 64)
	if err != nil || id <= 0 {
		c.builder.WriteError(w, r, services.NewValidationError("invalid channel id", err))
		return 0, false
	}
	return id, true
}
