// ===============================
// FILE: internal/handlers/api/v1/likes/likes_controller.go
// ===============================

package likes

import (
	"context"
	"net/http"
	"strconv"

	"vidhub/internal/middleware"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LikeController handles like toggles and the liked-video listing.
type LikeController struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewLikeController creates a new like controller.
func NewLikeController(sc *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *LikeController {
	return &LikeController{services: sc, logger: logger, builder: builder}
}

// ToggleVideo handles POST /api/v1/likes/toggle/v/{videoId}.
func (c *LikeController) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, "videoId", c.services.Likes.ToggleVideoLike)
}

// ToggleComment handles POST /api/v1/likes/toggle/c/{commentId}.
func (c *LikeController) ToggleComment(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, "commentId", c.services.Likes.ToggleCommentLike)
}

// ToggleTweet handles POST /api/v1/likes/toggle/t/{tweetId}.
func (c *LikeController) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, "tweetId", c.services.Likes.ToggleTweetLike)
}

// LikedVideos handles GET /api/v1/likes/videos.
func (c *LikeController) LikedVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := c.services.Likes.ListLikedVideos(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, videos, "liked videos fetched successfully")
}

func (c *LikeController) toggle(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	fn func(ctx context.Context, userID, targetID int64) (bool, error),
) {
	targetID, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || targetID <= 0 {
		c.builder.WriteError(w, r, services.NewValidationError("invalid id", err))
		return
	}

	liked, err := fn(r.Context(), middleware.GetUserID(r.Context()), targetID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	message := "like removed"
	if liked {
		message = "like added"
	}
	c.builder.WriteSuccess(w, r, map[string]bool{"liked": liked}, message)
}
