// ===============================
// FILE: internal/handlers/api/v1/playlists/playlists_controller.go
// ===============================

package playlists

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"vidhub/internal/middleware"
	"vidhub/internal/models"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PlaylistController handles playlist endpoints.
type PlaylistController struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewPlaylistController creates a new playlist controller.
func NewPlaylistController(sc *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *PlaylistController {
	return &PlaylistController{services: sc, logger: logger, builder: builder}
}

// Create handles POST /api/v1/playlists.
func (c *PlaylistController) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = middleware.GetUserID(r.Context())

	playlist, err := c.services.Playlists.Create(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteCreated(w, r, playlist, "playlist created successfully")
}

// Get handles GET /api/v1/playlists/{playlistId}.
func (c *PlaylistController) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := c.pathID(w, r, "playlistId", "invalid playlist id")
	if !ok {
		return
	}

	playlist, err := c.services.Playlists.GetByID(r.Context(), playlistID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlist, "playlist fetched successfully")
}

// ListByUser handles GET /api/v1/playlists/user/{userId}.
func (c *PlaylistController) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.pathID(w, r, "userId", "invalid user id")
	if !ok {
		return
	}

	playlists, err := c.services.Playlists.ListByOwner(r.Context(), userID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlists, "playlists fetched successfully")
}

// Update handles PATCH /api/v1/playlists/{playlistId}.
func (c *PlaylistController) Update(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := c.pathID(w, r, "playlistId", "invalid playlist id")
	if !ok {
		return
	}

	var req services.UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.PlaylistID = playlistID
	req.UserID = middleware.GetUserID(r.Context())

	playlist, err := c.services.Playlists.Update(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlist, "playlist updated successfully")
}

// Delete handles DELETE /api/v1/playlists/{playlistId}.
func (c *PlaylistController) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := c.pathID(w, r, "playlistId", "invalid playlist id")
	if !ok {
		return
	}

	if err := c.services.Playlists.Delete(r.Context(), playlistID, middleware.GetUserID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "playlist deleted successfully")
}

// AddVideo handles PATCH /api/v1/playlists/add/{videoId}/{playlistId}.
func (c *PlaylistController) AddVideo(w http.ResponseWriter, r *http.Request) {
	c.mutateMembership(w, r, c.services.Playlists.AddVideo, "video added to playlist")
}

// RemoveVideo handles PATCH /api/v1/playlists/remove/{videoId}/{playlistId}.
func (c *PlaylistController) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	c.mutateMembership(w, r, c.services.Playlists.RemoveVideo, "video removed from playlist")
}

func (c *PlaylistController) mutateMembership(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, playlistID, videoID, userID int64) (*models.Playlist, error),
	message string,
) {
	playlistID, ok := c.pathID(w, r, "playlistId", "invalid playlist id")
	if !ok {
		return
	}
	videoID, ok := c.pathID(w, r, "videoId", "invalid video id")
	if !ok {
		return
	}

	playlist, err := fn(r.Context(), playlistID, videoID, middleware.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlist, message)
}

func (c *PlaylistController) pathID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		c.builder.WriteError(w, r, services.NewValidationError(message, err))
		return 0, false
	}
	return id, true
}
