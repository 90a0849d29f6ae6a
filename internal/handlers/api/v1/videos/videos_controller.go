// ===============================
// FILE: internal/handlers/api/v1/videos/videos_controller.go
// ===============================

package videos

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"vidhub/internal/middleware"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// VideoController handles video CRUD and publish endpoints.
type VideoController struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewVideoController creates a new video controller.
func NewVideoController(sc *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *VideoController {
	return &VideoController{services: sc, logger: logger, builder: builder}
}

// List handles GET /api/v1/videos with paging, title search and owner filter.
func (c *VideoController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := response.ParsePagination(r)
	req := &services.ListVideosRequest{
		Page:      page,
		PageSize:  pageSize,
		Query:     r.URL.Query().Get("query"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortType"),
	}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			c.builder.WriteError(w, r, services.NewValidationError("invalid userId filter", err))
			return
		}
		req.OwnerID = &ownerID
	}

	result, err := c.services.Videos.List(r.Context(), req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, result, "videos fetched successfully")
}

// Publish handles POST /api/v1/videos (multipart: videoFile, thumbnail).
func (c *VideoController) Publish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("expected multipart form data", err))
		return
	}

	req := &services.PublishVideoRequest{
		OwnerID:     middleware.GetUserID(r.Context()),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	req.VideoFile = formFileHeader(r, "videoFile")
	req.Thumbnail = formFileHeader(r, "thumbnail")

	video, err := c.services.Videos.Publish(r.Context(), req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteCreated(w, r, video, "video published successfully")
}

// Get handles GET /api/v1/videos/{videoId}. Each fetch counts a view and
// is recorded in the caller's watch history.
func (c *VideoController) Get(w http.ResponseWriter, r *http.Request) {
	videoID, ok := c.videoID(w, r)
	if !ok {
		return
	}

	var viewerID *int64
	if id := middleware.GetUserID(r.Context()); id != 0 {
		viewerID = &id
	}

	video, err := c.services.Videos.GetByID(r.Context(), videoID, viewerID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, video, "video fetched successfully")
}

// Update handles PATCH /api/v1/videos/{videoId} (multipart, thumbnail optional).
func (c *VideoController) Update(w http.ResponseWriter, r *http.Request) {
	videoID, ok := c.videoID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("expected multipart form data", err))
		return
	}

	req := &services.UpdateVideoRequest{
		VideoID:     videoID,
		UserID:      middleware.GetUserID(r.Context()),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	req.Thumbnail = formFileHeader(r, "thumbnail")

	video, err := c.services.Videos.Update(r.Context(), req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, video, "video updated successfully")
}

// Delete handles DELETE /api/v1/videos/{videoId}.
func (c *VideoController) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, ok := c.videoID(w, r)
	if !ok {
		return
	}

	if err := c.services.Videos.Delete(r.Context(), videoID, middleware.GetUserID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "video deleted successfully")
}

// TogglePublish handles PATCH /api/v1/videos/toggle/publish/{videoId}.
func (c *VideoController) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, ok := c.videoID(w, r)
	if !ok {
		return
	}

	video, err := c.services.Videos.TogglePublished(r.Context(), videoID, middleware.GetUserID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, video, "publish status toggled")
}

func (c *VideoController) videoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "videoId"), 10, 64)
	if err != nil || id <= 0 {
		c.builder.WriteError(w, r, services.NewValidationError("invalid video id", err))
		return 0, false
	}
	return id, true
}

// formFileHeader reads a parsed form's file header without opening the
// file the way FormFile would.
func formFileHeader(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if headers := r.MultipartForm.File[field]; len(headers) > 0 {
		return headers[0]
	}
	return nil
}
