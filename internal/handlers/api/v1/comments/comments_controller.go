// ===============================
// FILE: internal/handlers/api/v1/comments/comments_controller.go
// ===============================

package comments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vidhub/internal/middleware"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CommentController handles comment endpoints.
type CommentController struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewCommentController creates a new comment controller.
func NewCommentController(sc *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *CommentController {
	return &CommentController{services: sc, logger: logger, builder: builder}
}

// List handles GET /api/v1/comments/{videoId}, newest first.
func (c *CommentController) List(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(c.builder, w, r, "videoId", "invalid video id")
	if !ok {
		return
	}

	page, pageSize := response.ParsePagination(r)
	result, err := c.services.Comments.ListByVideo(r.Context(), videoID, page, pageSize)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, result, "comments fetched successfully")
}

// Create handles POST /api/v1/comments/{videoId}.
func (c *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(c.builder, w, r, "videoId", "invalid video id")
	if !ok {
		return
	}

	var req services.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.VideoID = videoID
	req.UserID = middleware.GetUserID(r.Context())

	comment, err := c.services.Comments.Create(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteCreated(w, r, comment, "comment added successfully")
}

// Update handles PATCH /api/v1/comments/c/{commentId}.
func (c *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(c.builder, w, r, "commentId", "invalid comment id")
	if !ok {
		return
	}

	var req services.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.CommentID = commentID
	req.UserID = middleware.GetUserID(r.Context())

	comment, err := c.services.Comments.Update(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, comment, "comment updated successfully")
}

// Delete handles DELETE /api/v1/comments/c/{commentId}.
func (c *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(c.builder, w, r, "commentId", "invalid comment id")
	if !ok {
		return
	}

	if err := c.services.Comments.Delete(r.Context(), commentID, middleware.GetUserID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "comment deleted successfully")
}

func pathID(builder *response.Builder, w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		builder.WriteError(w, r, services.NewValidationError(message, err))
		return 0, false
	}
	return id, true
}
