// ===============================
// FILE: internal/handlers/api/v1/tweets/tweets_controller.go
// ===============================

package tweets

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

// TweetController handles tweet endpoints.
type TweetController struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewTweetController creates a new tweet controller.
func NewTweetController(sc *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *TweetController {
	return &TweetController{services: sc, logger: logger, builder: builder}
}

// Create handles POST /api/v1/tweets.
func (c *TweetController) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = middleware.GetUserID(r.Context())

	tweet, err := c.services.Tweets.Create(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteCreated(w, r, tweet, "tweet created successfully")
}

// ListByUser handles GET /api/v1/tweets/user/{userId}, newest first.
func (c *TweetController) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.pathID(w, r, "userId", "invalid user id")
	if !ok {
		return
	}

	tweets, err := c.services.Tweets.ListByOwner(r.Context(), userID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, tweets, "tweets fetched successfully")
}

// Update handles PATCH /api/v1/tweets/{tweetId}.
func (c *TweetController) Update(w http.ResponseWriter, r *http.Request) {
	tweetID, ok := c.pathID(w, r, "tweetId", "invalid tweet id")
	if !ok {
		return
	}

	var req services.UpdateTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.TweetID = tweetID
	req.UserID = middleware.GetUserID(r.Context())

	tweet, err := c.services.Tweets.Update(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, tweet, "tweet updated successfully")
}

// Delete handles DELETE /api/v1/tweets/{tweetId}.
func (c *TweetController) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, ok := c.pathID(w, r, "tweetId", "invalid tweet id")
	if !ok {
		return
	}

	if err := c.services.Tweets.Delete(r.Context(), tweetID, middleware.GetUserID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "tweet deleted successfully")
}

func (c *TweetController) pathID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		c.builder.WriteError(w, r, services.NewValidationError(message, err))
		return 0, false
	}
	return id, true
}
