// file: internal/router/router.go
package router

import (
	"net/http"

	"vidhub/internal/cache"
	"vidhub/internal/config"
	"vidhub/internal/database"
	"vidhub/internal/handlers/api/v1/comments"
	"vidhub/internal/handlers/api/v1/dashboard"
	"vidhub/internal/handlers/api/v1/health"
	"vidhub/internal/handlers/api/v1/likes"
	"vidhub/internal/handlers/api/v1/playlists"
	"vidhub/internal/handlers/api/v1/subscriptions"
	"vidhub/internal/handlers/api/v1/tweets"
	"vidhub/internal/handlers/api/v1/users"
	"vidhub/internal/handlers/api/v1/videos"
	"vidhub/internal/middleware"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// New assembles the full HTTP handler: the ordered middleware pipeline
// around a chi mux with every /api/v1 resource mounted. Session endpoints
// and the healthcheck are public; everything else sits behind the auth
// gate.
func New(
	sc *services.ServiceCollection,
	db *database.Manager,
	c cache.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	builder := response.NewBuilder(logger)
	auth := middleware.NewAuth(sc.Tokens, sc.Repositories.Users, builder, logger)

	userCtrl := users.NewUserController(sc, &cfg.Auth, logger, builder)
	videoCtrl := videos.NewVideoController(sc, logger, builder)
	commentCtrl := comments.NewCommentController(sc, logger, builder)
	likeCtrl := likes.NewLikeController(sc, logger, builder)
	subCtrl := subscriptions.NewSubscriptionController(sc, logger, builder)
	playlistCtrl := playlists.NewPlaylistController(sc, logger, builder)
	tweetCtrl := tweets.NewTweetController(sc, logger, builder)
	dashCtrl := dashboard.NewDashboardController(sc, logger, builder)
	healthCtrl := health.NewHealthController(db, c, logger, builder)

	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", healthCtrl.Check)

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", userCtrl.Register)
			r.Post("/login", userCtrl.Login)
			r.Post("/refresh-token", userCtrl.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(auth.Require)
				r.Post("/logout", userCtrl.Logout)
				r.Get("/current-user", userCtrl.CurrentUser)
				r.Patch("/update-account", userCtrl.UpdateProfile)
				r.Patch("/avatar", userCtrl.UpdateAvatar)
				r.Patch("/cover-image", userCtrl.UpdateCoverImage)
				r.Post("/change-password", userCtrl.ChangePassword)
				r.Get("/c/{username}", userCtrl.ChannelProfile)
				r.Get("/history", userCtrl.WatchHistory)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Use(auth.Require)
			r.Get("/", videoCtrl.List)
			r.Post("/", videoCtrl.Publish)
			r.Get("/{videoId}", videoCtrl.Get)
			r.Patch("/{videoId}", videoCtrl.Update)
			r.Delete("/{videoId}", videoCtrl.Delete)
			r.Patch("/toggle/publish/{videoId}", videoCtrl.TogglePublish)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(auth.Require)
			r.Get("/{videoId}", commentCtrl.List)
			r.Post("/{videoId}", commentCtrl.Create)
			r.Patch("/c/{commentId}", commentCtrl.Update)
			r.Delete("/c/{commentId}", commentCtrl.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(auth.Require)
			r.Post("/toggle/v/{videoId}", likeCtrl.ToggleVideo)
			r.Post("/toggle/c/{commentId}", likeCtrl.ToggleComment)
			r.Post("/toggle/t/{tweetId}", likeCtrl.ToggleTweet)
			r.Get("/videos", likeCtrl.LikedVideos)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(auth.Require)
			r.Get("/", subCtrl.SubscribedChannels)
			r.Post("/c/{channelId}", subCtrl.Toggle)
			r.Get("/c/{channelId}", subCtrl.Subscribers)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Use(auth.Require)
			r.Post("/", playlistCtrl.Create)
			r.Get("/{playlistId}", playlistCtrl.Get)
			r.Patch("/{playlistId}", playlistCtrl.Update)
			r.Delete("/{playlistId}", playlistCtrl.Delete)
			r.Patch("/add/{videoId}/{playlistId}", playlistCtrl.AddVideo)
			r.Patch("/remove/{videoId}/{playlistId}", playlistCtrl.RemoveVideo)
			r.Get("/user/{userId}", playlistCtrl.ListByUser)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Use(auth.Require)
			r.Post("/", tweetCtrl.Create)
			r.Get("/user/{userId}", tweetCtrl.ListByUser)
			r.Patch("/{tweetId}", tweetCtrl.Update)
			r.Delete("/{tweetId}", tweetCtrl.Delete)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(auth.Require)
			r.Get("/stats", dashCtrl.Stats)
			r.Get("/videos", dashCtrl.Videos)
		})
	})

	return middleware.Chain(r, middleware.Base(cfg, builder, logger)...)
}
