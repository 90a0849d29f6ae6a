// file: internal/services/service_collection.go
package services

import (
	"vidhub/internal/cache"
	"vidhub/internal/config"
	"vidhub/internal/media"
	"vidhub/internal/repositories"

	"go.uber.org/zap"
)

// ServiceCollection holds every service with its dependencies wired.
type ServiceCollection struct {
	Users         UserService
	Tokens        TokenService
	Videos        VideoService
	Comments      CommentService
	Likes         LikeService
	Subscriptions SubscriptionService
	Playlists     PlaylistService
	Tweets        TweetService

	Repositories *repositories.Collection
	Cache        cache.Cache
	Logger       *zap.Logger
}

// NewServiceCollection builds the full service graph on top of the
// repository collection, cache and media storage.
func NewServiceCollection(
	repos *repositories.Collection,
	c cache.Cache,
	storage media.Storage,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceCollection {
	tokens := NewTokenService(repos.Users, &cfg.Auth, logger)
	stats := NewStatsCache(c, logger)

	return &ServiceCollection{
		Users:         NewUserService(repos.Users, tokens, storage, &cfg.Auth, logger),
		Tokens:        tokens,
		Videos:        NewVideoService(repos.Videos, repos.Users, storage, stats, logger),
		Comments:      NewCommentService(repos.Comments, repos.Videos, logger),
		Likes:         NewLikeService(repos.Likes, repos.Videos, repos.Comments, repos.Tweets, logger),
		Subscriptions: NewSubscriptionService(repos.Subscriptions, repos.Users, stats, logger),
		Playlists:     NewPlaylistService(repos.Playlists, repos.Videos, logger),
		Tweets:        NewTweetService(repos.Tweets, logger),

		Repositories: repos,
		Cache:        c,
		Logger:       logger,
	}
}
