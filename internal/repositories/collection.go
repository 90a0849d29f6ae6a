// file: internal/repositories/collection.go
package repositories

import (
	"vidhub/internal/database"

	"go.uber.org/zap"
)

// Collection bundles all repositories for injection into the service layer.
type Collection struct {
	Users         UserRepository
	Videos        VideoRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Subscriptions SubscriptionRepository
	Playlists     PlaylistRepository
	Tweets        TweetRepository
}

// NewCollection wires every repository against the shared database manager.
func NewCollection(db *database.Manager, logger *zap.Logger) *Collection {
	return &Collection{
		Users:         NewUserRepository(db, logger),
		Videos:        NewVideoRepository(db, logger),
		Comments:      NewCommentRepository(db, logger),
		Likes:         NewLikeRepository(db, logger),
		Subscriptions: NewSubscriptionRepository(db, logger),
		Playlists:     NewPlaylistRepository(db, logger),
		Tweets:        NewTweetRepository(db, logger),
	}
}
