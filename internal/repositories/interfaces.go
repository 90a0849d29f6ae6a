// internal/repositories/interfaces.go
package repositories

import (
	"context"
	"errors"

	"vidhub/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate")

// ListVideosOptions filters and pages the video listing.
type ListVideosOptions struct {
	Page          int
	PageSize      int
	Query         string // title search, empty means no filter
	OwnerID       *int64
	OnlyPublished bool
	SortBy        string // created_at | views | duration
	SortOrder     string // asc | desc
}

// LikeTarget identifies the single entity a like points at.
type LikeTarget struct {
	VideoID   *int64
	CommentID *int64
	TweetID   *int64
}

// UserRepository persists accounts, session tokens and watch history.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateAvatar(ctx context.Context, id int64, url, publicID string) error
	UpdateCoverImage(ctx context.Context, id int64, url, publicID string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetRefreshToken(ctx context.Context, id int64, token *string) error

	GetChannelProfile(ctx context.Context, username string, viewerID *int64) (*models.ChannelProfile, error)
	AddWatchHistory(ctx context.Context, userID, videoID int64) error
	GetWatchHistory(ctx context.Context, userID int64, page, pageSize int) ([]*models.WatchHistoryEntry, int64, error)
}

// VideoRepository persists videos and their view counters.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	GetByIDIncrementingViews(ctx context.Context, id int64) (*models.Video, error)
	List(ctx context.Context, opts ListVideosOptions) ([]*models.Video, int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id int64) error
	TogglePublished(ctx context.Context, id int64) (*models.Video, error)
	GetChannelStats(ctx context.Context, ownerID int64) (*models.ChannelStats, error)
}

// CommentRepository persists video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID int64, page, pageSize int) ([]*models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

// LikeRepository persists like rows; row existence denotes "liked".
type LikeRepository interface {
	Get(ctx context.Context, userID int64, target LikeTarget) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, id int64) error
	ListLikedVideos(ctx context.Context, userID int64) ([]*models.Video, error)
}

// SubscriptionRepository persists subscriber↔channel pairs.
type SubscriptionRepository interface {
	Get(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, id int64) error
	ListSubscribers(ctx context.Context, channelID int64) ([]*models.PublicProfile, error)
	ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*models.PublicProfile, error)
}

// PlaylistRepository persists playlists and their ordered video membership.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id int64) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id int64) error
	AddVideo(ctx context.Context, playlistID, videoID int64) error
	RemoveVideo(ctx context.Context, playlistID, videoID int64) error
}

// TweetRepository persists tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id int64) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Tweet, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id int64) error
}
