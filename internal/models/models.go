// file: internal/models/models.go
package models

import "time"

// ===============================
// CORE ENTITIES
// ===============================

// User represents a registered account. The refresh token column holds the
// single active session token for the user; overwriting it invalidates every
// previously issued refresh token.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" db:"email" validate:"required,email,max=320"`
	FullName string `json:"fullName" db:"full_name" validate:"required,max=100"`

	// Authentication / session state. Never serialized.
	PasswordHash string  `json:"-" db:"password_hash"`
	RefreshToken *string `json:"-" db:"refresh_token"`

	// Files (Cloudinary)
	AvatarURL          string  `json:"avatar" db:"avatar_url"`
	AvatarPublicID     string  `json:"-" db:"avatar_public_id"`
	CoverImageURL      *string `json:"coverImage,omitempty" db:"cover_image_url"`
	CoverImagePublicID *string `json:"-" db:"cover_image_public_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicProfile is the subset of User safe to embed in other resources.
type PublicProfile struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	FullName string `json:"fullName" db:"full_name"`
	Avatar   string `json:"avatar" db:"avatar_url"`
}

// Public strips credential and session fields from a User.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.AvatarURL,
	}
}

// Video is a published media asset owned by a user.
type Video struct {
	ID                int64  `json:"id" db:"id"`
	OwnerID           int64  `json:"ownerId" db:"owner_id"`
	Title             string `json:"title" db:"title" validate:"required,max=200"`
	Description       string `json:"description" db:"description" validate:"required,max=5000"`
	VideoURL          string `json:"videoFile" db:"video_url"`
	VideoPublicID     string `json:"-" db:"video_public_id"`
	ThumbnailURL      string `json:"thumbnail" db:"thumbnail_url"`
	ThumbnailPublicID string `json:"-" db:"thumbnail_public_id"`

	Duration    float64 `json:"duration" db:"duration"`
	Views       int64   `json:"views" db:"views"`
	IsPublished bool    `json:"isPublished" db:"is_published"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joined, not stored
	Owner *PublicProfile `json:"owner,omitempty" db:"-"`
}

// Comment belongs to exactly one video.
type Comment struct {
	ID      int64  `json:"id" db:"id"`
	VideoID int64  `json:"videoId" db:"video_id"`
	OwnerID int64  `json:"ownerId" db:"owner_id"`
	Content string `json:"content" db:"content" validate:"required,max=2000"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Owner *PublicProfile `json:"owner,omitempty" db:"-"`
}

// Like records that a user liked exactly one of a video, comment or tweet.
// Row existence denotes "liked"; there is no soft delete.
type Like struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"likedBy" db:"user_id"`
	VideoID   *int64 `json:"videoId,omitempty" db:"video_id"`
	CommentID *int64 `json:"commentId,omitempty" db:"comment_id"`
	TweetID   *int64 `json:"tweetId,omitempty" db:"tweet_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Subscription is a (subscriber, channel) pair; both sides reference users.
type Subscription struct {
	ID           int64 `json:"id" db:"id"`
	SubscriberID int64 `json:"subscriber" db:"subscriber_id"`
	ChannelID    int64 `json:"channel" db:"channel_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Playlist is an ordered list of video references. Duplicates are allowed.
type Playlist struct {
	ID          int64  `json:"id" db:"id"`
	OwnerID     int64  `json:"ownerId" db:"owner_id"`
	Name        string `json:"name" db:"name" validate:"required,max=120"`
	Description string `json:"description" db:"description" validate:"required,max=2000"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	VideoIDs []int64 `json:"videos" db:"-"`
}

// Tweet is a short text post by a user.
type Tweet struct {
	ID      int64  `json:"id" db:"id"`
	OwnerID int64  `json:"ownerId" db:"owner_id"`
	Content string `json:"content" db:"content" validate:"required,max=500"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Owner *PublicProfile `json:"owner,omitempty" db:"-"`
}

// ===============================
// PROJECTIONS
// ===============================

// ChannelProfile is the public view of a user's channel, including
// subscription counts and whether the requesting principal subscribes.
type ChannelProfile struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	FullName        string  `json:"fullName"`
	Avatar          string  `json:"avatar"`
	CoverImage      *string `json:"coverImage,omitempty"`
	SubscriberCount int64   `json:"subscriberCount"`
	SubscribedTo    int64   `json:"channelsSubscribedToCount"`
	IsSubscribed    bool    `json:"isSubscribed"`
}

// ChannelStats aggregates a channel owner's totals for the dashboard.
type ChannelStats struct {
	TotalViews       int64 `json:"totalVideoViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalLikes       int64 `json:"totalLikes"`
}

// WatchHistoryEntry is a watched video joined with its owner's public profile.
type WatchHistoryEntry struct {
	Video     *Video         `json:"video"`
	Owner     *PublicProfile `json:"owner"`
	WatchedAt time.Time      `json:"watchedAt"`
}

// PaginatedResponse wraps a page of results with pagination metadata.
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta describes a page within a larger result set.
type PaginationMeta struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

// NewPaginationMeta computes paging metadata for a total item count.
func NewPaginationMeta(page, pageSize int, total int64) PaginationMeta {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return PaginationMeta{
		CurrentPage:  page,
		ItemsPerPage: pageSize,
		TotalItems:   total,
		TotalPages:   totalPages,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}
