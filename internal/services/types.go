// internal/services/types.go
package services

import (
	"mime/multipart"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance for request DTOs.
var validate = validator.New()

// validateRequest wraps struct validation into the service error taxonomy.
func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return NewValidationError("invalid request data", err)
	}
	return nil
}

// ===============================
// USERS
// ===============================

// RegisterUserRequest carries the registration form. Avatar is required,
// the cover image is optional.
type RegisterUserRequest struct {
	Username   string `validate:"required,min=3,max=50,alphanum"`
	Email      string `validate:"required,email,max=320"`
	FullName   string `validate:"required,max=100"`
	Password   string `validate:"required,min=8,max=72"`
	Avatar     *multipart.FileHeader
	CoverImage *multipart.FileHeader
}

// LoginRequest accepts username or email plus the password.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest updates the mutable account fields.
type UpdateProfileRequest struct {
	UserID   int64  `validate:"required,gt=0"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=320"`
}

// ChangePasswordRequest rotates the account credential.
type ChangePasswordRequest struct {
	UserID      int64  `validate:"required,gt=0"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// ===============================
// VIDEOS
// ===============================

// PublishVideoRequest carries the multipart publish form.
type PublishVideoRequest struct {
	OwnerID     int64  `validate:"required,gt=0"`
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=5000"`
	VideoFile   *multipart.FileHeader
	Thumbnail   *multipart.FileHeader
}

// UpdateVideoRequest updates a video's metadata and thumbnail.
type UpdateVideoRequest struct {
	VideoID     int64  `validate:"required,gt=0"`
	UserID      int64  `validate:"required,gt=0"`
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=5000"`
	Thumbnail   *multipart.FileHeader
}

// ListVideosRequest pages and filters the public video listing.
type ListVideosRequest struct {
	Page      int
	PageSize  int
	Query     string
	OwnerID   *int64
	SortBy    string
	SortOrder string
}

// ===============================
// COMMENTS
// ===============================

// CreateCommentRequest adds a comment to a video.
type CreateCommentRequest struct {
	VideoID int64  `validate:"required,gt=0"`
	UserID  int64  `validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=2000"`
}

// UpdateCommentRequest edits a comment's content.
type UpdateCommentRequest struct {
	CommentID int64  `validate:"required,gt=0"`
	UserID    int64  `validate:"required,gt=0"`
	Content   string `json:"content" validate:"required,max=2000"`
}

// ===============================
// PLAYLISTS
// ===============================

// CreatePlaylistRequest creates a named playlist.
type CreatePlaylistRequest struct {
	UserID      int64  `validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
}

// UpdatePlaylistRequest renames a playlist.
type UpdatePlaylistRequest struct {
	PlaylistID  int64  `validate:"required,gt=0"`
	UserID      int64  `validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
}

// ===============================
// TWEETS
// ===============================

// CreateTweetRequest posts a tweet.
type CreateTweetRequest struct {
	UserID  int64  `validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=500"`
}

// UpdateTweetRequest edits a tweet.
type UpdateTweetRequest struct {
	TweetID int64  `validate:"required,gt=0"`
	UserID  int64  `validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=500"`
}
