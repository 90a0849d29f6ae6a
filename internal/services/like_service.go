// internal/services/like_service.go
package services

import (
	"context"
	"errors"

	"vidhub/internal/models"
	"vidhub/internal/repositories"

	"go.uber.org/zap"
)

// LikeService toggles likes on videos, comments and tweets. A toggle on an
// existing like removes it; the returned bool reports whether the entity is
// liked after the call.
type LikeService interface {
	ToggleVideoLike(ctx context.Context, userID, videoID int64) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID int64) (bool, error)
	ToggleTweetLike(ctx context.Context, userID, tweetID int64) (bool, error)
	ListLikedVideos(ctx context.Context, userID int64) ([]*models.Video, error)
}

type likeService struct {
	likes    repositories.LikeRepository
	videos   repositories.VideoRepository
	comments repositories.CommentRepository
	tweets   repositories.TweetRepository
	logger   *zap.Logger
}

// NewLikeService creates a new LikeService.
func NewLikeService(
	likes repositories.LikeRepository,
	videos repositories.VideoRepository,
	comments repositories.CommentRepository,
	tweets repositories.TweetRepository,
	logger *zap.Logger,
) LikeService {
	return &likeService{likes: likes, videos: videos, comments: comments, tweets: tweets, logger: logger}
}

func (s *likeService) ToggleVideoLike(ctx context.Context, userID, videoID int64) (bool, error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return false, targetError("video", err)
	}
	return s.toggle(ctx, userID, repositories.LikeTarget{VideoID: &videoID})
}

func (s *likeService) ToggleCommentLike(ctx context.Context, userID, commentID int64) (bool, error) {
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return false, targetError("comment", err)
	}
	return s.toggle(ctx, userID, repositories.LikeTarget{CommentID: &commentID})
}

func (s *likeService) ToggleTweetLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	if _, err := s.tweets.GetByID(ctx, tweetID); err != nil {
		return false, targetError("tweet", err)
	}
	return s.toggle(ctx, userID, repositories.LikeTarget{TweetID: &tweetID})
}

func (s *likeService) ListLikedVideos(ctx context.Context, userID int64) ([]*models.Video, error) {
	videos, err := s.likes.ListLikedVideos(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to list liked videos", err)
	}
	return videos, nil
}

// toggle resolves the current state and flips it. A duplicate insert from a
// concurrent toggle is treated as already liked.
func (s *likeService) toggle(ctx context.Context, userID int64, target repositories.LikeTarget) (bool, error) {
	existing, err := s.likes.Get(ctx, userID, target)
	switch {
	case err == nil:
		if err := s.likes.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return false, NewInternalError("failed to remove like", err)
		}
		return false, nil
	case errors.Is(err, repositories.ErrNotFound):
		like := &models.Like{
			UserID:    userID,
			VideoID:   target.VideoID,
			CommentID: target.CommentID,
			TweetID:   target.TweetID,
		}
		if err := s.likes.Create(ctx, like); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return true, nil
			}
			return false, NewInternalError("failed to create like", err)
		}
		return true, nil
	default:
		return false, NewInternalError("failed to look up like", err)
	}
}

func targetError(what string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return NewNotFoundError(what + " not found")
	}
	return NewInternalError("failed to load "+what, err)
}
