// internal/services/tweet_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"vidhub/internal/models"
	"vidhub/internal/repositories"

	"go.uber.org/zap"
)

// TweetService manages short text posts on a channel.
type TweetService interface {
	Create(ctx context.Context, req *CreateTweetRequest) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Tweet, error)
	Update(ctx context.Context, req *UpdateTweetRequest) (*models.Tweet, error)
	Delete(ctx context.Context, tweetID, userID int64) error
}

type tweetService struct {
	tweets repositories.TweetRepository
	logger *zap.Logger
}

// NewTweetService creates a new TweetService.
func NewTweetService(tweets repositories.TweetRepository, logger *zap.Logger) TweetService {
	return &tweetService{tweets: tweets, logger: logger}
}

func (s *tweetService) Create(ctx context.Context, req *CreateTweetRequest) (*models.Tweet, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tweet := &models.Tweet{
		OwnerID: req.UserID,
		Content: req.Content,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, NewInternalError("failed to create tweet", err)
	}
	return tweet, nil
}

func (s *tweetService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Tweet, error) {
	tweets, err := s.tweets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewInternalError("failed to list tweets", err)
	}
	return tweets, nil
}

func (s *tweetService) Update(ctx context.Context, req *UpdateTweetRequest) (*models.Tweet, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tweet, err := s.ownedTweet(ctx, req.TweetID, req.UserID)
	if err != nil {
		return nil, err
	}

	tweet.Content = req.Content
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, NewInternalError("failed to update tweet", err)
	}
	return tweet, nil
}

func (s *tweetService) Delete(ctx context.Context, tweetID, userID int64) error {
	if _, err := s.ownedTweet(ctx, tweetID, userID); err != nil {
		return err
	}
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return NewInternalError("failed to delete tweet", err)
	}
	return nil
}

func (s *tweetService) ownedTweet(ctx context.Context, tweetID, userID int64) (*models.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("tweet not found")
		}
		return nil, NewInternalError("failed to load tweet", err)
	}
	if tweet.OwnerID != userID {
		return nil, NewForbiddenError("you do not own this tweet")
	}
	return tweet, nil
}
