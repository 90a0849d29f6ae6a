// internal/services/subscription_service.go
package services

import (
	"context"
	"errors"

	"vidhub/internal/models"
	"vidhub/internal/repositories"

	"go.uber.org/zap"
)

// SubscriptionService toggles channel subscriptions and lists both sides of
// the relation. The returned bool from Toggle reports whether the caller is
// subscribed after the call.
type SubscriptionService interface {
	Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error)
	ListSubscribers(ctx context.Context, channelID int64) ([]*models.PublicProfile, error)
	ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*models.PublicProfile, error)
}

type subscriptionService struct {
	subscriptions repositories.SubscriptionRepository
	users         repositories.UserRepository
	stats         StatsCache
	logger        *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	subscriptions repositories.SubscriptionRepository,
	users repositories.UserRepository,
	stats StatsCache,
	logger *zap.Logger,
) SubscriptionService {
	return &subscriptionService{subscriptions: subscriptions, users: users, stats: stats, logger: logger}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if subscriberID == channelID {
		return false, NewValidationError("cannot subscribe to your own channel", nil)
	}
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, NewNotFoundError("channel not found")
		}
		return false, NewInternalError("failed to load channel", err)
	}

	existing, err := s.subscriptions.Get(ctx, subscriberID, channelID)
	switch {
	case err == nil:
		if err := s.subscriptions.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return false, NewInternalError("failed to unsubscribe", err)
		}
		s.stats.InvalidateChannelStats(ctx, channelID)
		return false, nil
	case errors.Is(err, repositories.ErrNotFound):
		sub := &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := s.subscriptions.Create(ctx, sub); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return true, nil
			}
			return false, NewInternalError("failed to subscribe", err)
		}
		s.stats.InvalidateChannelStats(ctx, channelID)
		return true, nil
	default:
		return false, NewInternalError("failed to look up subscription", err)
	}
}

func (s *subscriptionService) ListSubscribers(ctx context.Context, channelID int64) ([]*models.PublicProfile, error) {
	profiles, err := s.subscriptions.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, NewInternalError("failed to list subscribers", err)
	}
	return profiles, nil
}

func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*models.PublicProfile, error) {
	profiles, err := s.subscriptions.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, NewInternalError("failed to list subscribed channels", err)
	}
	return profiles, nil
}
