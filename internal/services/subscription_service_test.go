package services

import (
	"context"
	"testing"

	"vidhub/internal/models"
	"vidhub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func subscriptionUserRepo() *mockUserRepo {
	return &mockUserRepo{
		getByIDFn: func(_ context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
}

func TestSubscriptionToggleSubscribes(t *testing.T) {
	var created *models.Subscription
	subs := &mockSubscriptionRepo{
		getFn: func(context.Context, int64, int64) (*models.Subscription, error) {
			return nil, repositories.ErrNotFound
		},
		createFn: func(_ context.Context, sub *models.Subscription) error {
			created = sub
			return nil
		},
	}
	svc := NewSubscriptionService(subs, subscriptionUserRepo(), noopStats{}, zap.NewNop())

	subscribed, err := svc.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, subscribed)
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.SubscriberID)
	assert.Equal(t, int64(2), created.ChannelID)
}

func TestSubscriptionToggleUnsubscribes(t *testing.T) {
	var deleted int64
	subs := &mockSubscriptionRepo{
		getFn: func(context.Context, int64, int64) (*models.Subscription, error) {
			return &models.Subscription{ID: 5}, nil
		},
		deleteFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	svc := NewSubscriptionService(subs, subscriptionUserRepo(), noopStats{}, zap.NewNop())

	subscribed, err := svc.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, subscribed)
	assert.Equal(t, int64(5), deleted)
}

func TestSubscriptionToggleRejectsSelf(t *testing.T) {
	svc := NewSubscriptionService(&mockSubscriptionRepo{}, subscriptionUserRepo(), noopStats{}, zap.NewNop())

	_, err := svc.Toggle(context.Background(), 3, 3)
	assertStatus(t, err, 400)
}

func TestSubscriptionToggleMissingChannel(t *testing.T) {
	users := &mockUserRepo{
		getByIDFn: func(context.Context, int64) (*models.User, error) {
			return nil, repositories.ErrNotFound
		},
	}
	svc := NewSubscriptionService(&mockSubscriptionRepo{}, users, noopStats{}, zap.NewNop())

	_, err := svc.Toggle(context.Background(), 1, 2)
	assertStatus(t, err, 404)
}
