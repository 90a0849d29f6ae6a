// internal/repositories/subscription_repository.go
package repositories

import (
	"context"

	"vidhub/internal/database"
	"vidhub/internal/models"

	"go.uber.org/zap"
)

type subscriptionRepository struct {
	*BaseRepository
}

// NewSubscriptionRepository creates a new instance of SubscriptionRepository
func NewSubscriptionRepository(db *database.Manager, logger *zap.Logger) SubscriptionRepository {
	return &subscriptionRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *subscriptionRepository) Get(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error) {
	query := `
		SELECT id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2`

	var s models.Subscription
	err := r.QueryRowContext(ctx, query, subscriberID, channelID).
		Scan(&s.ID, &s.SubscriberID, &s.ChannelID, &s.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query, sub.SubscriberID, sub.ChannelID).
		Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	r.GetLogger().Info("Subscription created",
		zap.Int64("subscriber_id", sub.SubscriberID),
		zap.Int64("channel_id", sub.ChannelID),
	)
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSubscribers joins the channel's subscription rows to the subscribing
// users' public profiles.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID int64) ([]*models.PublicProfile, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC`
	return r.listProfiles(ctx, query, channelID)
}

// ListSubscribedChannels joins the subscriber's rows to the channels'
// public profiles.
func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*models.PublicProfile, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC`
	return r.listProfiles(ctx, query, subscriberID)
}

func (r *subscriptionRepository) listProfiles(ctx context.Context, query string, arg int64) ([]*models.PublicProfile, error) {
	rows, err := r.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var profiles []*models.PublicProfile
	for rows.Next() {
		var p models.PublicProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.FullName, &p.Avatar); err != nil {
			return nil, translateError(err)
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}
