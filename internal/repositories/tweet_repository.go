// internal/repositories/tweet_repository.go
package repositories

import (
	"context"

	"vidhub/internal/database"
	"vidhub/internal/models"

	"go.uber.org/zap"
)

type tweetRepository struct {
	*BaseRepository
}

// NewTweetRepository creates a new instance of TweetRepository
func NewTweetRepository(db *database.Manager, logger *zap.Logger) TweetRepository {
	return &tweetRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	query := `
		INSERT INTO tweets (owner_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, tweet.OwnerID, tweet.Content).
		Scan(&tweet.ID, &tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return translateError(err)
	}

	r.GetLogger().Info("Tweet created",
		zap.Int64("tweet_id", tweet.ID),
		zap.Int64("owner_id", tweet.OwnerID),
	)
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id int64) (*models.Tweet, error) {
	query := `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets WHERE id = $1`

	var t models.Tweet
	err := r.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// ListByOwner returns the user's tweets, newest first, joined with the
// author's public profile.
func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Tweet, error) {
	query := `
		SELECT
			t.id, t.owner_id, t.content, t.created_at, t.updated_at,
			o.id, o.username, o.full_name, o.avatar_url
		FROM tweets t
		JOIN users o ON o.id = t.owner_id
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC`

	rows, err := r.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var tweets []*models.Tweet
	for rows.Next() {
		var t models.Tweet
		var o models.PublicProfile
		err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
			&o.ID, &o.Username, &o.FullName, &o.Avatar,
		)
		if err != nil {
			return nil, translateError(err)
		}
		t.Owner = &o
		tweets = append(tweets, &t)
	}
	return tweets, rows.Err()
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	query := `
		UPDATE tweets SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, tweet.ID, tweet.Content).Scan(&tweet.UpdatedAt)
	return translateError(err)
}

func (r *tweetRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
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
