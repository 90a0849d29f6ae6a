// internal/repositories/user_repository.go
package repositories

import (
	"context"
	"fmt"

	"vidhub/internal/database"
	"vidhub/internal/models"

	"go.uber.org/zap"
)

type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db, logger)}
}

const userColumns = `
	id, username, email, full_name, password_hash, refresh_token,
	avatar_url, avatar_public_id, cover_image_url, cover_image_public_id,
	created_at, updated_at`

func scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.RefreshToken,
		&u.AvatarURL, &u.AvatarPublicID, &u.CoverImageURL, &u.CoverImagePublicID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// Create inserts a new user and populates the generated fields.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			username, email, full_name, password_hash,
			avatar_url, avatar_public_id, cover_image_url, cover_image_public_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		user.Username, user.Email, user.FullName, user.PasswordHash,
		user.AvatarURL, user.AvatarPublicID, user.CoverImageURL, user.CoverImagePublicID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translateError(err)
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 OR email = $2`, userColumns)
	return scanUser(r.QueryRowContext(ctx, query, username, email))
}

// UpdateProfile updates the mutable profile fields (full name, email).
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, user.ID, user.FullName, user.Email).
		Scan(&user.UpdatedAt)
	return translateError(err)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id int64, url, publicID string) error {
	query := `
		UPDATE users
		SET avatar_url = $2, avatar_public_id = $3, updated_at = now()
		WHERE id = $1`
	return r.exec(ctx, query, id, url, publicID)
}

func (r *userRepository) UpdateCoverImage(ctx context.Context, id int64, url, publicID string) error {
	query := `
		UPDATE users
		SET cover_image_url = $2, cover_image_public_id = $3, updated_at = now()
		WHERE id = $1`
	return r.exec(ctx, query, id, url, publicID)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, passwordHash)
}

// SetRefreshToken stores the single active refresh token; nil clears it.
func (r *userRepository) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, token)
}

func (r *userRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.ExecContext(ctx, query, args...)
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

// GetChannelProfile joins subscription rows both ways for the named channel
// and computes whether the viewer subscribes to it.
func (r *userRepository) GetChannelProfile(ctx context.Context, username string, viewerID *int64) (*models.ChannelProfile, error) {
	query := `
		SELECT
			u.id, u.username, u.full_name, u.avatar_url, u.cover_image_url,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscriber_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to,
			EXISTS (
				SELECT 1 FROM subscriptions s
				WHERE s.channel_id = u.id AND s.subscriber_id = $2
			) AS is_subscribed
		FROM users u
		WHERE u.username = $1`

	var viewer int64 = 0
	if viewerID != nil {
		viewer = *viewerID
	}

	var p models.ChannelProfile
	err := r.QueryRowContext(ctx, query, username, viewer).Scan(
		&p.ID, &p.Username, &p.FullName, &p.Avatar, &p.CoverImage,
		&p.SubscriberCount, &p.SubscribedTo, &p.IsSubscribed,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// AddWatchHistory records that the user watched the video.
func (r *userRepository) AddWatchHistory(ctx context.Context, userID, videoID int64) error {
	query := `INSERT INTO watch_history (user_id, video_id) VALUES ($1, $2)`
	_, err := r.ExecContext(ctx, query, userID, videoID)
	return translateError(err)
}

// GetWatchHistory returns watched videos joined with each owner's public
// profile, newest first.
func (r *userRepository) GetWatchHistory(ctx context.Context, userID int64, page, pageSize int) ([]*models.WatchHistoryEntry, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM watch_history WHERE user_id = $1`
	if err := r.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}

	query := `
		SELECT
			v.id, v.owner_id, v.title, v.description,
			v.video_url, v.video_public_id, v.thumbnail_url, v.thumbnail_public_id,
			v.duration, v.views, v.is_published, v.created_at, v.updated_at,
			o.id, o.username, o.full_name, o.avatar_url,
			wh.watched_at
		FROM watch_history wh
		JOIN videos v ON v.id = wh.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE wh.user_id = $1
		ORDER BY wh.watched_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	var entries []*models.WatchHistoryEntry
	for rows.Next() {
		var v models.Video
		var o models.PublicProfile
		var entry models.WatchHistoryEntry
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description,
			&v.VideoURL, &v.VideoPublicID, &v.ThumbnailURL, &v.ThumbnailPublicID,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			&o.ID, &o.Username, &o.FullName, &o.Avatar,
			&entry.WatchedAt,
		)
		if err != nil {
			return nil, 0, translateError(err)
		}
		entry.Video = &v
		entry.Owner = &o
		entries = append(entries, &entry)
	}
	return entries, total, rows.Err()
}
