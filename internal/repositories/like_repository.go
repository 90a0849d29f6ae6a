// internal/repositories/like_repository.go
package repositories

import (
	"context"

	"vidhub/internal/database"
	"vidhub/internal/models"

	"go.uber.org/zap"
)

type likeRepository struct {
	*BaseRepository
}

// NewLikeRepository creates a new instance of LikeRepository
func NewLikeRepository(db *database.Manager, logger *zap.Logger) LikeRepository {
	return &likeRepository{BaseRepository: NewBaseRepository(db, logger)}
}

// Get looks up the user's like on the target, if any. NULL-safe comparison
// keeps one query working for all three target kinds.
func (r *likeRepository) Get(ctx context.Context, userID int64, target LikeTarget) (*models.Like, error) {
	query := `
		SELECT id, user_id, video_id, comment_id, tweet_id, created_at
		FROM likes
		WHERE user_id = $1
		  AND video_id IS NOT DISTINCT FROM $2
		  AND comment_id IS NOT DISTINCT FROM $3
		  AND tweet_id IS NOT DISTINCT FROM $4`

	var l models.Like
	err := r.QueryRowContext(ctx, query, userID, target.VideoID, target.CommentID, target.TweetID).
		Scan(&l.ID, &l.UserID, &l.VideoID, &l.CommentID, &l.TweetID, &l.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &l, nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	query := `
		INSERT INTO likes (user_id, video_id, comment_id, tweet_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query, like.UserID, like.VideoID, like.CommentID, like.TweetID).
		Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	r.GetLogger().Info("Like created",
		zap.Int64("like_id", like.ID),
		zap.Int64("user_id", like.UserID),
	)
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM likes WHERE id = $1`, id)
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

// ListLikedVideos returns the videos the user has liked, newest like first.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID int64) ([]*models.Video, error) {
	query := `
		SELECT
			v.id, v.owner_id, v.title, v.description,
			v.video_url, v.video_public_id, v.thumbnail_url, v.thumbnail_public_id,
			v.duration, v.views, v.is_published, v.created_at, v.updated_at,
			o.id, o.username, o.full_name, o.avatar_url
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE l.user_id = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		var v models.Video
		var o models.PublicProfile
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description,
			&v.VideoURL, &v.VideoPublicID, &v.ThumbnailURL, &v.ThumbnailPublicID,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			&o.ID, &o.Username, &o.FullName, &o.Avatar,
		)
		if err != nil {
			return nil, translateError(err)
		}
		v.Owner = &o
		videos = append(videos, &v)
	}
	return videos, rows.Err()
}
