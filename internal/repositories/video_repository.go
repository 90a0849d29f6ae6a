// internal/repositories/video_repository.go
package repositories

import (
	"context"
	"fmt"
	"strings"

	"vidhub/internal/database"
	"vidhub/internal/models"

	"go.uber.org/zap"
)

type videoRepository struct {
	*BaseRepository
}

// NewVideoRepository creates a new instance of VideoRepository
func NewVideoRepository(db *database.Manager, logger *zap.Logger) VideoRepository {
	return &videoRepository{BaseRepository: NewBaseRepository(db, logger)}
}

const videoColumns = `
	v.id, v.owner_id, v.title, v.description,
	v.video_url, v.video_public_id, v.thumbnail_url, v.thumbnail_public_id,
	v.duration, v.views, v.is_published, v.created_at, v.updated_at`

func scanVideo(row interface {
	Scan(dest ...interface{}) error
}) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description,
		&v.VideoURL, &v.VideoPublicID, &v.ThumbnailURL, &v.ThumbnailPublicID,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &v, nil
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (
			owner_id, title, description,
			video_url, video_public_id, thumbnail_url, thumbnail_public_id, duration
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, views, is_published, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		video.OwnerID, video.Title, video.Description,
		video.VideoURL, video.VideoPublicID, video.ThumbnailURL, video.ThumbnailPublicID,
		video.Duration,
	).Scan(&video.ID, &video.Views, &video.IsPublished, &video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return translateError(err)
	}

	r.GetLogger().Info("Video created",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", video.OwnerID),
	)
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos v WHERE v.id = $1`, videoColumns)
	return scanVideo(r.QueryRowContext(ctx, query, id))
}

// GetByIDIncrementingViews bumps the view counter and returns the updated
// row in one statement, so each fetch counts exactly once.
func (r *videoRepository) GetByIDIncrementingViews(ctx context.Context, id int64) (*models.Video, error) {
	query := `
		UPDATE videos v SET views = views + 1
		WHERE v.id = $1
		RETURNING ` + videoColumns
	return scanVideo(r.QueryRowContext(ctx, query, id))
}

// List pages videos joined with owner profiles, optionally filtered by
// owner and title search.
func (r *videoRepository) List(ctx context.Context, opts ListVideosOptions) ([]*models.Video, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if opts.OnlyPublished {
		where = append(where, "v.is_published = TRUE")
	}
	if opts.OwnerID != nil {
		where = append(where, "v.owner_id = "+arg(*opts.OwnerID))
	}
	if opts.Query != "" {
		where = append(where, "v.title ILIKE "+arg("%"+opts.Query+"%"))
	}
	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM videos v WHERE ` + whereClause
	if err := r.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}

	sortBy := "created_at"
	switch opts.SortBy {
	case "views", "duration", "created_at":
		sortBy = opts.SortBy
	}
	order := "DESC"
	if strings.EqualFold(opts.SortOrder, "asc") {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s, o.id, o.username, o.full_name, o.avatar_url
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE %s
		ORDER BY v.%s %s
		LIMIT %s OFFSET %s`,
		videoColumns, whereClause, sortBy, order,
		arg(opts.PageSize), arg((opts.Page-1)*opts.PageSize),
	)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
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
			return nil, 0, translateError(err)
		}
		v.Owner = &o
		videos = append(videos, &v)
	}
	return videos, total, rows.Err()
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM videos v
		WHERE v.owner_id = $1
		ORDER BY v.created_at DESC`, videoColumns)

	rows, err := r.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// Update persists title, description and thumbnail fields.
func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3,
		    thumbnail_url = $4, thumbnail_public_id = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(
		ctx, query,
		video.ID, video.Title, video.Description,
		video.ThumbnailURL, video.ThumbnailPublicID,
	).Scan(&video.UpdatedAt)
	return translateError(err)
}

func (r *videoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
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

func (r *videoRepository) TogglePublished(ctx context.Context, id int64) (*models.Video, error) {
	query := `
		UPDATE videos v SET is_published = NOT is_published, updated_at = now()
		WHERE v.id = $1
		RETURNING ` + videoColumns
	return scanVideo(r.QueryRowContext(ctx, query, id))
}

// GetChannelStats aggregates totals across the owner's videos: view sum,
// subscriber count, video count and likes joined from videos to likes.
func (r *videoRepository) GetChannelStats(ctx context.Context, ownerID int64) (*models.ChannelStats, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(views) FROM videos WHERE owner_id = $1), 0),
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1),
			(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1)`

	var stats models.ChannelStats
	err := r.QueryRowContext(ctx, query, ownerID).Scan(
		&stats.TotalViews, &stats.TotalSubscribers, &stats.TotalVideos, &stats.TotalLikes,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &stats, nil
}
