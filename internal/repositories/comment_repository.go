// internal/repositories/comment_repository.go
package repositories

import (
	"context"

	"vidhub/internal/database"
	"vidhub/internal/models"

	"go.uber.org/zap"
)

type commentRepository struct {
	*BaseRepository
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *database.Manager, logger *zap.Logger) CommentRepository {
	return &commentRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (video_id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, comment.VideoID, comment.OwnerID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return translateError(err)
	}

	r.GetLogger().Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("video_id", comment.VideoID),
	)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments WHERE id = $1`

	var c models.Comment
	err := r.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// ListByVideo pages a video's comments, newest first, joined with each
// author's public profile.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID int64, page, pageSize int) ([]*models.Comment, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM comments WHERE video_id = $1`
	if err := r.QueryRowContext(ctx, countQuery, videoID).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}

	query := `
		SELECT
			c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
			o.id, o.username, o.full_name, o.avatar_url
		FROM comments c
		JOIN users o ON o.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, videoID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		var o models.PublicProfile
		err := rows.Scan(
			&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&o.ID, &o.Username, &o.FullName, &o.Avatar,
		)
		if err != nil {
			return nil, 0, translateError(err)
		}
		c.Owner = &o
		comments = append(comments, &c)
	}
	return comments, total, rows.Err()
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	return translateError(err)
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
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
