// internal/repositories/playlist_repository.go
package repositories

import (
	"context"

	"vidhub/internal/database"
	"vidhub/internal/models"

	"go.uber.org/zap"
)

type playlistRepository struct {
	*BaseRepository
}

// NewPlaylistRepository creates a new instance of PlaylistRepository
func NewPlaylistRepository(db *database.Manager, logger *zap.Logger) PlaylistRepository {
	return &playlistRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	query := `
		INSERT INTO playlists (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, playlist.OwnerID, playlist.Name, playlist.Description).
		Scan(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		return translateError(err)
	}

	r.GetLogger().Info("Playlist created",
		zap.Int64("playlist_id", playlist.ID),
		zap.Int64("owner_id", playlist.OwnerID),
	)
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id int64) (*models.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists WHERE id = $1`

	var p models.Playlist
	err := r.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if err := r.loadVideoIDs(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns the owner's playlists, most recently updated first.
func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var p models.Playlist
		err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, translateError(err)
		}
		playlists = append(playlists, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range playlists {
		if err := r.loadVideoIDs(ctx, p); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	query := `
		UPDATE playlists SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, playlist.ID, playlist.Name, playlist.Description).
		Scan(&playlist.UpdatedAt)
	return translateError(err)
}

func (r *playlistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
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

// AddVideo appends the video to the playlist. Duplicates are allowed; the
// serial position keeps insertion order.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	query := `INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)`
	if _, err := r.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return translateError(err)
	}
	_, err := r.ExecContext(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, playlistID)
	return translateError(err)
}

// RemoveVideo removes every occurrence of the video from the playlist.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`
	if _, err := r.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return translateError(err)
	}
	_, err := r.ExecContext(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, playlistID)
	return translateError(err)
}

func (r *playlistRepository) loadVideoIDs(ctx context.Context, p *models.Playlist) error {
	query := `
		SELECT video_id FROM playlist_videos
		WHERE playlist_id = $1
		ORDER BY position`

	rows, err := r.QueryContext(ctx, query, p.ID)
	if err != nil {
		return translateError(err)
	}
	defer rows.Close()

	p.VideoIDs = []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return translateError(err)
		}
		p.VideoIDs = append(p.VideoIDs, id)
	}
	return rows.Err()
}
