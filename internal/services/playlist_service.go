// internal/services/playlist_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"vidhub/internal/models"
	"vidhub/internal/repositories"

	"go.uber.org/zap"
)

// PlaylistService manages playlists and their video membership. Reads are
// public; every mutation is gated on ownership.
type PlaylistService interface {
	Create(ctx context.Context, req *CreatePlaylistRequest) (*models.Playlist, error)
	GetByID(ctx context.Context, playlistID int64) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Playlist, error)
	Update(ctx context.Context, req *UpdatePlaylistRequest) (*models.Playlist, error)
	Delete(ctx context.Context, playlistID, userID int64) error
	AddVideo(ctx context.Context, playlistID, videoID, userID int64) (*models.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID, userID int64) (*models.Playlist, error)
}

type playlistService struct {
	playlists repositories.PlaylistRepository
	videos    repositories.VideoRepository
	logger    *zap.Logger
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(
	playlists repositories.PlaylistRepository,
	videos repositories.VideoRepository,
	logger *zap.Logger,
) PlaylistService {
	return &playlistService{playlists: playlists, videos: videos, logger: logger}
}

func (s *playlistService) Create(ctx context.Context, req *CreatePlaylistRequest) (*models.Playlist, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	playlist := &models.Playlist{
		OwnerID:     req.UserID,
		Name:        req.Name,
		Description: req.Description,
		VideoIDs:    []int64{},
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, NewInternalError("failed to create playlist", err)
	}
	return playlist, nil
}

func (s *playlistService) GetByID(ctx context.Context, playlistID int64) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("playlist not found")
		}
		return nil, NewInternalError("failed to load playlist", err)
	}
	return playlist, nil
}

func (s *playlistService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Playlist, error) {
	playlists, err := s.playlists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewInternalError("failed to list playlists", err)
	}
	return playlists, nil
}

func (s *playlistService) Update(ctx context.Context, req *UpdatePlaylistRequest) (*models.Playlist, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	playlist, err := s.ownedPlaylist(ctx, req.PlaylistID, req.UserID)
	if err != nil {
		return nil, err
	}

	playlist.Name = req.Name
	playlist.Description = req.Description
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return nil, NewInternalError("failed to update playlist", err)
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, playlistID, userID int64) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return NewInternalError("failed to delete playlist", err)
	}
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID, userID int64) (*models.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, targetError("video", err)
	}

	if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, NewInternalError("failed to add video to playlist", err)
	}
	return s.GetByID(ctx, playlistID)
}

func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID, userID int64) (*models.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}

	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("video not in playlist")
		}
		return nil, NewInternalError("failed to remove video from playlist", err)
	}
	return s.GetByID(ctx, playlistID)
}

func (s *playlistService) ownedPlaylist(ctx context.Context, playlistID, userID int64) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("playlist not found")
		}
		return nil, NewInternalError("failed to load playlist", err)
	}
	if playlist.OwnerID != userID {
		return nil, NewForbiddenError("you do not own this playlist")
	}
	return playlist, nil
}
