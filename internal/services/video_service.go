// internal/services/video_service.go
package services

import (
	"context"
	"errors"

	"vidhub/internal/media"
	"vidhub/internal/models"
	"vidhub/internal/repositories"

	"go.uber.org/zap"
)

// VideoService covers publishing, metadata updates, deletion with media
// cleanup, the view-counted fetch and the channel dashboard reads.
type VideoService interface {
	Publish(ctx context.Context, req *PublishVideoRequest) (*models.Video, error)
	GetByID(ctx context.Context, videoID int64, viewerID *int64) (*models.Video, error)
	List(ctx context.Context, req *ListVideosRequest) (*models.PaginatedResponse[*models.Video], error)
	Update(ctx context.Context, req *UpdateVideoRequest) (*models.Video, error)
	Delete(ctx context.Context, videoID, userID int64) error
	TogglePublished(ctx context.Context, videoID, userID int64) (*models.Video, error)
	GetChannelStats(ctx context.Context, ownerID int64) (*models.ChannelStats, error)
	GetChannelVideos(ctx context.Context, ownerID int64) ([]*models.Video, error)
}

type videoService struct {
	videos  repositories.VideoRepository
	users   repositories.UserRepository
	storage media.Storage
	stats   StatsCache
	logger  *zap.Logger
}

// NewVideoService creates a new VideoService.
func NewVideoService(
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	storage media.Storage,
	stats StatsCache,
	logger *zap.Logger,
) VideoService {
	return &videoService{videos: videos, users: users, storage: storage, stats: stats, logger: logger}
}

// Publish uploads the video and thumbnail, then creates the record. The
// video's duration comes from the storage provider.
func (s *videoService) Publish(ctx context.Context, req *PublishVideoRequest) (*models.Video, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.VideoFile == nil || req.Thumbnail == nil {
		return nil, NewValidationError("video file and thumbnail are required", nil)
	}

	uploadedVideo, err := s.storage.Upload(ctx, req.VideoFile, media.KindVideo)
	if err != nil {
		return nil, uploadError("video", err)
	}
	thumbnail, err := s.storage.Upload(ctx, req.Thumbnail, media.KindImage)
	if err != nil {
		// The video asset is already remote; try to clean it up before
		// reporting the failure.
		if delErr := s.storage.Delete(ctx, uploadedVideo.PublicID, media.KindVideo); delErr != nil {
			s.logger.Warn("Failed to clean up video after thumbnail upload failure, asset orphaned",
				zap.String("public_id", uploadedVideo.PublicID),
				zap.Error(delErr),
			)
		}
		return nil, uploadError("thumbnail", err)
	}

	video := &models.Video{
		OwnerID:           req.OwnerID,
		Title:             req.Title,
		Description:       req.Description,
		VideoURL:          uploadedVideo.URL,
		VideoPublicID:     uploadedVideo.PublicID,
		ThumbnailURL:      thumbnail.URL,
		ThumbnailPublicID: thumbnail.PublicID,
		Duration:          uploadedVideo.Duration,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, NewInternalError("failed to create video", err)
	}

	s.stats.InvalidateChannelStats(ctx, req.OwnerID)
	s.logger.Info("Video published",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", video.OwnerID),
	)
	return video, nil
}

// GetByID increments the view counter and, when a viewer is known, records
// the video in their watch history.
func (s *videoService) GetByID(ctx context.Context, videoID int64, viewerID *int64) (*models.Video, error) {
	video, err := s.videos.GetByIDIncrementingViews(ctx, videoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("video not found")
		}
		return nil, NewInternalError("failed to load video", err)
	}

	if viewerID != nil {
		if err := s.users.AddWatchHistory(ctx, *viewerID, videoID); err != nil {
			s.logger.Warn("Failed to record watch history",
				zap.Int64("user_id", *viewerID),
				zap.Int64("video_id", videoID),
				zap.Error(err),
			)
		}
	}
	return video, nil
}

func (s *videoService) List(ctx context.Context, req *ListVideosRequest) (*models.PaginatedResponse[*models.Video], error) {
	videos, total, err := s.videos.List(ctx, repositories.ListVideosOptions{
		Page:          req.Page,
		PageSize:      req.PageSize,
		Query:         req.Query,
		OwnerID:       req.OwnerID,
		OnlyPublished: true,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return nil, NewInternalError("failed to list videos", err)
	}
	return &models.PaginatedResponse[*models.Video]{
		Data:       videos,
		Pagination: models.NewPaginationMeta(req.Page, req.PageSize, total),
	}, nil
}

// Update edits title/description and optionally replaces the thumbnail,
// deleting the old one after the record points at the new asset.
func (s *videoService) Update(ctx context.Context, req *UpdateVideoRequest) (*models.Video, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	video, err := s.ownedVideo(ctx, req.VideoID, req.UserID)
	if err != nil {
		return nil, err
	}

	oldThumbnailID := ""
	if req.Thumbnail != nil {
		thumbnail, err := s.storage.Upload(ctx, req.Thumbnail, media.KindImage)
		if err != nil {
			return nil, uploadError("thumbnail", err)
		}
		oldThumbnailID = video.ThumbnailPublicID
		video.ThumbnailURL = thumbnail.URL
		video.ThumbnailPublicID = thumbnail.PublicID
	}
	video.Title = req.Title
	video.Description = req.Description

	if err := s.videos.Update(ctx, video); err != nil {
		return nil, NewInternalError("failed to update video", err)
	}

	if oldThumbnailID != "" {
		if err := s.storage.Delete(ctx, oldThumbnailID, media.KindImage); err != nil {
			s.logger.Warn("Failed to delete replaced thumbnail, asset orphaned",
				zap.Int64("video_id", video.ID),
				zap.String("public_id", oldThumbnailID),
				zap.Error(err),
			)
		}
	}
	return video, nil
}

// Delete removes the record first, then attempts to remove the backing
// media. The two phases are not atomic: a provider failure after the row
// is gone leaves orphaned assets, which is surfaced as an error without
// rollback.
func (s *videoService) Delete(ctx context.Context, videoID, userID int64) error {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return err
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return NewInternalError("failed to delete video", err)
	}
	s.stats.InvalidateChannelStats(ctx, video.OwnerID)

	if err := s.storage.Delete(ctx, video.VideoPublicID, media.KindVideo); err != nil {
		return NewInternalError("video removed but media cleanup failed", err)
	}
	if err := s.storage.Delete(ctx, video.ThumbnailPublicID, media.KindImage); err != nil {
		return NewInternalError("video removed but thumbnail cleanup failed", err)
	}

	s.logger.Info("Video deleted",
		zap.Int64("video_id", videoID),
		zap.Int64("owner_id", video.OwnerID),
	)
	return nil
}

func (s *videoService) TogglePublished(ctx context.Context, videoID, userID int64) (*models.Video, error) {
	if _, err := s.ownedVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}

	video, err := s.videos.TogglePublished(ctx, videoID)
	if err != nil {
		return nil, NewInternalError("failed to toggle publish status", err)
	}
	return video, nil
}

func (s *videoService) GetChannelStats(ctx context.Context, ownerID int64) (*models.ChannelStats, error) {
	if stats, ok := s.stats.GetChannelStats(ctx, ownerID); ok {
		return stats, nil
	}

	stats, err := s.videos.GetChannelStats(ctx, ownerID)
	if err != nil {
		return nil, NewInternalError("failed to load channel stats", err)
	}
	s.stats.SetChannelStats(ctx, ownerID, stats)
	return stats, nil
}

func (s *videoService) GetChannelVideos(ctx context.Context, ownerID int64) ([]*models.Video, error) {
	videos, err := s.videos.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewInternalError("failed to list channel videos", err)
	}
	return videos, nil
}

// ownedVideo loads the video and enforces ownership: 404 when absent, 403
// when the principal is not the owner.
func (s *videoService) ownedVideo(ctx context.Context, videoID, userID int64) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("video not found")
		}
		return nil, NewInternalError("failed to load video", err)
	}
	if video.OwnerID != userID {
		return nil, NewForbiddenError("you do not own this video")
	}
	return video, nil
}
