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

func ownedVideoRepo(ownerID int64) *mockVideoRepo {
	return &mockVideoRepo{
		getByIDFn: func(_ context.Context, id int64) (*models.Video, error) {
			return &models.Video{
				ID:                id,
				OwnerID:           ownerID,
				VideoPublicID:     "video-asset",
				ThumbnailPublicID: "thumb-asset",
			}, nil
		},
	}
}

func TestGetVideoByIDCountsViewAndRecordsHistory(t *testing.T) {
	videos := &mockVideoRepo{
		getByIDIncrFn: func(_ context.Context, id int64) (*models.Video, error) {
			return &models.Video{ID: id, Views: 6}, nil
		},
	}
	var historyUser, historyVideo int64
	users := &mockUserRepo{
		addWatchHistoryFn: func(_ context.Context, userID, videoID int64) error {
			historyUser, historyVideo = userID, videoID
			return nil
		},
	}
	svc := NewVideoService(videos, users, &fakeStorage{}, noopStats{}, zap.NewNop())

	viewer := int64(3)
	video, err := svc.GetByID(context.Background(), 10, &viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(6), video.Views)
	assert.Equal(t, int64(3), historyUser)
	assert.Equal(t, int64(10), historyVideo)
}

func TestGetVideoByIDAnonymousSkipsHistory(t *testing.T) {
	videos := &mockVideoRepo{
		getByIDIncrFn: func(_ context.Context, id int64) (*models.Video, error) {
			return &models.Video{ID: id}, nil
		},
	}
	svc := NewVideoService(videos, &mockUserRepo{}, &fakeStorage{}, noopStats{}, zap.NewNop())

	_, err := svc.GetByID(context.Background(), 10, nil)
	assert.NoError(t, err)
}

func TestGetVideoByIDNotFound(t *testing.T) {
	videos := &mockVideoRepo{
		getByIDIncrFn: func(context.Context, int64) (*models.Video, error) {
			return nil, repositories.ErrNotFound
		},
	}
	svc := NewVideoService(videos, &mockUserRepo{}, &fakeStorage{}, noopStats{}, zap.NewNop())

	_, err := svc.GetByID(context.Background(), 10, nil)
	assertStatus(t, err, 404)
}

func TestDeleteVideoRequiresOwnership(t *testing.T) {
	svc := NewVideoService(ownedVideoRepo(1), &mockUserRepo{}, &fakeStorage{}, noopStats{}, zap.NewNop())

	err := svc.Delete(context.Background(), 10, 2)
	assertStatus(t, err, 403)
}

func TestDeleteVideoCleansUpMedia(t *testing.T) {
	videos := ownedVideoRepo(1)
	var deletedRow int64
	videos.deleteFn = func(_ context.Context, id int64) error {
		deletedRow = id
		return nil
	}
	storage := &fakeStorage{}
	svc := NewVideoService(videos, &mockUserRepo{}, storage, noopStats{}, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 10, 1))
	assert.Equal(t, int64(10), deletedRow)
	assert.Equal(t, []string{"video-asset", "thumb-asset"}, storage.deletes)
}

func TestTogglePublishedRequiresOwnership(t *testing.T) {
	svc := NewVideoService(ownedVideoRepo(1), &mockUserRepo{}, &fakeStorage{}, noopStats{}, zap.NewNop())

	_, err := svc.TogglePublished(context.Background(), 10, 99)
	assertStatus(t, err, 403)
}

func TestTogglePublishedFlipsState(t *testing.T) {
	videos := ownedVideoRepo(1)
	videos.toggleFn = func(_ context.Context, id int64) (*models.Video, error) {
		return &models.Video{ID: id, OwnerID: 1, IsPublished: true}, nil
	}
	svc := NewVideoService(videos, &mockUserRepo{}, &fakeStorage{}, noopStats{}, zap.NewNop())

	video, err := svc.TogglePublished(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.True(t, video.IsPublished)
}
