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

func TestToggleVideoLikeAddsWhenAbsent(t *testing.T) {
	var created *models.Like
	likes := &mockLikeRepo{
		getFn: func(context.Context, int64, repositories.LikeTarget) (*models.Like, error) {
			return nil, repositories.ErrNotFound
		},
		createFn: func(_ context.Context, like *models.Like) error {
			created = like
			return nil
		},
	}
	videos := &mockVideoRepo{
		getByIDFn: func(_ context.Context, id int64) (*models.Video, error) {
			return &models.Video{ID: id}, nil
		},
	}
	svc := NewLikeService(likes, videos, nil, nil, zap.NewNop())

	liked, err := svc.ToggleVideoLike(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, liked)
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.UserID)
	require.NotNil(t, created.VideoID)
	assert.Equal(t, int64(10), *created.VideoID)
	assert.Nil(t, created.CommentID)
	assert.Nil(t, created.TweetID)
}

func TestToggleVideoLikeRemovesWhenPresent(t *testing.T) {
	var deleted int64
	likes := &mockLikeRepo{
		getFn: func(context.Context, int64, repositories.LikeTarget) (*models.Like, error) {
			return &models.Like{ID: 99}, nil
		},
		deleteFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	videos := &mockVideoRepo{
		getByIDFn: func(_ context.Context, id int64) (*models.Video, error) {
			return &models.Video{ID: id}, nil
		},
	}
	svc := NewLikeService(likes, videos, nil, nil, zap.NewNop())

	liked, err := svc.ToggleVideoLike(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(99), deleted)
}

func TestToggleVideoLikeMissingVideo(t *testing.T) {
	videos := &mockVideoRepo{
		getByIDFn: func(context.Context, int64) (*models.Video, error) {
			return nil, repositories.ErrNotFound
		},
	}
	svc := NewLikeService(&mockLikeRepo{}, videos, nil, nil, zap.NewNop())

	_, err := svc.ToggleVideoLike(context.Background(), 1, 10)
	assertStatus(t, err, 404)
}

func TestToggleLikeConcurrentDuplicateTreatedAsLiked(t *testing.T) {
	likes := &mockLikeRepo{
		getFn: func(context.Context, int64, repositories.LikeTarget) (*models.Like, error) {
			return nil, repositories.ErrNotFound
		},
		createFn: func(context.Context, *models.Like) error {
			return repositories.ErrDuplicate
		},
	}
	videos := &mockVideoRepo{
		getByIDFn: func(_ context.Context, id int64) (*models.Video, error) {
			return &models.Video{ID: id}, nil
		},
	}
	svc := NewLikeService(likes, videos, nil, nil, zap.NewNop())

	liked, err := svc.ToggleVideoLike(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, liked)
}
