// internal/services/stats_cache.go
package services

import (
	"context"
	"fmt"
	"time"

	"vidhub/internal/cache"
	"vidhub/internal/models"

	"go.uber.org/zap"
)

const channelStatsTTL = 5 * time.Minute

// StatsCache is a typed facade over the shared cache for dashboard reads.
// Cache failures degrade to a repository hit, never to a request error.
type StatsCache interface {
	GetChannelStats(ctx context.Context, channelID int64) (*models.ChannelStats, bool)
	SetChannelStats(ctx context.Context, channelID int64, stats *models.ChannelStats)
	InvalidateChannelStats(ctx context.Context, channelID int64)
}

type statsCache struct {
	cache  cache.Cache
	logger *zap.Logger
}

// NewStatsCache creates a StatsCache backed by the given cache.
func NewStatsCache(c cache.Cache, logger *zap.Logger) StatsCache {
	return &statsCache{cache: c, logger: logger}
}

func channelStatsKey(channelID int64) string {
	return fmt.Sprintf("channel:stats:%d", channelID)
}

func (s *statsCache) GetChannelStats(ctx context.Context, channelID int64) (*models.ChannelStats, bool) {
	var stats models.ChannelStats
	if !s.cache.Get(ctx, channelStatsKey(channelID), &stats) {
		return nil, false
	}
	return &stats, true
}

func (s *statsCache) SetChannelStats(ctx context.Context, channelID int64, stats *models.ChannelStats) {
	if err := s.cache.Set(ctx, channelStatsKey(channelID), stats, channelStatsTTL); err != nil {
		s.logger.Warn("Failed to cache channel stats",
			zap.Int64("channel_id", channelID),
			zap.Error(err),
		)
	}
}

func (s *statsCache) InvalidateChannelStats(ctx context.Context, channelID int64) {
	if err := s.cache.Delete(ctx, channelStatsKey(channelID)); err != nil {
		s.logger.Warn("Failed to invalidate channel stats",
			zap.Int64("channel_id", channelID),
			zap.Error(err),
		)
	}
}
