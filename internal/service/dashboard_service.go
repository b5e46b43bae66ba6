package service

import (
	"context"
	"encoding/json"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DashboardService struct {
	store    repository.Store
	compose  composer
	cache    Cache
	statsTTL time.Duration
}

// NewDashboardService cache 为 nil 时不缓存
func NewDashboardService(store repository.Store, cache Cache, statsTTL time.Duration) *DashboardService {
	if cache == nil {
		cache = nopCache{}
	}
	return &DashboardService{store: store, compose: composer{store: store}, cache: cache, statsTTL: statsTTL}
}

func channelStatsKey(channelID uuid.UUID) string {
	return "vidtube:channel_stats:" + channelID.String()
}

// GetChannelStats 频道订阅数、视频数、总播放量和总点赞数
func (s *DashboardService) GetChannelStats(ctx context.Context, channelID uuid.UUID) (*dto.ChannelStats, error) {
	key := channelStatsKey(channelID)
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn("Read channel stats cache failed", zap.String("channel_id", channelID.String()), zap.Error(err))
	} else if ok {
		var cached dto.ChannelStats
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	if _, err := s.store.Users().GetByID(ctx, channelID); err != nil {
		return nil, lookupErr("get channel", err, ErrChannelNotFound)
	}

	videos, err := s.store.Videos().ListByOwner(ctx, channelID)
	if err != nil {
		return nil, wrapStore("list channel videos", err)
	}
	ids := make([]uuid.UUID, len(videos))
	stats := &dto.ChannelStats{TotalVideos: int64(len(videos))}
	for i := range videos {
		ids[i] = videos[i].ID
		stats.TotalViews += videos[i].Views
	}

	likes, err := s.store.Likes().CountByTargets(ctx, model.TargetVideo, ids)
	if err != nil {
		return nil, wrapStore("count channel likes", err)
	}
	for _, n := range likes {
		stats.TotalLikes += n
	}

	subs, err := s.store.Subscriptions().CountByChannels(ctx, []uuid.UUID{channelID})
	if err != nil {
		return nil, wrapStore("count channel subscribers", err)
	}
	stats.TotalSubscribers = subs[channelID]

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.statsTTL); err != nil {
			logger.Warn("Write channel stats cache failed", zap.String("channel_id", channelID.String()), zap.Error(err))
		}
	}
	return stats, nil
}

// GetChannelVideos 当前用户的全部视频（含未公开），新的在前
func (s *DashboardService) GetChannelVideos(ctx context.Context, viewerID uuid.UUID) ([]dto.VideoItem, error) {
	videos, err := s.store.Videos().ListByOwner(ctx, viewerID)
	if err != nil {
		return nil, wrapStore("list channel videos", err)
	}
	return s.compose.videoItems(ctx, videos)
}
