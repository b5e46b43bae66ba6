package service

import (
	"context"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/pagination"

	"github.com/google/uuid"
)

var (
	ErrChannelNotFound     = newError(ErrNotFound, "频道不存在")
	ErrCannotSubscribeSelf = newError(ErrValidationFailed, "不能订阅自己的频道")
)

type SubscriptionService struct {
	store   repository.Store
	compose composer
}

func NewSubscriptionService(store repository.Store) *SubscriptionService {
	return &SubscriptionService{store: store, compose: composer{store: store}}
}

// ToggleSubscription 订阅或取消订阅频道
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, viewerID, channelID uuid.UUID) (*dto.SubscriptionStatus, error) {
	if viewerID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	if _, err := s.store.Users().GetByID(ctx, channelID); err != nil {
		return nil, lookupErr("get channel", err, ErrChannelNotFound)
	}
	if viewerID == channelID {
		return nil, ErrCannotSubscribeSelf
	}

	subscribed, err := s.store.Subscriptions().Toggle(ctx, viewerID, channelID)
	if err != nil {
		return nil, wrapStore("toggle subscription", err)
	}
	counts, err := s.store.Subscriptions().CountByChannels(ctx, []uuid.UUID{channelID})
	if err != nil {
		return nil, wrapStore("count subscribers", err)
	}
	return &dto.SubscriptionStatus{IsSubscribed: subscribed, SubscribersCount: counts[channelID]}, nil
}

// GetChannelSubscribers 频道的订阅者，附带每个订阅者的订阅数以及频道是否回订
func (s *SubscriptionService) GetChannelSubscribers(ctx context.Context, channelID uuid.UUID, params pagination.Params) (*pagination.Page[dto.SubscriberInfo], error) {
	if _, err := s.store.Users().GetByID(ctx, channelID); err != nil {
		return nil, lookupErr("get channel", err, ErrChannelNotFound)
	}

	subs, total, err := s.store.Subscriptions().ListSubscribers(ctx, channelID, params.Offset(), params.Limit)
	if err != nil {
		return nil, wrapStore("list subscribers", err)
	}

	ids := make([]uuid.UUID, len(subs))
	for i := range subs {
		ids[i] = subs[i].SubscriberID
	}
	profiles, err := s.compose.profiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.Subscriptions().CountByChannels(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, wrapStore("count subscribers", err)
	}
	// 频道本身作为订阅者，是否订阅了这些用户
	back, err := s.store.Subscriptions().SubscribedChannels(ctx, channelID, uniqueIDs(ids))
	if err != nil {
		return nil, wrapStore("check mutual subscriptions", err)
	}

	rows := make([]dto.SubscriberInfo, len(subs))
	for i, sub := range subs {
		rows[i] = dto.SubscriberInfo{
			Subscriber:            profiles[sub.SubscriberID],
			SubscribersCount:      counts[sub.SubscriberID],
			ChannelSubscribesBack: back[sub.SubscriberID],
			SubscribedAt:          sub.CreatedAt,
		}
	}
	return pagination.NewPage(rows, total, params), nil
}

// GetSubscribedChannels 用户订阅的频道，附带每个频道最新发布的视频
func (s *SubscriptionService) GetSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, params pagination.Params) (*pagination.Page[dto.SubscribedChannel], error) {
	if _, err := s.store.Users().GetByID(ctx, subscriberID); err != nil {
		return nil, lookupErr("get subscriber", err, ErrUserNotFound)
	}

	subs, total, err := s.store.Subscriptions().ListSubscriptions(ctx, subscriberID, params.Offset(), params.Limit)
	if err != nil {
		return nil, wrapStore("list subscriptions", err)
	}

	ids := make([]uuid.UUID, len(subs))
	for i := range subs {
		ids[i] = subs[i].ChannelID
	}
	profiles, err := s.compose.profiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	latest, err := s.store.Videos().LatestPublishedByOwners(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, wrapStore("load latest videos", err)
	}

	rows := make([]dto.SubscribedChannel, len(subs))
	for i, sub := range subs {
		row := dto.SubscribedChannel{
			Channel:      profiles[sub.ChannelID],
			SubscribedAt: sub.CreatedAt,
		}
		if v, ok := latest[sub.ChannelID]; ok {
			row.LatestVideo = &dto.LatestVideo{
				ID:        v.ID,
				Title:     v.Title,
				Thumbnail: v.Thumbnail.URL,
				Duration:  v.Duration,
				Views:     v.Views,
				CreatedAt: v.CreatedAt,
			}
		}
		rows[i] = row
	}
	return pagination.NewPage(rows, total, params), nil
}
