package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus 订阅切换结果
type SubscriptionStatus struct {
	IsSubscribed     bool  `json:"isSubscribed"`
	SubscribersCount int64 `json:"subscribersCount"`
}

// SubscriberInfo 频道订阅者
type SubscriberInfo struct {
	Subscriber            *OwnerProfile `json:"subscriber,omitempty"`
	SubscribersCount      int64         `json:"subscribersCount"`
	// 被查看的频道是否也订阅了该订阅者
	ChannelSubscribesBack bool          `json:"channelSubscribesBack"`
	SubscribedAt          time.Time     `json:"subscribedAt"`
}

// LatestVideo 频道最新发布的视频
type LatestVideo struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Duration  float64   `json:"duration"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubscribedChannel 用户订阅的频道
type SubscribedChannel struct {
	Channel      *OwnerProfile `json:"channel,omitempty"`
	LatestVideo  *LatestVideo  `json:"latestVideo,omitempty"`
	SubscribedAt time.Time     `json:"subscribedAt"`
}
