package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription 订阅关系模型，subscriber 订阅 channel，不能订阅自己
type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_subscriptions_pair,priority:1;index:idx_subscriptions_subscriber" json:"subscriberId"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_subscriptions_pair,priority:2;index:idx_subscriptions_channel;check:chk_subscriptions_not_self,subscriber_id <> channel_id" json:"channelId"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
