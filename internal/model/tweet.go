package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tweet 动态模型
type Tweet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_tweets_owner_created,priority:1" json:"ownerId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_tweets_owner_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Tweet) TableName() string {
	return "tweets"
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Tweet) OwnerRef() uuid.UUID { return t.OwnerID }
