package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment 评论模型
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;comment:评论ID" json:"id"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_video_created,priority:1;comment:被评论视频ID" json:"videoId"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_owner;comment:评论用户ID" json:"ownerId"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_video_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Comment) OwnerRef() uuid.UUID { return c.OwnerID }
