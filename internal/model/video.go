package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset 对象存储中的媒体文件
type Asset struct {
	URL     string `gorm:"size:500" json:"url"`
	AssetID string `gorm:"size:500" json:"assetId"`
}

// Video 视频模型
type Video struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;comment:视频标识" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_videos_owner;comment:视频作者ID" json:"ownerId"`
	Title       string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description string    `gorm:"type:text;comment:视频描述" json:"description"`
	VideoFile   Asset     `gorm:"embedded;embeddedPrefix:video_file_" json:"videoFile"`
	Thumbnail   Asset     `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Duration    float64   `gorm:"default:0;comment:视频时长（秒）" json:"duration"`
	Views       int64     `gorm:"not null;default:0;comment:播放量" json:"views"`
	IsPublished bool      `gorm:"not null;default:false;index:idx_videos_published;comment:是否公开" json:"isPublished"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_videos_created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v *Video) OwnerRef() uuid.UUID { return v.OwnerID }
