package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Playlist 播放列表模型
type Playlist struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_playlists_owner" json:"ownerId"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// 按加入顺序排列的视频 ID，不落库
	VideoIDs []uuid.UUID `gorm:"-" json:"videos"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Playlist) OwnerRef() uuid.UUID { return p.OwnerID }

// PlaylistVideo 播放列表成员，联合主键保证集合语义
type PlaylistVideo struct {
	PlaylistID uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoID    uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_playlist_videos_video"`
	Position   int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
