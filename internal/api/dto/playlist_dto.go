package dto

import (
	"time"

	"github.com/google/uuid"
)

// PlaylistRequest 创建播放列表
type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistUpdateRequest 更新播放列表
type PlaylistUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PlaylistInfo 播放列表概要
type PlaylistInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalVideos int64     `json:"totalVideos"`
	TotalViews  int64     `json:"totalViews"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistDetail 播放列表详情，只包含已发布的视频
type PlaylistDetail struct {
	PlaylistInfo
	Owner  *OwnerProfile `json:"owner,omitempty"`
	Videos []VideoItem   `json:"videos"`
}
