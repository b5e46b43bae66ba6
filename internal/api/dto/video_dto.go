package dto

import (
	"time"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
)

// VideoPublishRequest 发布视频请求（multipart/form-data）
type VideoPublishRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`

	// 由 handler 落盘后的本地临时文件
	VideoFilePath string `form:"-"`
	ThumbnailPath string `form:"-"`
}

// VideoUpdateRequest 视频更新请求（multipart/form-data）
type VideoUpdateRequest struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`

	ThumbnailPath string `form:"-"`
}

// VideoListQuery 视频列表查询参数
type VideoListQuery struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}

// VideoDetail 视频详情
type VideoDetail struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	VideoFile   model.Asset     `json:"videoFile"`
	Thumbnail   model.Asset     `json:"thumbnail"`
	Duration    float64         `json:"duration"`
	Views       int64           `json:"views"`
	IsPublished bool            `json:"isPublished"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Owner       *ChannelProfile `json:"owner,omitempty"`
	LikesCount  int64           `json:"likesCount"`
	IsLiked     bool            `json:"isLiked"`
}

// VideoItem 视频列表项
type VideoItem struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	VideoFile   model.Asset   `json:"videoFile"`
	Thumbnail   model.Asset   `json:"thumbnail"`
	Duration    float64       `json:"duration"`
	Views       int64         `json:"views"`
	IsPublished bool          `json:"isPublished"`
	CreatedAt   time.Time     `json:"createdAt"`
	Owner       *OwnerProfile `json:"owner,omitempty"`
	LikesCount  int64         `json:"likesCount"`
}

// PublishStatus 切换发布状态结果
type PublishStatus struct {
	IsPublished bool `json:"isPublished"`
}
