package dto

import (
	"time"

	"github.com/google/uuid"
)

// ContentRequest 评论、动态共用的内容请求体
type ContentRequest struct {
	Content string `json:"content"`
}

// CommentInfo 评论视图
type CommentInfo struct {
	ID         uuid.UUID     `json:"id"`
	Content    string        `json:"content"`
	VideoID    uuid.UUID     `json:"videoId"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	Owner      *OwnerProfile `json:"owner,omitempty"`
	LikesCount int64         `json:"likesCount"`
	IsLiked    bool          `json:"isLiked"`
}

// TweetInfo 动态视图
type TweetInfo struct {
	ID         uuid.UUID     `json:"id"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	Owner      *OwnerProfile `json:"owner,omitempty"`
	LikesCount int64         `json:"likesCount"`
	IsLiked    bool          `json:"isLiked"`
}
