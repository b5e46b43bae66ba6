package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255"`
	FullName string `json:"fullName" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
	Avatar   string `json:"avatar" binding:"omitempty,max=500"`
}

// TokenData 登录成功返回的 Token 信息
type TokenData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	ExpiresIn int      `json:"expiresIn"`
	User      UserInfo `json:"user"`
}

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// OwnerProfile 嵌套在视频、评论等视图中的作者信息
type OwnerProfile struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
}

// ChannelProfile 频道信息，附带订阅数和当前用户的订阅状态
type ChannelProfile struct {
	OwnerProfile
	SubscribersCount  int64 `json:"subscribersCount"`
	SubscribedToCount int64 `json:"channelsSubscribedToCount,omitempty"`
	IsSubscribed      bool  `json:"isSubscribed"`
}
