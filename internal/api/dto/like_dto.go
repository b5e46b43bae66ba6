package dto

import "time"

// LikeStatus 点赞切换结果
type LikeStatus struct {
	IsLiked    bool  `json:"isLiked"`
	LikesCount int64 `json:"likesCount"`
}

// LikedVideo 点赞过的视频
type LikedVideo struct {
	VideoItem
	LikedAt time.Time `json:"likedAt"`
}
