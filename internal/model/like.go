package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TargetKind 点赞对象类型
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// LikeTarget 点赞对象引用，Kind 决定 ID 指向哪张表
type LikeTarget struct {
	Kind TargetKind
	ID   uuid.UUID
}

func VideoTarget(id uuid.UUID) LikeTarget   { return LikeTarget{Kind: TargetVideo, ID: id} }
func CommentTarget(id uuid.UUID) LikeTarget { return LikeTarget{Kind: TargetComment, ID: id} }
func TweetTarget(id uuid.UUID) LikeTarget   { return LikeTarget{Kind: TargetTweet, ID: id} }

// Like 点赞模型，(liked_by, target_kind, target_id) 唯一
type Like struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;comment:点赞记录ID" json:"id"`
	LikedBy    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_likes_actor_target,priority:1;comment:点赞用户ID" json:"likedBy"`
	TargetKind TargetKind `gorm:"size:16;not null;uniqueIndex:uq_likes_actor_target,priority:2;index:idx_likes_target,priority:1" json:"targetKind"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_likes_actor_target,priority:3;index:idx_likes_target,priority:2" json:"targetId"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;comment:点赞时间" json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
