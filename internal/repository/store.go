package repository

import (
	"context"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
)

// 视频列表可排序字段
const (
	SortByCreatedAt = "createdAt"
	SortByViews     = "views"
	SortByDuration  = "duration"
	SortByTitle     = "title"
)

// VideoFilter 视频列表筛选条件
type VideoFilter struct {
	OwnerID       *uuid.UUID
	// IDs 非 nil 时仅返回其中的视频（全文检索命中结果）
	IDs           []uuid.UUID
	Search        string
	PublishedOnly bool
	SortBy        string
	Ascending     bool
}

// VideoPatch 视频可更新字段，nil 表示不修改
type VideoPatch struct {
	Title       *string
	Description *string
	Thumbnail   *model.Asset
	IsPublished *bool
}

// PlaylistPatch 播放列表可更新字段
type PlaylistPatch struct {
	Name        *string
	Description *string
}

// 以下接口中，单条查询未命中时统一返回 gorm.ErrRecordNotFound

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type VideoStore interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Video, error)
	Update(ctx context.Context, id uuid.UUID, patch VideoPatch) (*model.Video, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter VideoFilter, offset, limit int) ([]model.Video, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Video, error)
	LatestPublishedByOwners(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]model.Video, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]model.Comment, int64, error)
	IDsByVideo(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error)
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) (int64, error)
}

type TweetStore interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Tweet, error)
}

type LikeStore interface {
	// Toggle 在存储层原子地切换 (actor, target) 的点赞边，返回切换后的状态
	Toggle(ctx context.Context, actorID uuid.UUID, target model.LikeTarget) (bool, error)
	CountByTargets(ctx context.Context, kind model.TargetKind, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	LikedTargets(ctx context.Context, actorID uuid.UUID, kind model.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	DeleteByTargets(ctx context.Context, kind model.TargetKind, ids []uuid.UUID) (int64, error)
	// ListLikedVideos 用户点赞的视频记录，新的在前；只包含已公开或本人上传的视频
	ListLikedVideos(ctx context.Context, actorID uuid.UUID, offset, limit int) ([]model.Like, int64, error)
}

type SubscriptionStore interface {
	// Toggle 在存储层原子地切换 (subscriber, channel) 的订阅边，返回切换后的状态
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	CountByChannels(ctx context.Context, channelIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, channelIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID, offset, limit int) ([]model.Subscription, int64, error)
	ListSubscriptions(ctx context.Context, subscriberID uuid.UUID, offset, limit int) ([]model.Subscription, int64, error)
}

type PlaylistStore interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Playlist, error)
	Update(ctx context.Context, id uuid.UUID, patch PlaylistPatch) (*model.Playlist, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// AddVideo 集合语义，已存在时返回 false
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	RemoveVideoEverywhere(ctx context.Context, videoID uuid.UUID) (int64, error)
}

// Store 实体存储句柄，显式注入到各个 service
type Store interface {
	Users() UserStore
	Videos() VideoStore
	Comments() CommentStore
	Tweets() TweetStore
	Likes() LikeStore
	Subscriptions() SubscriptionStore
	Playlists() PlaylistStore
	// Transaction 在同一事务中执行 fn，fn 返回错误时回滚
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
