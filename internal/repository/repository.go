package repository

import (
	"context"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

// GormStore 基于 gorm 的 Store 实现
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserStore                 { return NewUserRepository(s.db) }
func (s *GormStore) Videos() VideoStore               { return NewVideoRepository(s.db) }
func (s *GormStore) Comments() CommentStore           { return NewCommentRepository(s.db) }
func (s *GormStore) Tweets() TweetStore               { return NewTweetRepository(s.db) }
func (s *GormStore) Likes() LikeStore                 { return NewLikeRepository(s.db) }
func (s *GormStore) Subscriptions() SubscriptionStore { return NewSubscriptionRepository(s.db) }
func (s *GormStore) Playlists() PlaylistStore         { return NewPlaylistRepository(s.db) }

// Transaction 开启数据库事务，fn 内的所有操作共用同一个 tx
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// Models 需要自动迁移的模型
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
	}
}

// paginate 先统计总数再取当前页
func paginate[T any](query *gorm.DB, order string, offset, limit int) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]T, 0, limit)
	if total == 0 || int64(offset) >= total {
		return rows, total, nil
	}
	if err := query.Order(order).Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
