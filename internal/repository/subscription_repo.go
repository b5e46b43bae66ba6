package repository

import (
	"context"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func deleteSubscription(tx *gorm.DB, subscriberID, channelID uuid.UUID) *gorm.DB {
	return tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
}

func insertSubscription(tx *gorm.DB, sub *model.Subscription) *gorm.DB {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sub)
}

// Toggle 切换订阅关系
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	subscribed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := deleteSubscription(tx, subscriberID, channelID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := insertSubscription(tx, sub).Error; err != nil {
			return err
		}
		subscribed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return subscribed, nil
}

// CountByChannels 批量统计订阅者数量
func (r *SubscriptionRepository) CountByChannels(ctx context.Context, channelIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(channelIDs))
	if len(channelIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ChannelID uuid.UUID
		Count     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Select("channel_id, COUNT(*) AS count").
		Where("channel_id IN ?", channelIDs).
		Group("channel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ChannelID] = row.Count
	}
	return counts, nil
}

// SubscribedChannels 批量检查 subscriber 是否订阅了这些频道
func (r *SubscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, channelIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(channelIDs))
	if len(channelIDs) == 0 || subscriberID == uuid.Nil {
		return result, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id IN ?", subscriberID, channelIDs).
		Pluck("channel_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// ListSubscribers 频道的订阅者，新的在前
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID, offset, limit int) ([]model.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelID)
	return paginate[model.Subscription](query, "created_at DESC, id DESC", offset, limit)
}

// ListSubscriptions 用户订阅的频道，新的在前
func (r *SubscriptionRepository) ListSubscriptions(ctx context.Context, subscriberID uuid.UUID, offset, limit int) ([]model.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID)
	return paginate[model.Subscription](query, "created_at DESC, id DESC", offset, limit)
}
