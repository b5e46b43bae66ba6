package repository

import (
	"context"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Tweet, error) {
	result := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TweetRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Tweet{})
	return result.RowsAffected > 0, result.Error
}

// ListByOwner 用户全部动态，新的在前
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}
