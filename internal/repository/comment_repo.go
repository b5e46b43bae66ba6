package repository

import (
	"context"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent 修改评论内容
func (r *CommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete 删除评论
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	return result.RowsAffected > 0, result.Error
}

// ListByVideo 视频评论列表，新的在前
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]model.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID)
	return paginate[model.Comment](query, "created_at DESC, id DESC", offset, limit)
}

// IDsByVideo 视频下全部评论 ID
func (r *CommentRepository) IDsByVideo(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("video_id = ?", videoID).Pluck("id", &ids).Error
	return ids, err
}

// DeleteByVideo 删除视频下全部评论
func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}
