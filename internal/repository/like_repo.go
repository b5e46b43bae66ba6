package repository

import (
	"context"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func deleteLike(tx *gorm.DB, actorID uuid.UUID, target model.LikeTarget) *gorm.DB {
	return tx.Where("liked_by = ? AND target_kind = ? AND target_id = ?", actorID, target.Kind, target.ID).
		Delete(&model.Like{})
}

// insertLike 唯一索引冲突时不报错，RowsAffected 为 0
func insertLike(tx *gorm.DB, like *model.Like) *gorm.DB {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
}

// Toggle 存在则删除，不存在则插入；并发插入由唯一索引兜底
func (r *LikeRepository) Toggle(ctx context.Context, actorID uuid.UUID, target model.LikeTarget) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := deleteLike(tx, actorID, target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := &model.Like{LikedBy: actorID, TargetKind: target.Kind, TargetID: target.ID}
		if err := insertLike(tx, like).Error; err != nil {
			return err
		}
		// 并发请求抢先插入时 RowsAffected 为 0，边同样存在
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// CountByTargets 批量统计点赞数，没有点赞的对象不出现在结果中
func (r *LikeRepository) CountByTargets(ctx context.Context, kind model.TargetKind, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	type row struct {
		TargetID uuid.UUID
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Select("target_id, COUNT(*) AS count").
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Count
	}
	return counts, nil
}

// LikedTargets 批量检查 actor 是否点赞
func (r *LikeRepository) LikedTargets(ctx context.Context, actorID uuid.UUID, kind model.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 || actorID == uuid.Nil {
		return result, nil
	}

	var liked []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("liked_by = ? AND target_kind = ? AND target_id IN ?", actorID, kind, ids).
		Pluck("target_id", &liked).Error
	if err != nil {
		return nil, err
	}
	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}

// DeleteByTargets 删除指向这些对象的全部点赞
func (r *LikeRepository) DeleteByTargets(ctx context.Context, kind model.TargetKind, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

// likedVideosQuery 点赞记录关联视频，过滤掉对 actor 不可见的视频
func likedVideosQuery(db *gorm.DB, actorID uuid.UUID) *gorm.DB {
	return db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.liked_by = ? AND likes.target_kind = ?", actorID, model.TargetVideo).
		Where("videos.is_published = ? OR videos.owner_id = ?", true, actorID)
}

// ListLikedVideos 用户点赞的视频记录，新的在前
func (r *LikeRepository) ListLikedVideos(ctx context.Context, actorID uuid.UUID, offset, limit int) ([]model.Like, int64, error) {
	query := likedVideosQuery(r.db.WithContext(ctx), actorID)
	return paginate[model.Like](query, "likes.created_at DESC, likes.id DESC", offset, limit)
}
