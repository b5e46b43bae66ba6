package repository

import (
	"context"
	"strings"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var videoSortColumns = map[string]string{
	SortByCreatedAt: "created_at",
	SortByViews:     "views",
	SortByDuration:  "duration",
	SortByTitle:     "title",
}

// likeEscaper 转义 LIKE 通配符，用户输入按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchVideos 标题或简介包含关键词，不区分大小写
func searchVideos(query *gorm.DB, search string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(search) + "%"
	return query.Where(`title ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\'`, pattern, pattern)
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create 创建视频记录
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDs 批量获取视频
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Video, error) {
	if len(ids) == 0 {
		return []model.Video{}, nil
	}
	var videos []model.Video
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// Update 更新视频字段
func (r *VideoRepository) Update(ctx context.Context, id uuid.UUID, patch VideoPatch) (*model.Video, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Thumbnail != nil {
		updates["thumbnail_url"] = patch.Thumbnail.URL
		updates["thumbnail_asset_id"] = patch.Thumbnail.AssetID
	}
	if patch.IsPublished != nil {
		updates["is_published"] = *patch.IsPublished
	}
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete 删除视频记录
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Video{})
	return result.RowsAffected > 0, result.Error
}

// List 视频列表查询（分页、筛选、排序）
func (r *VideoRepository) List(ctx context.Context, filter VideoFilter, offset, limit int) ([]model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return []model.Video{}, 0, nil
		}
		query = query.Where("id IN ?", filter.IDs)
	} else if filter.Search != "" {
		query = searchVideos(query, filter.Search)
	}

	column, ok := videoSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := " DESC"
	if filter.Ascending {
		direction = " ASC"
	}

	return paginate[model.Video](query, column+direction+", id"+direction, offset, limit)
}

// ListByOwner 获取作者全部视频，新的在前
func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// LatestPublishedByOwners 每个作者最新发布的一条视频
func (r *VideoRepository) LatestPublishedByOwners(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]model.Video, error) {
	result := make(map[uuid.UUID]model.Video, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	var videos []model.Video
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (owner_id) * FROM videos
			WHERE owner_id IN ? AND is_published = TRUE
			ORDER BY owner_id, created_at DESC`, ownerIDs).
		Scan(&videos).Error
	if err != nil {
		return nil, err
	}
	for _, v := range videos {
		result[v.OwnerID] = v
	}
	return result, nil
}

// IncrementViews 播放量 +1，到达上限后不再增长
func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ? AND views < ?", id, int64(^uint64(0)>>1)).
		UpdateColumn("views", gorm.Expr("views + 1"))
	return result.Error
}
