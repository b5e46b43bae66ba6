package repository

import (
	"context"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create 创建播放列表
func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return err
	}
	if playlist.VideoIDs == nil {
		playlist.VideoIDs = []uuid.UUID{}
	}
	return nil
}

// GetByID 获取播放列表（含视频 ID）
func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, err
	}
	members, err := r.videoIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	playlist.VideoIDs = members[id]
	if playlist.VideoIDs == nil {
		playlist.VideoIDs = []uuid.UUID{}
	}
	return &playlist, nil
}

// ListByOwner 用户全部播放列表
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").Find(&playlists).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(playlists))
	for i := range playlists {
		ids[i] = playlists[i].ID
	}
	members, err := r.videoIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range playlists {
		playlists[i].VideoIDs = members[playlists[i].ID]
		if playlists[i].VideoIDs == nil {
			playlists[i].VideoIDs = []uuid.UUID{}
		}
	}
	return playlists, nil
}

func (r *PlaylistRepository) videoIDs(ctx context.Context, playlistIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return result, nil
	}
	var rows []model.PlaylistVideo
	err := r.db.WithContext(ctx).Where("playlist_id IN ?", playlistIDs).
		Order("position ASC, created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PlaylistID] = append(result[row.PlaylistID], row.VideoID)
	}
	return result, nil
}

// Update 修改名称或描述
func (r *PlaylistRepository) Update(ctx context.Context, id uuid.UUID, patch PlaylistPatch) (*model.Playlist, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete 删除播放列表及其成员
func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Playlist{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	return deleted, err
}

// AddVideo 加入视频，已在列表中时不重复加入
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	var next int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0) + 1").Scan(&next).Error
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID, Position: next})
	return result.RowsAffected > 0, result.Error
}

// RemoveVideo 移出视频
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	return result.RowsAffected > 0, result.Error
}

// RemoveVideoEverywhere 从所有播放列表中移出视频
func (r *PlaylistRepository) RemoveVideoEverywhere(ctx context.Context, videoID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.PlaylistVideo{})
	return result.RowsAffected, result.Error
}
