package service

import (
	"context"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrPlaylistNotFound     = newError(ErrNotFound, "播放列表不存在")
	ErrPlaylistNoPermission = newError(ErrForbidden, "没有权限操作该播放列表")
	ErrPlaylistFields       = newError(ErrValidationFailed, "名称和描述不能为空")
	ErrBlankPlaylistName    = newError(ErrValidationFailed, "名称不能为空")
)

type PlaylistService struct {
	store   repository.Store
	compose composer
}

func NewPlaylistService(store repository.Store) *PlaylistService {
	return &PlaylistService{store: store, compose: composer{store: store}}
}

// CreatePlaylist 创建播放列表
func (s *PlaylistService) CreatePlaylist(ctx context.Context, viewerID uuid.UUID, req *dto.PlaylistRequest) (*dto.PlaylistInfo, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return nil, ErrPlaylistFields
	}

	playlist := &model.Playlist{OwnerID: viewerID, Name: name, Description: description}
	if err := s.store.Playlists().Create(ctx, playlist); err != nil {
		return nil, wrapStore("create playlist", err)
	}
	return s.summary(ctx, playlist)
}

// GetUserPlaylists 用户的全部播放列表，统计全部成员视频
func (s *PlaylistService) GetUserPlaylists(ctx context.Context, ownerID uuid.UUID) ([]dto.PlaylistInfo, error) {
	if _, err := s.store.Users().GetByID(ctx, ownerID); err != nil {
		return nil, lookupErr("get user", err, ErrUserNotFound)
	}

	playlists, err := s.store.Playlists().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, wrapStore("list playlists", err)
	}

	var memberIDs []uuid.UUID
	for i := range playlists {
		memberIDs = append(memberIDs, playlists[i].VideoIDs...)
	}
	videos, err := s.videosByID(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.PlaylistInfo, len(playlists))
	for i := range playlists {
		infos[i] = toPlaylistInfo(&playlists[i], videos, false)
	}
	return infos, nil
}

// GetPlaylistByID 播放列表详情，只展示已发布的视频
func (s *PlaylistService) GetPlaylistByID(ctx context.Context, playlistID uuid.UUID) (*dto.PlaylistDetail, error) {
	playlist, err := s.store.Playlists().GetByID(ctx, playlistID)
	if err != nil {
		return nil, lookupErr("get playlist", err, ErrPlaylistNotFound)
	}

	videos, err := s.videosByID(ctx, playlist.VideoIDs)
	if err != nil {
		return nil, err
	}
	published := make([]model.Video, 0, len(playlist.VideoIDs))
	for _, id := range playlist.VideoIDs {
		if v, ok := videos[id]; ok && v.IsPublished {
			published = append(published, v)
		}
	}
	items, err := s.compose.videoItems(ctx, published)
	if err != nil {
		return nil, err
	}
	owners, err := s.compose.profiles(ctx, []uuid.UUID{playlist.OwnerID})
	if err != nil {
		return nil, err
	}

	return &dto.PlaylistDetail{
		PlaylistInfo: toPlaylistInfo(playlist, videos, true),
		Owner:        owners[playlist.OwnerID],
		Videos:       items,
	}, nil
}

// AddVideoToPlaylist 加入视频，重复加入不报错（仅作者本人）
func (s *PlaylistService) AddVideoToPlaylist(ctx context.Context, viewerID, playlistID, videoID uuid.UUID) (*dto.PlaylistInfo, error) {
	playlist, err := s.store.Playlists().GetByID(ctx, playlistID)
	if err != nil {
		return nil, lookupErr("get playlist", err, ErrPlaylistNotFound)
	}
	if _, err := s.store.Videos().GetByID(ctx, videoID); err != nil {
		return nil, lookupErr("get video", err, ErrVideoNotFound)
	}
	if err := requireOwner(playlist, viewerID, ErrPlaylistNoPermission); err != nil {
		return nil, err
	}

	if _, err := s.store.Playlists().AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, lookupErr("add video to playlist", err, ErrPlaylistNotFound)
	}
	return s.reload(ctx, playlistID)
}

// RemoveVideoFromPlaylist 移出视频（仅作者本人）
func (s *PlaylistService) RemoveVideoFromPlaylist(ctx context.Context, viewerID, playlistID, videoID uuid.UUID) (*dto.PlaylistInfo, error) {
	playlist, err := s.store.Playlists().GetByID(ctx, playlistID)
	if err != nil {
		return nil, lookupErr("get playlist", err, ErrPlaylistNotFound)
	}
	if err := requireOwner(playlist, viewerID, ErrPlaylistNoPermission); err != nil {
		return nil, err
	}

	if _, err := s.store.Playlists().RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, lookupErr("remove video from playlist", err, ErrPlaylistNotFound)
	}
	return s.reload(ctx, playlistID)
}

// UpdatePlaylist 修改名称或描述（仅作者本人）
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, viewerID, playlistID uuid.UUID, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	playlist, err := s.store.Playlists().GetByID(ctx, playlistID)
	if err != nil {
		return nil, lookupErr("get playlist", err, ErrPlaylistNotFound)
	}
	if err := requireOwner(playlist, viewerID, ErrPlaylistNoPermission); err != nil {
		return nil, err
	}

	var patch repository.PlaylistPatch
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrBlankPlaylistName
		}
		patch.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		patch.Description = &description
	}
	if patch.Name == nil && patch.Description == nil {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.store.Playlists().Update(ctx, playlistID, patch)
	if err != nil {
		return nil, lookupErr("update playlist", err, ErrPlaylistNotFound)
	}
	return s.summary(ctx, updated)
}

// DeletePlaylist 删除播放列表（仅作者本人）
func (s *PlaylistService) DeletePlaylist(ctx context.Context, viewerID, playlistID uuid.UUID) error {
	playlist, err := s.store.Playlists().GetByID(ctx, playlistID)
	if err != nil {
		return lookupErr("get playlist", err, ErrPlaylistNotFound)
	}
	if err := requireOwner(playlist, viewerID, ErrPlaylistNoPermission); err != nil {
		return err
	}

	if _, err := s.store.Playlists().Delete(ctx, playlistID); err != nil {
		return wrapStore("delete playlist", err)
	}
	return nil
}

func (s *PlaylistService) reload(ctx context.Context, playlistID uuid.UUID) (*dto.PlaylistInfo, error) {
	playlist, err := s.store.Playlists().GetByID(ctx, playlistID)
	if err != nil {
		return nil, lookupErr("get playlist", err, ErrPlaylistNotFound)
	}
	return s.summary(ctx, playlist)
}

func (s *PlaylistService) summary(ctx context.Context, playlist *model.Playlist) (*dto.PlaylistInfo, error) {
	videos, err := s.videosByID(ctx, playlist.VideoIDs)
	if err != nil {
		return nil, err
	}
	info := toPlaylistInfo(playlist, videos, false)
	return &info, nil
}

func (s *PlaylistService) videosByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Video, error) {
	videos, err := s.store.Videos().GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, wrapStore("load playlist videos", err)
	}
	result := make(map[uuid.UUID]model.Video, len(videos))
	for _, v := range videos {
		result[v.ID] = v
	}
	return result, nil
}

// toPlaylistInfo 统计成员视频数和播放量，已删除的视频不计入
func toPlaylistInfo(p *model.Playlist, videos map[uuid.UUID]model.Video, publishedOnly bool) dto.PlaylistInfo {
	info := dto.PlaylistInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, id := range p.VideoIDs {
		v, ok := videos[id]
		if !ok || (publishedOnly && !v.IsPublished) {
			continue
		}
		info.TotalVideos++
		info.TotalViews += v.Views
	}
	return info
}
