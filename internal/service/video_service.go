package service

import (
	"context"
	"errors"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrVideoNotFound     = newError(ErrNotFound, "视频不存在")
	ErrVideoNoPermission = newError(ErrForbidden, "没有权限操作该视频")
	ErrTitleRequired     = newError(ErrValidationFailed, "标题和描述不能为空")
	ErrVideoFileRequired = newError(ErrValidationFailed, "请上传视频文件")
	ErrThumbnailRequired = newError(ErrValidationFailed, "请上传封面图片")
	ErrBlankTitle        = newError(ErrValidationFailed, "标题不能为空")
)

// 全文检索最多取回的命中数，再交给数据库分页
const maxSearchHits = 1000

const maxViews = int64(^uint64(0) >> 1)

var videoSortKeys = map[string]string{
	"createdAt": repository.SortByCreatedAt,
	"views":     repository.SortByViews,
	"duration":  repository.SortByDuration,
	"title":     repository.SortByTitle,
}

type VideoService struct {
	store    repository.Store
	compose  composer
	blobs    BlobStore
	searcher VideoSearcher
	indexer  VideoIndexer
	prober   DurationProber
	counter  *ViewCounter
}

// NewVideoService searcher、indexer、prober 可以为 nil
func NewVideoService(store repository.Store, counter *ViewCounter, blobs BlobStore, searcher VideoSearcher, indexer VideoIndexer, prober DurationProber) *VideoService {
	if indexer == nil {
		indexer = nopIndexer{}
	}
	if prober == nil {
		prober = nopProber{}
	}
	return &VideoService{
		store:    store,
		compose:  composer{store: store},
		blobs:    blobs,
		searcher: searcher,
		indexer:  indexer,
		prober:   prober,
		counter:  counter,
	}
}

// ListVideos 已发布视频列表，支持全文检索、作者筛选和排序
func (s *VideoService) ListVideos(ctx context.Context, q *dto.VideoListQuery) (*pagination.Page[dto.VideoItem], error) {
	params := pagination.Parse(q.Page, q.Limit)

	filter := repository.VideoFilter{PublishedOnly: true}
	if q.UserID != "" {
		ownerID, err := ParseID(q.UserID, ErrInvalidUserID)
		if err != nil {
			return nil, err
		}
		filter.OwnerID = &ownerID
	}
	if key, ok := videoSortKeys[q.SortBy]; ok {
		filter.SortBy = key
	} else {
		filter.SortBy = repository.SortByCreatedAt
	}
	filter.Ascending = strings.EqualFold(q.SortType, "asc")

	if query := strings.TrimSpace(q.Query); query != "" {
		filter.Search = query
		if s.searcher != nil {
			ids, err := s.searcher.SearchVideoIDs(ctx, query, maxSearchHits)
			if err != nil {
				logger.Warn("Video search unavailable, falling back to database match",
					zap.String("query", query), zap.Error(err))
			} else {
				filter.IDs = ids
				if filter.IDs == nil {
					filter.IDs = []uuid.UUID{}
				}
			}
		}
	}

	videos, total, err := s.store.Videos().List(ctx, filter, params.Offset(), params.Limit)
	if err != nil {
		return nil, wrapStore("list videos", err)
	}
	items, err := s.compose.videoItems(ctx, videos)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(items, total, params), nil
}

// GetVideoByID 视频详情，每次成功读取播放量 +1
func (s *VideoService) GetVideoByID(ctx context.Context, viewerID, videoID uuid.UUID) (*dto.VideoDetail, error) {
	video, err := s.store.Videos().GetByID(ctx, videoID)
	if err != nil {
		return nil, lookupErr("get video", err, ErrVideoNotFound)
	}

	detail, err := s.compose.videoDetail(ctx, viewerID, video)
	if err != nil {
		return nil, err
	}

	s.counter.Increment(video.ID)
	if detail.Views < maxViews {
		detail.Views++
	}
	return detail, nil
}

// PublishVideo 上传媒体文件并创建视频，新视频默认不公开
func (s *VideoService) PublishVideo(ctx context.Context, viewerID uuid.UUID, req *dto.VideoPublishRequest) (*dto.VideoDetail, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, ErrTitleRequired
	}
	if req.VideoFilePath == "" {
		return nil, ErrVideoFileRequired
	}
	if req.ThumbnailPath == "" {
		return nil, ErrThumbnailRequired
	}

	duration, err := s.prober.ProbeDuration(ctx, req.VideoFilePath)
	if err != nil {
		logger.Warn("Probe video duration failed", zap.String("path", req.VideoFilePath), zap.Error(err))
		duration = 0
	}

	videoFile, err := s.blobs.Store(ctx, req.VideoFilePath, BlobVideo)
	if err != nil {
		return nil, wrapStore("store video file", err)
	}
	thumbnail, err := s.blobs.Store(ctx, req.ThumbnailPath, BlobImage)
	if err != nil {
		s.deleteAsset(videoFile.AssetID, BlobVideo)
		return nil, wrapStore("store thumbnail", err)
	}

	video := &model.Video{
		OwnerID:     viewerID,
		Title:       title,
		Description: description,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Duration:    duration,
		IsPublished: false,
	}
	if err := s.store.Videos().Create(ctx, video); err != nil {
		s.deleteAsset(videoFile.AssetID, BlobVideo)
		s.deleteAsset(thumbnail.AssetID, BlobImage)
		return nil, wrapStore("create video", err)
	}

	s.index(ctx, video)
	return s.compose.videoDetail(ctx, viewerID, video)
}

// UpdateVideo 修改标题、描述或封面（仅作者本人）
func (s *VideoService) UpdateVideo(ctx context.Context, viewerID, videoID uuid.UUID, req *dto.VideoUpdateRequest) (*dto.VideoDetail, error) {
	video, err := s.store.Videos().GetByID(ctx, videoID)
	if err != nil {
		return nil, lookupErr("get video", err, ErrVideoNotFound)
	}
	if err := requireOwner(video, viewerID, ErrVideoNoPermission); err != nil {
		return nil, err
	}

	var patch repository.VideoPatch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrBlankTitle
		}
		patch.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		patch.Description = &description
	}

	oldThumbnail := video.Thumbnail
	if req.ThumbnailPath != "" {
		thumbnail, err := s.blobs.Store(ctx, req.ThumbnailPath, BlobImage)
		if err != nil {
			return nil, wrapStore("store thumbnail", err)
		}
		patch.Thumbnail = &thumbnail
	}
	if patch.Title == nil && patch.Description == nil && patch.Thumbnail == nil {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.store.Videos().Update(ctx, videoID, patch)
	if err != nil {
		if patch.Thumbnail != nil {
			s.deleteAsset(patch.Thumbnail.AssetID, BlobImage)
		}
		return nil, lookupErr("update video", err, ErrVideoNotFound)
	}
	if patch.Thumbnail != nil && oldThumbnail.AssetID != "" {
		s.deleteAsset(oldThumbnail.AssetID, BlobImage)
	}

	s.index(ctx, updated)
	return s.compose.videoDetail(ctx, viewerID, updated)
}

// TogglePublishStatus 切换公开状态（仅作者本人）
func (s *VideoService) TogglePublishStatus(ctx context.Context, viewerID, videoID uuid.UUID) (*dto.PublishStatus, error) {
	video, err := s.store.Videos().GetByID(ctx, videoID)
	if err != nil {
		return nil, lookupErr("get video", err, ErrVideoNotFound)
	}
	if err := requireOwner(video, viewerID, ErrVideoNoPermission); err != nil {
		return nil, err
	}

	published := !video.IsPublished
	updated, err := s.store.Videos().Update(ctx, videoID, repository.VideoPatch{IsPublished: &published})
	if err != nil {
		return nil, lookupErr("toggle publish status", err, ErrVideoNotFound)
	}

	s.index(ctx, updated)
	return &dto.PublishStatus{IsPublished: updated.IsPublished}, nil
}

// DeleteVideo 删除视频及其评论、点赞和播放列表引用（仅作者本人）
func (s *VideoService) DeleteVideo(ctx context.Context, viewerID, videoID uuid.UUID) error {
	video, err := s.store.Videos().GetByID(ctx, videoID)
	if err != nil {
		return lookupErr("get video", err, ErrVideoNotFound)
	}
	if err := requireOwner(video, viewerID, ErrVideoNoPermission); err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		commentIDs, err := tx.Comments().IDsByVideo(ctx, videoID)
		if err != nil {
			return err
		}
		if _, err := tx.Likes().DeleteByTargets(ctx, model.TargetComment, commentIDs); err != nil {
			return err
		}
		if _, err := tx.Comments().DeleteByVideo(ctx, videoID); err != nil {
			return err
		}
		if _, err := tx.Likes().DeleteByTargets(ctx, model.TargetVideo, []uuid.UUID{videoID}); err != nil {
			return err
		}
		if _, err := tx.Playlists().RemoveVideoEverywhere(ctx, videoID); err != nil {
			return err
		}
		deleted, err := tx.Videos().Delete(ctx, videoID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrVideoNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return err
		}
		return wrapStore("delete video", err)
	}

	s.deleteAsset(video.VideoFile.AssetID, BlobVideo)
	s.deleteAsset(video.Thumbnail.AssetID, BlobImage)
	if err := s.indexer.RemoveVideo(ctx, videoID); err != nil {
		logger.Warn("Remove video from index failed", zap.String("video_id", videoID.String()), zap.Error(err))
	}
	return nil
}

// deleteAsset 清理媒体文件，失败只记录日志
func (s *VideoService) deleteAsset(assetID string, kind BlobKind) {
	if assetID == "" {
		return
	}
	if err := s.blobs.Delete(context.Background(), assetID, kind); err != nil {
		logger.Warn("Delete blob asset failed",
			zap.String("asset_id", assetID), zap.String("kind", string(kind)), zap.Error(err))
	}
}

func (s *VideoService) index(ctx context.Context, video *model.Video) {
	if err := s.indexer.IndexVideo(ctx, video); err != nil {
		logger.Warn("Index video failed", zap.String("video_id", video.ID.String()), zap.Error(err))
	}
}
