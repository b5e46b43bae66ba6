package service

import (
	"context"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/pagination"

	"github.com/google/uuid"
)

type LikeService struct {
	store   repository.Store
	compose composer
}

func NewLikeService(store repository.Store) *LikeService {
	return &LikeService{store: store, compose: composer{store: store}}
}

// ToggleVideoLike 点赞或取消点赞视频
func (s *LikeService) ToggleVideoLike(ctx context.Context, viewerID, videoID uuid.UUID) (*dto.LikeStatus, error) {
	if _, err := s.store.Videos().GetByID(ctx, videoID); err != nil {
		return nil, lookupErr("get video", err, ErrVideoNotFound)
	}
	return s.toggle(ctx, viewerID, model.VideoTarget(videoID))
}

// ToggleCommentLike 点赞或取消点赞评论
func (s *LikeService) ToggleCommentLike(ctx context.Context, viewerID, commentID uuid.UUID) (*dto.LikeStatus, error) {
	if _, err := s.store.Comments().GetByID(ctx, commentID); err != nil {
		return nil, lookupErr("get comment", err, ErrCommentNotFound)
	}
	return s.toggle(ctx, viewerID, model.CommentTarget(commentID))
}

// ToggleTweetLike 点赞或取消点赞动态
func (s *LikeService) ToggleTweetLike(ctx context.Context, viewerID, tweetID uuid.UUID) (*dto.LikeStatus, error) {
	if _, err := s.store.Tweets().GetByID(ctx, tweetID); err != nil {
		return nil, lookupErr("get tweet", err, ErrTweetNotFound)
	}
	return s.toggle(ctx, viewerID, model.TweetTarget(tweetID))
}

func (s *LikeService) toggle(ctx context.Context, viewerID uuid.UUID, target model.LikeTarget) (*dto.LikeStatus, error) {
	if viewerID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	liked, err := s.store.Likes().Toggle(ctx, viewerID, target)
	if err != nil {
		return nil, wrapStore("toggle like", err)
	}
	counts, err := s.store.Likes().CountByTargets(ctx, target.Kind, []uuid.UUID{target.ID})
	if err != nil {
		return nil, wrapStore("count likes", err)
	}
	return &dto.LikeStatus{IsLiked: liked, LikesCount: counts[target.ID]}, nil
}

// GetLikedVideos 当前用户点赞过的视频，最近点赞的在前
func (s *LikeService) GetLikedVideos(ctx context.Context, viewerID uuid.UUID, params pagination.Params) (*pagination.Page[dto.LikedVideo], error) {
	likes, total, err := s.store.Likes().ListLikedVideos(ctx, viewerID, params.Offset(), params.Limit)
	if err != nil {
		return nil, wrapStore("list liked videos", err)
	}

	ids := make([]uuid.UUID, len(likes))
	for i := range likes {
		ids[i] = likes[i].TargetID
	}
	videos, err := s.store.Videos().GetByIDs(ctx, ids)
	if err != nil {
		return nil, wrapStore("load liked videos", err)
	}
	items, err := s.compose.videoItems(ctx, videos)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]int, len(videos))
	for i := range videos {
		byID[videos[i].ID] = i
	}

	rows := make([]dto.LikedVideo, 0, len(likes))
	for _, like := range likes {
		// 分页查询之后被删除的视频
		i, ok := byID[like.TargetID]
		if !ok {
			continue
		}
		rows = append(rows, dto.LikedVideo{VideoItem: items[i], LikedAt: like.CreatedAt})
	}
	return pagination.NewPage(rows, total, params), nil
}
