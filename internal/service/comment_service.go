package service

import (
	"context"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/pagination"

	"github.com/google/uuid"
)

var (
	ErrCommentNotFound     = newError(ErrNotFound, "评论不存在")
	ErrCommentNoPermission = newError(ErrForbidden, "没有权限操作该评论")
)

type CommentService struct {
	store   repository.Store
	compose composer
}

func NewCommentService(store repository.Store) *CommentService {
	return &CommentService{store: store, compose: composer{store: store}}
}

// GetVideoComments 视频评论列表，新的在前
func (s *CommentService) GetVideoComments(ctx context.Context, viewerID, videoID uuid.UUID, params pagination.Params) (*pagination.Page[dto.CommentInfo], error) {
	if _, err := s.store.Videos().GetByID(ctx, videoID); err != nil {
		return nil, lookupErr("get video", err, ErrVideoNotFound)
	}

	comments, total, err := s.store.Comments().ListByVideo(ctx, videoID, params.Offset(), params.Limit)
	if err != nil {
		return nil, wrapStore("list comments", err)
	}
	rows, err := s.compose.comments(ctx, viewerID, comments)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, total, params), nil
}

// AddComment 发表评论
func (s *CommentService) AddComment(ctx context.Context, viewerID, videoID uuid.UUID, content string) (*dto.CommentInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if _, err := s.store.Videos().GetByID(ctx, videoID); err != nil {
		return nil, lookupErr("get video", err, ErrVideoNotFound)
	}

	comment := &model.Comment{VideoID: videoID, OwnerID: viewerID, Content: content}
	if err := s.store.Comments().Create(ctx, comment); err != nil {
		return nil, wrapStore("create comment", err)
	}
	return s.one(ctx, viewerID, comment)
}

// UpdateComment 修改评论（仅作者本人）
func (s *CommentService) UpdateComment(ctx context.Context, viewerID, commentID uuid.UUID, content string) (*dto.CommentInfo, error) {
	comment, err := s.store.Comments().GetByID(ctx, commentID)
	if err != nil {
		return nil, lookupErr("get comment", err, ErrCommentNotFound)
	}
	if err := requireOwner(comment, viewerID, ErrCommentNoPermission); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	updated, err := s.store.Comments().UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, lookupErr("update comment", err, ErrCommentNotFound)
	}
	return s.one(ctx, viewerID, updated)
}

// DeleteComment 删除评论及其点赞（仅作者本人）
func (s *CommentService) DeleteComment(ctx context.Context, viewerID, commentID uuid.UUID) error {
	comment, err := s.store.Comments().GetByID(ctx, commentID)
	if err != nil {
		return lookupErr("get comment", err, ErrCommentNotFound)
	}
	if err := requireOwner(comment, viewerID, ErrCommentNoPermission); err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Likes().DeleteByTargets(ctx, model.TargetComment, []uuid.UUID{commentID}); err != nil {
			return err
		}
		_, err := tx.Comments().Delete(ctx, commentID)
		return err
	})
	return wrapStore("delete comment", err)
}

func (s *CommentService) one(ctx context.Context, viewerID uuid.UUID, comment *model.Comment) (*dto.CommentInfo, error) {
	rows, err := s.compose.comments(ctx, viewerID, []model.Comment{*comment})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}
