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
	ErrTweetNotFound     = newError(ErrNotFound, "动态不存在")
	ErrTweetNoPermission = newError(ErrForbidden, "没有权限操作该动态")
)

type TweetService struct {
	store   repository.Store
	compose composer
}

func NewTweetService(store repository.Store) *TweetService {
	return &TweetService{store: store, compose: composer{store: store}}
}

// CreateTweet 发布动态
func (s *TweetService) CreateTweet(ctx context.Context, viewerID uuid.UUID, content string) (*dto.TweetInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	tweet := &model.Tweet{OwnerID: viewerID, Content: content}
	if err := s.store.Tweets().Create(ctx, tweet); err != nil {
		return nil, wrapStore("create tweet", err)
	}
	return s.one(ctx, viewerID, tweet)
}

// GetUserTweets 用户的全部动态，新的在前
func (s *TweetService) GetUserTweets(ctx context.Context, viewerID, ownerID uuid.UUID) ([]dto.TweetInfo, error) {
	if _, err := s.store.Users().GetByID(ctx, ownerID); err != nil {
		return nil, lookupErr("get user", err, ErrUserNotFound)
	}

	tweets, err := s.store.Tweets().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, wrapStore("list tweets", err)
	}
	return s.compose.tweets(ctx, viewerID, tweets)
}

// UpdateTweet 修改动态（仅作者本人）
func (s *TweetService) UpdateTweet(ctx context.Context, viewerID, tweetID uuid.UUID, content string) (*dto.TweetInfo, error) {
	tweet, err := s.store.Tweets().GetByID(ctx, tweetID)
	if err != nil {
		return nil, lookupErr("get tweet", err, ErrTweetNotFound)
	}
	if err := requireOwner(tweet, viewerID, ErrTweetNoPermission); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	updated, err := s.store.Tweets().UpdateContent(ctx, tweetID, content)
	if err != nil {
		return nil, lookupErr("update tweet", err, ErrTweetNotFound)
	}
	return s.one(ctx, viewerID, updated)
}

// DeleteTweet 删除动态及其点赞（仅作者本人）
func (s *TweetService) DeleteTweet(ctx context.Context, viewerID, tweetID uuid.UUID) error {
	tweet, err := s.store.Tweets().GetByID(ctx, tweetID)
	if err != nil {
		return lookupErr("get tweet", err, ErrTweetNotFound)
	}
	if err := requireOwner(tweet, viewerID, ErrTweetNoPermission); err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Likes().DeleteByTargets(ctx, model.TargetTweet, []uuid.UUID{tweetID}); err != nil {
			return err
		}
		_, err := tx.Tweets().Delete(ctx, tweetID)
		return err
	})
	return wrapStore("delete tweet", err)
}

func (s *TweetService) one(ctx context.Context, viewerID uuid.UUID, tweet *model.Tweet) (*dto.TweetInfo, error) {
	rows, err := s.compose.tweets(ctx, viewerID, []model.Tweet{*tweet})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}
