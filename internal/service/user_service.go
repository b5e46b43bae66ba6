package service

import (
	"context"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	store   repository.Store
	compose composer
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store, compose: composer{store: store}}
}

// GetUser 用户信息
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserInfo, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr("get user", err, ErrUserNotFound)
	}
	info := toUserInfo(user)
	return &info, nil
}

// GetChannelProfile 频道主页信息，包含订阅数、订阅的频道数和 viewer 的订阅状态
func (s *UserService) GetChannelProfile(ctx context.Context, viewerID, channelID uuid.UUID) (*dto.ChannelProfile, error) {
	profile, err := s.compose.channel(ctx, viewerID, channelID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrChannelNotFound
	}

	_, subscribedTo, err := s.store.Subscriptions().ListSubscriptions(ctx, channelID, 0, 1)
	if err != nil {
		return nil, wrapStore("count subscribed channels", err)
	}
	profile.SubscribedToCount = subscribedTo
	return profile, nil
}
