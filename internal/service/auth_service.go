package service

import (
	"context"
	"errors"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/config"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = newError(ErrNotFound, "用户不存在")
	ErrUsernameExists    = newError(ErrValidationFailed, "用户名已存在")
	ErrInvalidCredential = newError(ErrForbidden, "用户名或密码错误")
)

type AuthService struct {
	store  repository.Store
	jwtCfg config.JWTConfig
}

func NewAuthService(store repository.Store, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{store: store, jwtCfg: jwtCfg}
}

// Register 用户注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	exists, err := s.store.Users().ExistsByUsername(ctx, username)
	if err != nil {
		return nil, wrapStore("check username", err)
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, wrapStore("hash password", err)
	}

	user := &model.User{
		Username: username,
		FullName: strings.TrimSpace(req.FullName),
		Avatar:   req.Avatar,
		Password: hashedPassword,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, wrapStore("create user", err)
	}

	info := toUserInfo(user)
	return &info, nil
}

// Login 用户登录，返回 JWT
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.store.Users().GetByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		return nil, lookupErr("get user", err, ErrInvalidCredential)
	}
	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	token, err := utils.GenerateToken(&s.jwtCfg, user.ID)
	if err != nil {
		return nil, wrapStore("sign token", err)
	}

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(s.jwtCfg.ExpireDuration().Seconds()),
		User:      toUserInfo(user),
	}, nil
}
