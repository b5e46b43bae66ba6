package handler

import (
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser 用户基本信息
// @Summary 获取用户信息
// @Tags 用户
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 400 {object} response.ErrorResponse "无效的用户ID"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "id", service.ErrInvalidUserID)
	if !ok {
		return
	}

	userInfo, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "Get user", err)
		return
	}

	response.OK(c, "获取用户信息成功", userInfo)
}

// GetChannelProfile 频道主页信息（订阅数和当前用户的订阅状态）
// @Summary 频道主页
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path string true "频道ID"
// @Success 200 {object} response.Response{data=dto.ChannelProfile} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /users/{id}/channel [get]
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	channelID, ok := pathID(c, "id", service.ErrInvalidChannelID)
	if !ok {
		return
	}

	profile, err := h.userService.GetChannelProfile(c.Request.Context(), viewer(c), channelID)
	if err != nil {
		handleError(c, "Get channel profile", err)
		return
	}

	response.OK(c, "获取频道信息成功", profile)
}
