package handler

import (
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// ToggleSubscription 订阅或取消订阅频道
// @Summary 切换订阅
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "频道ID"
// @Success 200 {object} response.Response{data=dto.SubscriptionStatus} "操作成功"
// @Failure 400 {object} response.ErrorResponse "不能订阅自己"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /subscriptions/c/{channelId} [post]
func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	channelID, ok := pathID(c, "channelId", service.ErrInvalidChannelID)
	if !ok {
		return
	}

	status, err := h.subscriptionService.ToggleSubscription(c.Request.Context(), viewer(c), channelID)
	if err != nil {
		handleError(c, "Toggle subscription", err)
		return
	}

	message := "已取消订阅"
	if status.IsSubscribed {
		message = "订阅成功"
	}
	response.OK(c, message, status)
}

// GetChannelSubscribers 频道的订阅者列表
// @Summary 订阅者列表
// @Description 每个订阅者带订阅数，以及频道是否回订了该订阅者
// @Tags 订阅
// @Produce json
// @Param channelId path string true "频道ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=pagination.Page[dto.SubscriberInfo]} "获取成功"
// @Router /subscriptions/c/{channelId} [get]
func (h *SubscriptionHandler) GetChannelSubscribers(c *gin.Context) {
	channelID, ok := pathID(c, "channelId", service.ErrInvalidChannelID)
	if !ok {
		return
	}

	page, err := h.subscriptionService.GetChannelSubscribers(c.Request.Context(), channelID, parsePagination(c))
	if err != nil {
		handleError(c, "Get channel subscribers", err)
		return
	}

	response.OK(c, "获取订阅者成功", page)
}

// GetSubscribedChannels 用户订阅的频道列表
// @Summary 已订阅频道
// @Description 每个频道带最新发布的一个视频
// @Tags 订阅
// @Produce json
// @Param subscriberId path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=pagination.Page[dto.SubscribedChannel]} "获取成功"
// @Router /subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	subscriberID, ok := pathID(c, "subscriberId", service.ErrInvalidUserID)
	if !ok {
		return
	}

	page, err := h.subscriptionService.GetSubscribedChannels(c.Request.Context(), subscriberID, parsePagination(c))
	if err != nil {
		handleError(c, "Get subscribed channels", err)
		return
	}

	response.OK(c, "获取订阅频道成功", page)
}
