package handler

import (
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetChannelStats 当前用户频道的统计数据
// @Summary 频道统计
// @Tags 控制台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.ChannelStats} "获取成功"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetChannelStats(c *gin.Context) {
	stats, err := h.dashboardService.GetChannelStats(c.Request.Context(), viewer(c))
	if err != nil {
		handleError(c, "Get channel stats", err)
		return
	}

	response.OK(c, "获取频道统计成功", stats)
}

// GetChannelVideos 当前用户的全部视频（含未公开）
// @Summary 我的视频
// @Tags 控制台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.VideoItem} "获取成功"
// @Router /dashboard/videos [get]
func (h *DashboardHandler) GetChannelVideos(c *gin.Context) {
	videos, err := h.dashboardService.GetChannelVideos(c.Request.Context(), viewer(c))
	if err != nil {
		handleError(c, "Get channel videos", err)
		return
	}

	response.OK(c, "获取频道视频成功", videos)
}
