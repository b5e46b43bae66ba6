package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// CreatePlaylist 创建播放列表
// @Summary 创建播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlaylistRequest true "名称和描述"
// @Success 201 {object} response.Response{data=dto.PlaylistInfo} "创建成功"
// @Failure 400 {object} response.ErrorResponse "名称和描述不能为空"
// @Router /playlists [post]
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	var req dto.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	playlist, err := h.playlistService.CreatePlaylist(c.Request.Context(), viewer(c), &req)
	if err != nil {
		handleError(c, "Create playlist", err)
		return
	}

	response.Created(c, "创建播放列表成功", playlist)
}

// GetUserPlaylists 用户的播放列表
// @Summary 用户播放列表
// @Tags 播放列表
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.PlaylistInfo} "获取成功"
// @Router /playlists/user/{userId} [get]
func (h *PlaylistHandler) GetUserPlaylists(c *gin.Context) {
	ownerID, ok := pathID(c, "userId", service.ErrInvalidUserID)
	if !ok {
		return
	}

	playlists, err := h.playlistService.GetUserPlaylists(c.Request.Context(), ownerID)
	if err != nil {
		handleError(c, "Get user playlists", err)
		return
	}

	response.OK(c, "获取播放列表成功", playlists)
}

// GetPlaylist 播放列表详情，只包含已公开的视频
// @Summary 播放列表详情
// @Tags 播放列表
// @Produce json
// @Param playlistId path string true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "播放列表不存在"
// @Router /playlists/{playlistId} [get]
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return
	}

	detail, err := h.playlistService.GetPlaylistByID(c.Request.Context(), playlistID)
	if err != nil {
		handleError(c, "Get playlist", err)
		return
	}

	response.OK(c, "获取播放列表成功", detail)
}

// AddVideo 加入视频，已在列表中时不重复添加
// @Summary 添加视频到播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param playlistId path string true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo} "添加成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /playlists/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return
	}

	playlist, err := h.playlistService.AddVideoToPlaylist(c.Request.Context(), viewer(c), playlistID, videoID)
	if err != nil {
		handleError(c, "Add video to playlist", err)
		return
	}

	response.OK(c, "添加视频成功", playlist)
}

// RemoveVideo 移出视频
// @Summary 从播放列表移除视频
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param playlistId path string true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo} "移除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /playlists/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return
	}

	playlist, err := h.playlistService.RemoveVideoFromPlaylist(c.Request.Context(), viewer(c), playlistID, videoID)
	if err != nil {
		handleError(c, "Remove video from playlist", err)
		return
	}

	response.OK(c, "移除视频成功", playlist)
}

// UpdatePlaylist 修改名称或描述
// @Summary 更新播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "播放列表ID"
// @Param request body dto.PlaylistUpdateRequest true "名称和描述"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /playlists/{playlistId} [patch]
func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	playlist, err := h.playlistService.UpdatePlaylist(c.Request.Context(), viewer(c), playlistID, &req)
	if err != nil {
		handleError(c, "Update playlist", err)
		return
	}

	response.OK(c, "更新播放列表成功", playlist)
}

// DeletePlaylist 删除播放列表
// @Summary 删除播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "播放列表ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /playlists/{playlistId} [delete]
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return
	}

	if err := h.playlistService.DeletePlaylist(c.Request.Context(), viewer(c), playlistID); err != nil {
		handleError(c, "Delete playlist", err)
		return
	}

	response.OK(c, "删除播放列表成功", nil)
}
