package handler

import (
	"errors"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/config"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService *service.VideoService
	upload       config.UploadConfig
}

func NewVideoHandler(videoService *service.VideoService, upload config.UploadConfig) *VideoHandler {
	return &VideoHandler{videoService: videoService, upload: upload}
}

func (h *VideoHandler) videoRules() uploadRules {
	return uploadRules{label: "视频文件", formats: videoFormats, maxMB: h.upload.MaxVideoSizeMB}
}

func (h *VideoHandler) imageRules() uploadRules {
	return uploadRules{label: "封面图片", formats: imageFormats, maxMB: h.upload.MaxImageSizeMB}
}

// ListVideos 已发布视频列表
// @Summary 视频列表
// @Description 支持关键词检索、按作者筛选、按 createdAt/views/duration/title 排序
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param query query string false "检索关键词"
// @Param sortBy query string false "排序字段"
// @Param sortType query string false "asc 或 desc"
// @Param userId query string false "作者ID"
// @Success 200 {object} response.Response{data=pagination.Page[dto.VideoItem]} "获取成功"
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	var q dto.VideoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	page, err := h.videoService.ListVideos(c.Request.Context(), &q)
	if err != nil {
		handleError(c, "List videos", err)
		return
	}

	response.OK(c, "获取视频列表成功", page)
}

// GetVideo 视频详情，播放量 +1
// @Summary 视频详情
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoDetail} "获取成功"
// @Failure 400 {object} response.ErrorResponse "无效的视频ID"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{videoId} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	detail, err := h.videoService.GetVideoByID(c.Request.Context(), viewer(c), videoID)
	if err != nil {
		handleError(c, "Get video", err)
		return
	}

	response.OK(c, "获取视频详情成功", detail)
}

// PublishVideo 上传视频
// @Summary 发布视频
// @Description multipart 上传 videoFile 和 thumbnail，新视频默认不公开
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string true "描述"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "封面图片"
// @Success 201 {object} response.Response{data=dto.VideoDetail} "发布成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /videos [post]
func (h *VideoHandler) PublishVideo(c *gin.Context) {
	var req dto.VideoPublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	files := newUploads(&h.upload)
	defer files.cleanup()

	var err error
	if req.VideoFilePath, err = files.save(c, "videoFile", h.videoRules()); err != nil {
		h.uploadFailed(c, err)
		return
	}
	if req.ThumbnailPath, err = files.save(c, "thumbnail", h.imageRules()); err != nil {
		h.uploadFailed(c, err)
		return
	}

	detail, err := h.videoService.PublishVideo(c.Request.Context(), viewer(c), &req)
	if err != nil {
		handleError(c, "Publish video", err)
		return
	}

	response.Created(c, "视频发布成功", detail)
}

// UpdateVideo 修改标题、描述或封面
// @Summary 更新视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param title formData string false "标题"
// @Param description formData string false "描述"
// @Param thumbnail formData file false "封面图片"
// @Success 200 {object} response.Response{data=dto.VideoDetail} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /videos/{videoId} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	files := newUploads(&h.upload)
	defer files.cleanup()

	var err error
	if req.ThumbnailPath, err = files.save(c, "thumbnail", h.imageRules()); err != nil {
		h.uploadFailed(c, err)
		return
	}

	detail, err := h.videoService.UpdateVideo(c.Request.Context(), viewer(c), videoID, &req)
	if err != nil {
		handleError(c, "Update video", err)
		return
	}

	response.OK(c, "更新视频成功", detail)
}

// TogglePublishStatus 切换公开状态
// @Summary 切换公开状态
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.PublishStatus} "切换成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /videos/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublishStatus(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	status, err := h.videoService.TogglePublishStatus(c.Request.Context(), viewer(c), videoID)
	if err != nil {
		handleError(c, "Toggle publish status", err)
		return
	}

	response.OK(c, "切换公开状态成功", status)
}

// DeleteVideo 删除视频及其评论、点赞
// @Summary 删除视频
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	if err := h.videoService.DeleteVideo(c.Request.Context(), viewer(c), videoID); err != nil {
		handleError(c, "Delete video", err)
		return
	}

	response.OK(c, "删除视频成功", nil)
}

func (h *VideoHandler) uploadFailed(c *gin.Context, err error) {
	var ue *uploadError
	if errors.As(err, &ue) {
		response.BadRequest(c, ue.msg)
		return
	}
	logger.Error("Save upload failed", zap.Error(err))
	response.InternalError(c, "保存上传文件失败")
}
