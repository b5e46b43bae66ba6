package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// GetVideoComments 视频评论列表，最新的在前
// @Summary 评论列表
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=pagination.Page[dto.CommentInfo]} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /comments/{videoId} [get]
func (h *CommentHandler) GetVideoComments(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	page, err := h.commentService.GetVideoComments(c.Request.Context(), viewer(c), videoID, parsePagination(c))
	if err != nil {
		handleError(c, "Get video comments", err)
		return
	}

	response.OK(c, "获取评论成功", page)
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param request body dto.ContentRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo} "评论成功"
// @Failure 400 {object} response.ErrorResponse "内容不能为空"
// @Router /comments/{videoId} [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), viewer(c), videoID, req.Content)
	if err != nil {
		handleError(c, "Add comment", err)
		return
	}

	response.Created(c, "评论成功", comment)
}

// UpdateComment 修改评论
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "评论ID"
// @Param request body dto.ContentRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentInfo} "修改成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /comments/c/{commentId} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := pathID(c, "commentId", service.ErrInvalidCommentID)
	if !ok {
		return
	}

	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), viewer(c), commentID, req.Content)
	if err != nil {
		handleError(c, "Update comment", err)
		return
	}

	response.OK(c, "修改评论成功", comment)
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "评论ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /comments/c/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c, "commentId", service.ErrInvalidCommentID)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), viewer(c), commentID); err != nil {
		handleError(c, "Delete comment", err)
		return
	}

	response.OK(c, "删除评论成功", nil)
}
