package handler

import (
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideoLike 点赞或取消点赞视频
// @Summary 切换视频点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "操作成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /likes/toggle/v/{videoId} [post]
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	status, err := h.likeService.ToggleVideoLike(c.Request.Context(), viewer(c), videoID)
	if err != nil {
		handleError(c, "Toggle video like", err)
		return
	}

	response.OK(c, likeMessage(status.IsLiked), status)
}

// ToggleCommentLike 点赞或取消点赞评论
// @Summary 切换评论点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "评论ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "操作成功"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /likes/toggle/c/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := pathID(c, "commentId", service.ErrInvalidCommentID)
	if !ok {
		return
	}

	status, err := h.likeService.ToggleCommentLike(c.Request.Context(), viewer(c), commentID)
	if err != nil {
		handleError(c, "Toggle comment like", err)
		return
	}

	response.OK(c, likeMessage(status.IsLiked), status)
}

// ToggleTweetLike 点赞或取消点赞动态
// @Summary 切换动态点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param tweetId path string true "动态ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "操作成功"
// @Failure 404 {object} response.ErrorResponse "动态不存在"
// @Router /likes/toggle/t/{tweetId} [post]
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId", service.ErrInvalidTweetID)
	if !ok {
		return
	}

	status, err := h.likeService.ToggleTweetLike(c.Request.Context(), viewer(c), tweetID)
	if err != nil {
		handleError(c, "Toggle tweet like", err)
		return
	}

	response.OK(c, likeMessage(status.IsLiked), status)
}

// GetLikedVideos 当前用户点赞过的视频
// @Summary 我点赞的视频
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=pagination.Page[dto.LikedVideo]} "获取成功"
// @Router /likes/videos [get]
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	page, err := h.likeService.GetLikedVideos(c.Request.Context(), viewer(c), parsePagination(c))
	if err != nil {
		handleError(c, "Get liked videos", err)
		return
	}

	response.OK(c, "获取点赞视频成功", page)
}

func likeMessage(liked bool) string {
	if liked {
		return "点赞成功"
	}
	return "已取消点赞"
}
