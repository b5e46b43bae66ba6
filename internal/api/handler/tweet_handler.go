package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// CreateTweet 发布动态
// @Summary 发布动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContentRequest true "动态内容"
// @Success 201 {object} response.Response{data=dto.TweetInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "内容不能为空"
// @Router /tweets [post]
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	tweet, err := h.tweetService.CreateTweet(c.Request.Context(), viewer(c), req.Content)
	if err != nil {
		handleError(c, "Create tweet", err)
		return
	}

	response.Created(c, "发布动态成功", tweet)
}

// GetUserTweets 用户的动态列表
// @Summary 用户动态
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.TweetInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /tweets/user/{userId} [get]
func (h *TweetHandler) GetUserTweets(c *gin.Context) {
	ownerID, ok := pathID(c, "userId", service.ErrInvalidUserID)
	if !ok {
		return
	}

	tweets, err := h.tweetService.GetUserTweets(c.Request.Context(), viewer(c), ownerID)
	if err != nil {
		handleError(c, "Get user tweets", err)
		return
	}

	response.OK(c, "获取动态成功", tweets)
}

// UpdateTweet 修改动态
// @Summary 修改动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tweetId path string true "动态ID"
// @Param request body dto.ContentRequest true "动态内容"
// @Success 200 {object} response.Response{data=dto.TweetInfo} "修改成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /tweets/{tweetId} [patch]
func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId", service.ErrInvalidTweetID)
	if !ok {
		return
	}

	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	tweet, err := h.tweetService.UpdateTweet(c.Request.Context(), viewer(c), tweetID, req.Content)
	if err != nil {
		handleError(c, "Update tweet", err)
		return
	}

	response.OK(c, "修改动态成功", tweet)
}

// DeleteTweet 删除动态
// @Summary 删除动态
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Param tweetId path string true "动态ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /tweets/{tweetId} [delete]
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId", service.ErrInvalidTweetID)
	if !ok {
		return
	}

	if err := h.tweetService.DeleteTweet(c.Request.Context(), viewer(c), tweetID); err != nil {
		handleError(c, "Delete tweet", err)
		return
	}

	response.OK(c, "删除动态成功", nil)
}
