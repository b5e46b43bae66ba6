package handler

import (
	"errors"

	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleError 按错误类别映射 HTTP 状态码，依赖失败不向客户端暴露原因
func handleError(c *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrInvalidCredential) {
		response.Unauthorized(c, err.Error())
		return
	}

	switch service.KindOf(err) {
	case service.ErrInvalidReference, service.ErrValidationFailed:
		response.BadRequest(c, err.Error())
	case service.ErrNotFound:
		response.NotFound(c, err.Error())
	case service.ErrForbidden:
		response.Forbidden(c, err.Error())
	default:
		logger.Error(op+" failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// pathID 解析路径参数中的 ID，失败时已写入 400 响应
func pathID(c *gin.Context, name string, invalid error) (uuid.UUID, bool) {
	id, err := service.ParseID(c.Param(name), invalid)
	if err != nil {
		response.BadRequest(c, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"))
}

// viewer 当前用户，匿名访问时为 uuid.Nil
func viewer(c *gin.Context) uuid.UUID {
	id, _ := middleware.GetCurrentUserID(c)
	return id
}
