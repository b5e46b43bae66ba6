package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一成功响应
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

// ErrorResponse 统一错误响应，不带 data
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	})
}

func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	})
}

func BadRequest(c *gin.Context, message string)    { Fail(c, http.StatusBadRequest, message) }
func Unauthorized(c *gin.Context, message string)  { Fail(c, http.StatusUnauthorized, message) }
func Forbidden(c *gin.Context, message string)     { Fail(c, http.StatusForbidden, message) }
func NotFound(c *gin.Context, message string)      { Fail(c, http.StatusNotFound, message) }
func InternalError(c *gin.Context, message string) { Fail(c, http.StatusInternalServerError, message) }
