package util

import (
	"errors"
	"net/http"

	"youthhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// ErrorStatus 将引擎错误映射为 HTTP 状态码，未知错误返回 0
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidSubmission),
		errors.Is(err, ErrInvalidModule),
		errors.Is(err, ErrQuizRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrChallengeNotFound),
		errors.Is(err, ErrLearnerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrChallengeClosed),
		errors.Is(err, ErrNotJoined),
		errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrNotSubmitted),
		errors.Is(err, ErrNotEnrolled),
		errors.Is(err, ErrStorageConflict):
		return http.StatusConflict
	}
	return 0
}

// HandleError 业务错误直接返回给前端，其余错误记录日志后返回 500
func HandleError(c *gin.Context, err error) {
	if status := ErrorStatus(err); status != 0 {
		Error(c, status, err.Error())
		return
	}
	LogInternalError(c, err)
}
