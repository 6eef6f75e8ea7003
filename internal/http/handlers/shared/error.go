package shared

import (
	"errors"
	"net/http"

	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorStatusTable 错误类别到 HTTP 状态码的映射（按顺序匹配）
var errorStatusTable = []struct {
	kind   error
	status int
}{
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrBadRequest, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrDomain, http.StatusBadRequest},
}

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// StatusOf 根据错误类别返回 HTTP 状态码，未识别的错误为 500。
func StatusOf(err error) int {
	for _, entry := range errorStatusTable {
		if errors.Is(err, entry.kind) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// RespondError 将 service 错误转换为统一响应，500 时只记录原因不返回细节。
func RespondError(c *gin.Context, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		appErr := response.WrapError(status, response.MsgUnexpected, nil, err)
		RequestLog(c).Errorw("handler_error",
			"status", appErr.Status,
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, appErr.Status, appErr.Message)
		return
	}
	response.Error(c, status, err.Error(), service.Details(err)...)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, status int, msg string, err error) {
	appErr := response.WrapError(status, msg, nil, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"status", appErr.Status,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Status, appErr.Message)
}
