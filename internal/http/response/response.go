package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"` // 是否成功
	Message string      `json:"message"` // 提示消息
	Data    interface{} `json:"data"`    // 数据内容
	Errors  []string    `json:"errors"`  // 错误明细（始终为数组）
}

// PageResponse 分页响应结构
type PageResponse struct {
	Response
	Pagination
}

// Pagination 分页信息
type Pagination struct {
	PageNumber      int   `json:"page_number"`
	PageSize        int   `json:"page_size"`
	TotalPages      int64 `json:"total_pages"`
	TotalRecords    int64 `json:"total_records"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// NewPagination 根据总数计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	var totalPages int64
	if pageSize > 0 {
		totalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		PageNumber:      page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		TotalRecords:    total,
		HasNextPage:     int64(page) < totalPages,
		HasPreviousPage: page > 1,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	SuccessWithMsg(c, MsgSuccess, data)
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
		Errors:  []string{},
	})
}

// Created 创建成功（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: MsgCreated,
		Data:    data,
		Errors:  []string{},
	})
}

// CreatedWithMsg 201 创建成功响应（自定义消息）
func CreatedWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: msg,
		Data:    data,
		Errors:  []string{},
	})
}

// NoContent 更新或删除成功（204，无响应体）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Response: Response{
			Success: true,
			Message: MsgSuccess,
			Data:    data,
			Errors:  []string{},
		},
		Pagination: pagination,
	})
}

// Error 错误响应
func Error(c *gin.Context, status int, msg string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	c.JSON(status, Response{
		Success: false,
		Message: msg,
		Errors:  errs,
	})
}

// Abort 错误响应并终止后续处理（中间件使用）
func Abort(c *gin.Context, status int, msg string) {
	Error(c, status, msg)
	c.Abort()
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string, errs ...string) {
	Error(c, http.StatusBadRequest, msg, errs...)
}
