package shared

import (
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// BindJSON 绑定并校验请求体，失败时直接写入 400 响应。
func BindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.BadRequest(c, response.MsgValidationFailed, "Request body is invalid: "+err.Error())
		return false
	}
	if err := service.Validator().Struct(dest); err != nil {
		response.BadRequest(c, response.MsgValidationFailed, service.ValidationMessages(err)...)
		return false
	}
	return true
}

// BindOptionalJSON 允许空请求体，非空时按 BindJSON 处理。
func BindOptionalJSON(c *gin.Context, dest interface{}) bool {
	if c.Request == nil || c.Request.ContentLength == 0 {
		return true
	}
	return BindJSON(c, dest)
}
