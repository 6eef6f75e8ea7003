package shared

import (
	"strings"

	"github.com/ecommerce-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 认证中间件写入的上下文键
const (
	ContextCustomerID    = "customer_id"
	ContextCustomerEmail = "customer_email"
	ContextCustomerRole  = "customer_role"
)

// GetContextString 从上下文读取字符串值，缺失时返回 401。
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, response.MsgUnauthorized)
		return "", false
	}
	text, ok := value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		response.Unauthorized(c, response.MsgUnauthorized)
		return "", false
	}
	return text, true
}

// GetCustomerID 当前登录顾客 ID
func GetCustomerID(c *gin.Context) (string, bool) {
	return GetContextString(c, ContextCustomerID)
}

// GetCustomerRole 当前登录顾客角色（未登录时为空）
func GetCustomerRole(c *gin.Context) string {
	role, _ := c.Get(ContextCustomerRole)
	text, _ := role.(string)
	return text
}
