package shared

import (
	"strconv"
	"strings"

	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	return service.NormalizePage(page, pageSize)
}

// QueryInt 读取整数查询参数，非法或缺失时返回默认值。
func QueryInt(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// FirstQuery 按顺序读取第一个非空查询参数（兼容 camelCase 与 snake_case）。
func FirstQuery(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(c.Query(key)); value != "" {
			return value
		}
	}
	return ""
}
