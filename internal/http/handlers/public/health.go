package public

import (
	"context"
	"net/http"
	"time"

	"github.com/ecommerce-api/internal/cache"
	"github.com/ecommerce-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Health 存活检查（数据库与 Redis 连通性）
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "ok", "redis": "disabled"}
	healthy := true
	if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unavailable"
		healthy = false
	}
	if cache.Enabled() {
		status["redis"] = "ok"
		if err := cache.Ping(ctx); err != nil {
			status["redis"] = "unavailable"
			healthy = false
		}
	}
	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	response.Success(c, status)
}
