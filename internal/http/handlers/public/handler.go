package public

import "github.com/ecommerce-api/internal/provider"

// Handler 前台/顾客接口处理器入口
// 说明：公开目录接口与登录顾客接口共用该处理器，管理端接口见 admin 包。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
