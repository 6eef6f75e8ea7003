package admin

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	actorID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.CategoryInput
	if !shared.BindJSON(c, &req) {
		return
	}
	category, err := h.CategoryService.Create(req, actorID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	actorID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.CategoryInput
	if !shared.BindJSON(c, &req) {
		return
	}
	if err := h.CategoryService.Update(c.Param("id"), req, actorID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	actorID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(c.Param("id"), actorID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}
