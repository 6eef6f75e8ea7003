package admin

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateInventoryRequest 库存调整请求
type UpdateInventoryRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	actorID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.ProductInput
	if !shared.BindJSON(c, &req) {
		return
	}
	product, err := h.ProductService.Create(req, actorID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	actorID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.ProductInput
	if !shared.BindJSON(c, &req) {
		return
	}
	if err := h.ProductService.Update(c.Param("id"), req, actorID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteProduct 下架商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	actorID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Param("id"), actorID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateInventory 设置商品库存
func (h *Handler) UpdateInventory(c *gin.Context) {
	actorID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req UpdateInventoryRequest
	if !shared.BindJSON(c, &req) {
		return
	}
	if err := h.ProductService.UpdateInventory(c.Param("id"), *req.Quantity, actorID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}

// ListLowStock 低库存商品（threshold 缺省取配置值）
func (h *Handler) ListLowStock(c *gin.Context) {
	threshold := shared.QueryInt(c, "threshold", h.Config.Order.LowStockThreshold)
	products, err := h.ProductService.ListLowStock(threshold)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, products)
}
