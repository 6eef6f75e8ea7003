package public

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	msgCartItemAdded   = "Item added to cart"
	msgCartItemUpdated = "Cart item updated"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest 修改购物车数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Get(customerID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, cart)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if !shared.BindJSON(c, &req) {
		return
	}
	cart, err := h.CartService.AddItem(customerID, req.ProductID, req.Quantity)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithMsg(c, msgCartItemAdded, cart)
}

// UpdateCartItem 修改购物车条目数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if !shared.BindJSON(c, &req) {
		return
	}
	cart, err := h.CartService.UpdateItem(customerID, c.Param("id"), req.Quantity)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithMsg(c, msgCartItemUpdated, cart)
}

// RemoveCartItem 删除购物车条目
func (h *Handler) RemoveCartItem(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(customerID, c.Param("id")); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(customerID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}
