package public

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddWishlistItemRequest 收藏商品请求
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// GetWishlist 获取收藏夹
func (h *Handler) GetWishlist(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	wishlist, err := h.WishlistService.Get(customerID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, wishlist)
}

// AddWishlistItem 收藏商品（重复收藏不报错）
func (h *Handler) AddWishlistItem(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req AddWishlistItemRequest
	if !shared.BindJSON(c, &req) {
		return
	}
	if err := h.WishlistService.AddItem(customerID, req.ProductID); err != nil {
		shared.RespondError(c, err)
		return
	}
	wishlist, err := h.WishlistService.Get(customerID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, wishlist)
}

// RemoveWishlistItem 取消收藏
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	if err := h.WishlistService.RemoveItem(customerID, c.Param("productId")); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}
