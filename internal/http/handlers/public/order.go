package public

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder 从购物车下单（请求体可为空）
func (h *Handler) CreateOrder(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.CreateOrderInput
	if !shared.BindOptionalJSON(c, &req) {
		return
	}
	order, err := h.OrderService.CreateFromCart(customerID, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, order)
}

// ListOrders 我的订单
func (h *Handler) ListOrders(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	orders, err := h.OrderService.ListForCustomer(customerID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetForCustomer(customerID, c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, order)
}
