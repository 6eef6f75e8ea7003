package admin

import (
	"strings"

	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 全部订单（携带 page/page_size 时返回分页结构）
func (h *Handler) ListOrders(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		parsed, ok := service.ParseOrderStatus(status)
		if !ok {
			response.BadRequest(c, "Invalid order status")
			return
		}
		status = parsed
	}

	if shared.FirstQuery(c, "page", "page_size") == "" {
		orders, _, err := h.OrderService.ListAll(0, 0, status)
		if err != nil {
			shared.RespondError(c, err)
			return
		}
		response.Success(c, orders)
		return
	}

	page, pageSize := shared.NormalizePagination(
		shared.QueryInt(c, "page", 1),
		shared.QueryInt(c, "page_size", 20),
	)
	orders, total, err := h.OrderService.ListAll(page, pageSize, status)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// UpdateOrderStatus 修改订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	actorID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.UpdateOrderStatusInput
	if !shared.BindJSON(c, &req) {
		return
	}
	if err := h.OrderService.UpdateStatus(c.Param("id"), req, actorID); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}
