package public

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ProcessPayment 支付订单（模拟网关）
func (h *Handler) ProcessPayment(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.ProcessPaymentInput
	if !shared.BindJSON(c, &req) {
		return
	}
	result, err := h.PaymentService.Process(customerID, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// GetPaymentByOrder 查询订单支付记录
func (h *Handler) GetPaymentByOrder(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	payment, err := h.PaymentService.GetByOrderID(customerID, c.Param("orderId"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, payment)
}
