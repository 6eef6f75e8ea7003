package public

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAddresses 地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.List(customerID)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 新增地址
func (h *Handler) CreateAddress(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.AddressInput
	if !shared.BindJSON(c, &req) {
		return
	}
	address, err := h.AddressService.Create(customerID, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	if err := h.AddressService.Delete(customerID, c.Param("id")); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}
