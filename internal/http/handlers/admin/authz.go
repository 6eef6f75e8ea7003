package admin

import (
	"net/http"

	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

const msgPolicyLoadFailed = "Failed to load role policies"

// ListRolePolicies 角色权限矩阵（只读）
func (h *Handler) ListRolePolicies(c *gin.Context) {
	result, err := h.AuthzService.ListRolePolicies()
	if err != nil {
		shared.RespondErrorWithMsg(c, http.StatusInternalServerError, msgPolicyLoadFailed, err)
		return
	}
	response.Success(c, result)
}
