package admin

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs 审计日志分页列表
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, pageSize := shared.NormalizePagination(
		shared.QueryInt(c, "page", 1),
		shared.QueryInt(c, "page_size", 20),
	)
	logs, total, err := h.AuditService.List(repository.AuditLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Entity:   shared.FirstQuery(c, "entity"),
		EntityID: shared.FirstQuery(c, "entity_id", "entityId"),
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
