package public

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProductReviews 商品评价列表
func (h *Handler) ListProductReviews(c *gin.Context) {
	reviews, err := h.ReviewService.ListByProduct(c.Param("productId"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, reviews)
}

// GetReviewSummary 商品评价汇总
func (h *Handler) GetReviewSummary(c *gin.Context) {
	summary, err := h.ReviewService.Summary(c.Param("productId"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, summary)
}

// CreateReview 发表评价
func (h *Handler) CreateReview(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	var req service.CreateReviewInput
	if !shared.BindJSON(c, &req) {
		return
	}
	review, err := h.ReviewService.Create(customerID, req)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, review)
}

// DeleteReview 删除自己的评价
func (h *Handler) DeleteReview(c *gin.Context) {
	customerID, ok := shared.GetCustomerID(c)
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(customerID, c.Param("id")); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.NoContent(c)
}
