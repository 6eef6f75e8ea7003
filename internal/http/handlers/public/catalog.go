package public

import (
	"github.com/ecommerce-api/internal/http/handlers/shared"
	"github.com/ecommerce-api/internal/http/response"
	"github.com/ecommerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 上架商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.ProductService.List()
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, products)
}

// GetPagedProducts 商品分页查询（兼容 camelCase 与 snake_case 查询参数）
func (h *Handler) GetPagedProducts(c *gin.Context) {
	page := shared.QueryInt(c, "pageNumber", shared.QueryInt(c, "page_number", 1))
	pageSize := shared.QueryInt(c, "pageSize", shared.QueryInt(c, "page_size", 10))

	products, total, page, pageSize, err := h.ProductService.Paged(service.ProductPageQuery{
		PageNumber: page,
		PageSize:   pageSize,
		SearchTerm: shared.FirstQuery(c, "searchTerm", "search_term"),
		CategoryID: shared.FirstQuery(c, "categoryId", "category_id"),
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetByID(c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, product)
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetByID(c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, category)
}
