package service

import (
	"context"
	"strings"
	"time"

	"github.com/ecommerce-api/internal/cache"
	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = repository.MaxPageSize
)

// ProductService 商品业务服务
type ProductService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	inventoryRepo repository.InventoryRepository
	audit         *AuditService
	now           func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, inventoryRepo repository.InventoryRepository, audit *AuditService) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		audit:         audit,
		now:           time.Now,
	}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Name          string       `json:"name" validate:"required,max=200"`
	Description   string       `json:"description" validate:"max=2000"`
	Sku           string       `json:"sku" validate:"max=64"`
	Price         models.Money `json:"price"`
	StockQuantity int          `json:"stock_quantity" validate:"gte=0"`
	ImageURL      string       `json:"image_url" validate:"max=500"`
	CategoryID    string       `json:"category_id" validate:"required"`
}

// ProductDTO 商品详情
type ProductDTO struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Sku           string       `json:"sku"`
	Price         models.Money `json:"price"`
	StockQuantity int          `json:"stock_quantity"`
	ImageURL      string       `json:"image_url"`
	CategoryID    string       `json:"category_id"`
	CategoryName  string       `json:"category_name"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ProductPageQuery 商品分页查询
type ProductPageQuery struct {
	PageNumber int
	PageSize   int
	SearchTerm string
	CategoryID string
}

// List 获取全部上架商品
func (s *ProductService) List() ([]ProductDTO, error) {
	products, _, err := s.productRepo.List(repository.ProductListFilter{OnlyActive: true, WithCategory: true})
	if err != nil {
		return nil, err
	}
	return toProductDTOs(products), nil
}

// Paged 分页查询上架商品
func (s *ProductService) Paged(query ProductPageQuery) ([]ProductDTO, int64, int, int, error) {
	page, size := NormalizePage(query.PageNumber, query.PageSize)
	products, total, err := s.productRepo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     size,
		Search:       query.SearchTerm,
		CategoryID:   query.CategoryID,
		OnlyActive:   true,
		WithCategory: true,
	})
	if err != nil {
		return nil, 0, page, size, err
	}
	return toProductDTOs(products), total, page, size, nil
}

// GetByID 获取上架商品详情（优先读取缓存）
func (s *ProductService) GetByID(id string) (*ProductDTO, error) {
	ctx := context.Background()
	var cached ProductDTO
	if hit, err := cache.GetProduct(ctx, id, &cached); err == nil && hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NotFound("Product", id)
	}
	dto := toProductDTO(product)
	if err := cache.SetProduct(ctx, id, dto); err != nil {
		logger.Warnw("product_cache_set_failed", "product_id", id, "error", err)
	}
	return &dto, nil
}

// Create 创建商品并初始化库存台账
func (s *ProductService) Create(input ProductInput, actorID string) (*ProductDTO, error) {
	input = normalizeProductInput(input)
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return nil, err
	}
	if err := s.ensureSkuFree(input.Sku, ""); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Sku:           input.Sku,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		ImageURL:      input.ImageURL,
		CategoryID:    input.CategoryID,
		IsActive:      true,
	}
	now := s.now()
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.WithTx(tx).Create(product); err != nil {
			return err
		}
		return s.inventoryRepo.WithTx(tx).Upsert(product.ID, product.StockQuantity, &now)
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record("Product", product.ID, constants.AuditActionInsert, nil, product, actorID)

	created, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, NotFound("Product", product.ID)
	}
	dto := toProductDTO(created)
	return &dto, nil
}

// Update 更新商品
func (s *ProductService) Update(id string, input ProductInput, actorID string) error {
	input = normalizeProductInput(input)
	if err := validateProductInput(input); err != nil {
		return err
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return NotFound("Product", id)
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return err
	}
	if err := s.ensureSkuFree(input.Sku, id); err != nil {
		return err
	}

	before := *product
	before.Category = nil
	product.Name = input.Name
	product.Description = input.Description
	product.Sku = input.Sku
	product.Price = input.Price
	product.StockQuantity = input.StockQuantity
	product.ImageURL = input.ImageURL
	product.CategoryID = input.CategoryID
	product.Category = nil
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	invalidateProducts(id)
	s.audit.Record("Product", id, constants.AuditActionUpdate, before, product, actorID)
	return nil
}

// Delete 软删除商品（下架）
func (s *ProductService) Delete(id string, actorID string) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return NotFound("Product", id)
	}
	if err := s.productRepo.Deactivate(id); err != nil {
		return err
	}
	invalidateProducts(id)
	s.audit.Record("Product", id, constants.AuditActionDelete, map[string]interface{}{"is_active": true}, map[string]interface{}{"is_active": false}, actorID)
	return nil
}

// UpdateInventory 设置商品库存并同步库存台账
func (s *ProductService) UpdateInventory(id string, quantity int, actorID string) error {
	if quantity < 0 {
		return BadRequest("Quantity must be greater than or equal to 0", "quantity must be greater than or equal to 0")
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return NotFound("Product", id)
	}

	now := s.now()
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.WithTx(tx).SetStock(id, quantity); err != nil {
			return err
		}
		return s.inventoryRepo.WithTx(tx).Upsert(id, quantity, &now)
	})
	if err != nil {
		return err
	}
	invalidateProducts(id)
	s.audit.Record("Inventory", id, constants.AuditActionUpdate,
		map[string]int{"stock_quantity": product.StockQuantity},
		map[string]int{"stock_quantity": quantity},
		actorID,
	)
	return nil
}

// ListLowStock 查询低库存商品
func (s *ProductService) ListLowStock(threshold int) ([]ProductDTO, error) {
	products, err := s.productRepo.ListLowStock(threshold)
	if err != nil {
		return nil, err
	}
	return toProductDTOs(products), nil
}

func (s *ProductService) ensureCategory(categoryID string) error {
	exists, err := s.categoryRepo.Exists(categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("Category", categoryID)
	}
	return nil
}

func (s *ProductService) ensureSkuFree(sku string, excludeID string) error {
	if sku == "" {
		return nil
	}
	count, err := s.productRepo.CountBySku(sku, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return Conflict("A product with SKU '" + sku + "' already exists")
	}
	return nil
}

func invalidateProducts(productIDs ...string) {
	if err := cache.InvalidateProduct(context.Background(), productIDs...); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "product_ids", productIDs, "error", err)
	}
}

// NormalizePage 归一化分页参数
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func normalizeProductInput(input ProductInput) ProductInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Sku = strings.TrimSpace(input.Sku)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	input.CategoryID = strings.TrimSpace(input.CategoryID)
	return input
}

func validateProductInput(input ProductInput) error {
	var details []string
	if err := validate.Struct(input); err != nil {
		details = append(details, ValidationMessages(err)...)
	}
	if !input.Price.Decimal.IsPositive() {
		details = append(details, "price must be greater than 0")
	}
	return validationFailed(details)
}

func toProductDTO(product *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Sku:           product.Sku,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		ImageURL:      product.ImageURL,
		CategoryID:    product.CategoryID,
		IsActive:      product.IsActive,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
	if product.Category != nil {
		dto.CategoryName = product.Category.Name
	}
	return dto
}

func toProductDTOs(products []models.Product) []ProductDTO {
	result := make([]ProductDTO, 0, len(products))
	for i := range products {
		result = append(result, toProductDTO(&products[i]))
	}
	return result
}
