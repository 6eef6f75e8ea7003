package service

import (
	"strings"

	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"
)

const (
	msgCartNotFound      = "Cart not found"
	msgInsufficientStock = "Insufficient stock quantity"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartItemDTO 购物车条目
type CartItemDTO struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	UnitPrice   models.Money `json:"unit_price"`
	Quantity    int          `json:"quantity"`
	LineTotal   models.Money `json:"line_total"`
	ImageURL    string       `json:"image_url"`
}

// CartDTO 购物车
type CartDTO struct {
	ID         string        `json:"id,omitempty"`
	CustomerID string        `json:"customer_id"`
	Items      []CartItemDTO `json:"items"`
	SubTotal   models.Money  `json:"sub_total"`
	TotalItems int           `json:"total_items"`
}

// Get 获取顾客购物车（不存在时返回空购物车）
func (s *CartService) Get(customerID string) (*CartDTO, error) {
	cart, err := s.cartRepo.GetByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartDTO{CustomerID: customerID, Items: []CartItemDTO{}, SubTotal: models.ZeroMoney()}, nil
	}
	return toCartDTO(cart), nil
}

// AddItem 添加商品到购物车（已存在则合并数量）
func (s *CartService) AddItem(customerID, productID string, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return nil, BadRequest("Quantity must be at least 1", "quantity must be at least 1")
	}
	productID = strings.TrimSpace(productID)
	product, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NotFound("Product", productID)
	}

	cart, err := s.ensureCart(customerID)
	if err != nil {
		return nil, err
	}
	existing, err := s.cartRepo.GetItemByProduct(cart.ID, product.ID)
	if err != nil {
		return nil, err
	}

	target := quantity
	if existing != nil {
		target += existing.Quantity
	}
	if product.StockQuantity < target {
		return nil, BadRequest(msgInsufficientStock)
	}

	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, target); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}
	return s.Get(customerID)
}

// UpdateItem 修改购物车条目数量
func (s *CartService) UpdateItem(customerID, itemID string, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return nil, BadRequest("Quantity must be at least 1", "quantity must be at least 1")
	}
	cart, item, err := s.findItem(customerID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetActiveByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NotFound("Product", item.ProductID)
	}
	if product.StockQuantity < quantity {
		return nil, BadRequest(msgInsufficientStock)
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.Get(cart.CustomerID)
}

// RemoveItem 删除购物车条目
func (s *CartService) RemoveItem(customerID, itemID string) error {
	_, item, err := s.findItem(customerID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteItem(item.ID)
}

// Clear 清空购物车（无购物车时忽略）
func (s *CartService) Clear(customerID string) error {
	cart, err := s.cartRepo.GetByCustomerID(customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearItems(cart.ID)
}

func (s *CartService) ensureCart(customerID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{CustomerID: customerID}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) findItem(customerID, itemID string) (*models.Cart, *models.CartItem, error) {
	cart, err := s.cartRepo.GetByCustomerID(customerID)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil {
		return nil, nil, NotFoundMessage(msgCartNotFound)
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, NotFound("Cart item", itemID)
	}
	return cart, item, nil
}

func toCartDTO(cart *models.Cart) *CartDTO {
	dto := &CartDTO{
		ID:         cart.ID,
		CustomerID: cart.CustomerID,
		Items:      make([]CartItemDTO, 0, len(cart.Items)),
		SubTotal:   models.ZeroMoney(),
	}
	for _, item := range cart.Items {
		line := item.UnitPrice.MulInt(item.Quantity)
		itemDTO := CartItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: line,
		}
		if item.Product != nil {
			itemDTO.ProductName = item.Product.Name
			itemDTO.ImageURL = item.Product.ImageURL
		}
		dto.Items = append(dto.Items, itemDTO)
		dto.SubTotal = dto.SubTotal.Add(line)
		dto.TotalItems += item.Quantity
	}
	return dto
}
