package service

import (
	"strings"
	"time"

	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"
)

// WishlistService 收藏夹服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建收藏夹服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// WishlistItemDTO 收藏条目
type WishlistItemDTO struct {
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Price       models.Money `json:"price"`
	ImageURL    string       `json:"image_url"`
	InStock     bool         `json:"in_stock"`
	AddedAt     time.Time    `json:"added_at"`
}

// WishlistDTO 收藏夹
type WishlistDTO struct {
	CustomerID string            `json:"customer_id"`
	Items      []WishlistItemDTO `json:"items"`
}

// Get 获取收藏夹（不存在时返回空列表）
func (s *WishlistService) Get(customerID string) (*WishlistDTO, error) {
	wishlist, err := s.wishlistRepo.GetByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	dto := &WishlistDTO{CustomerID: customerID, Items: []WishlistItemDTO{}}
	if wishlist == nil {
		return dto, nil
	}
	for _, item := range wishlist.Items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		dto.Items = append(dto.Items, WishlistItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Price:       item.Product.Price,
			ImageURL:    item.Product.ImageURL,
			InStock:     item.Product.StockQuantity > 0,
			AddedAt:     item.CreatedAt,
		})
	}
	return dto, nil
}

// AddItem 收藏商品（重复收藏忽略）
func (s *WishlistService) AddItem(customerID, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return BadRequest("One or more validation errors occurred", "product_id is required")
	}
	product, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return NotFound("Product", productID)
	}
	wishlist, err := s.ensureWishlist(customerID)
	if err != nil {
		return err
	}
	return s.wishlistRepo.AddItem(&models.WishlistItem{WishlistID: wishlist.ID, ProductID: product.ID})
}

// RemoveItem 取消收藏
func (s *WishlistService) RemoveItem(customerID, productID string) error {
	wishlist, err := s.wishlistRepo.GetByCustomerID(customerID)
	if err != nil {
		return err
	}
	if wishlist == nil {
		return NotFound("Wishlist item", productID)
	}
	affected, err := s.wishlistRepo.RemoveItem(wishlist.ID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFound("Wishlist item", productID)
	}
	return nil
}

func (s *WishlistService) ensureWishlist(customerID string) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if wishlist != nil {
		return wishlist, nil
	}
	wishlist = &models.Wishlist{CustomerID: customerID}
	if err := s.wishlistRepo.Create(wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}
