package repository

import (
	"errors"

	"github.com/ecommerce-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository 收藏夹数据访问接口
type WishlistRepository interface {
	GetByCustomerID(customerID string) (*models.Wishlist, error)
	Create(wishlist *models.Wishlist) error
	AddItem(item *models.WishlistItem) error
	RemoveItem(wishlistID, productID string) (int64, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏夹仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// GetByCustomerID 获取顾客收藏夹（含商品）
func (r *GormWishlistRepository) GetByCustomerID(customerID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Preload("Items.Product").
		Where("customer_id = ?", customerID).
		First(&wishlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

// Create 创建收藏夹
func (r *GormWishlistRepository) Create(wishlist *models.Wishlist) error {
	return r.db.Create(wishlist).Error
}

// AddItem 添加收藏（重复添加忽略）
func (r *GormWishlistRepository) AddItem(item *models.WishlistItem) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

// RemoveItem 移除收藏
func (r *GormWishlistRepository) RemoveItem(wishlistID, productID string) (int64, error) {
	result := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
