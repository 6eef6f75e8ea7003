package repository

import (
	"errors"

	"github.com/ecommerce-api/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByCustomerID(customerID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	GetItem(cartID, itemID string) (*models.CartItem, error)
	GetItemByProduct(cartID, productID string) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID string, quantity int) error
	DeleteItem(itemID string) error
	ClearItems(cartID string) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByCustomerID 获取顾客购物车（含条目与商品）
func (r *GormCartRepository) GetByCustomerID(customerID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Preload("Items.Product").
		Where("customer_id = ?", customerID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// GetItem 获取购物车条目
func (r *GormCartRepository) GetItem(cartID, itemID string) (*models.CartItem, error) {
	return r.firstItem(r.db.Where("cart_id = ? AND id = ?", cartID, itemID))
}

// GetItemByProduct 按商品获取购物车条目
func (r *GormCartRepository) GetItemByProduct(cartID, productID string) (*models.CartItem, error) {
	return r.firstItem(r.db.Where("cart_id = ? AND product_id = ?", cartID, productID))
}

func (r *GormCartRepository) firstItem(query *gorm.DB) (*models.CartItem, error) {
	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 新增购物车条目
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity 更新条目数量
func (r *GormCartRepository) UpdateItemQuantity(itemID string, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

// DeleteItem 删除条目
func (r *GormCartRepository) DeleteItem(itemID string) error {
	return r.db.Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

// ClearItems 清空购物车条目
func (r *GormCartRepository) ClearItems(cartID string) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
