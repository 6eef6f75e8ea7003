package repository

import (
	"errors"
	"time"

	"github.com/ecommerce-api/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository 库存台账与库存占用数据访问接口
type InventoryRepository interface {
	GetByProductID(productID string) (*models.Inventory, error)
	Upsert(productID string, quantity int, restockedAt *time.Time) error
	CreateReservations(reservations []models.InventoryReservation) error
	AdjustQuantity(productID string, delta int) error
	ListReservationsByOrder(orderID string) ([]models.InventoryReservation, error)
	DeleteReservationsByOrder(orderID string) (int64, error)
	WithTx(tx *gorm.DB) InventoryRepository
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInventoryRepository) WithTx(tx *gorm.DB) InventoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryRepository{db: tx}
}

// GetByProductID 获取商品库存台账
func (r *GormInventoryRepository) GetByProductID(productID string) (*models.Inventory, error) {
	var inventory models.Inventory
	if err := r.db.Where("product_id = ?", productID).First(&inventory).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inventory, nil
}

// Upsert 写入或更新库存台账
func (r *GormInventoryRepository) Upsert(productID string, quantity int, restockedAt *time.Time) error {
	existing, err := r.GetByProductID(productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(&models.Inventory{
			ProductID:       productID,
			Quantity:        quantity,
			LastRestockedAt: restockedAt,
		}).Error
	}
	updates := map[string]interface{}{"quantity": quantity}
	if restockedAt != nil {
		updates["last_restocked_at"] = restockedAt
	}
	return r.db.Model(&models.Inventory{}).Where("id = ?", existing.ID).Updates(updates).Error
}

// AdjustQuantity 按增量调整库存台账（无台账时忽略）
func (r *GormInventoryRepository) AdjustQuantity(productID string, delta int) error {
	if delta == 0 {
		return nil
	}
	return r.db.Model(&models.Inventory{}).
		Where("product_id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// CreateReservations 批量写入库存占用
func (r *GormInventoryRepository) CreateReservations(reservations []models.InventoryReservation) error {
	if len(reservations) == 0 {
		return nil
	}
	return r.db.Create(&reservations).Error
}

// ListReservationsByOrder 查询订单的库存占用
func (r *GormInventoryRepository) ListReservationsByOrder(orderID string) ([]models.InventoryReservation, error) {
	var reservations []models.InventoryReservation
	if err := r.db.Where("order_id = ?", orderID).Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// DeleteReservationsByOrder 释放订单的库存占用（返回删除行数）
func (r *GormInventoryRepository) DeleteReservationsByOrder(orderID string) (int64, error) {
	result := r.db.Where("order_id = ?", orderID).Delete(&models.InventoryReservation{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
