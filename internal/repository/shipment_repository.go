package repository

import (
	"github.com/ecommerce-api/internal/models"

	"gorm.io/gorm"
)

// ShipmentRepository 发货记录数据访问接口
type ShipmentRepository interface {
	Create(shipment *models.Shipment) error
	ListByOrder(orderID string) ([]models.Shipment, error)
	WithTx(tx *gorm.DB) ShipmentRepository
}

// GormShipmentRepository GORM 实现
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository 创建发货仓库
func NewShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormShipmentRepository) WithTx(tx *gorm.DB) ShipmentRepository {
	if tx == nil {
		return r
	}
	return &GormShipmentRepository{db: tx}
}

// Create 创建发货记录
func (r *GormShipmentRepository) Create(shipment *models.Shipment) error {
	return r.db.Create(shipment).Error
}

// ListByOrder 订单发货记录
func (r *GormShipmentRepository) ListByOrder(orderID string) ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := r.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}
