package repository

import (
	"errors"

	"github.com/ecommerce-api/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 地址数据访问接口
type AddressRepository interface {
	ListByCustomer(customerID string) ([]models.Address, error)
	GetByIDAndCustomer(id, customerID string) (*models.Address, error)
	Create(address *models.Address) error
	Delete(id string) error
	ClearDefault(customerID string) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) AddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) AddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// Transaction 执行事务
func (r *GormAddressRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// ListByCustomer 顾客地址列表（默认地址在前）
func (r *GormAddressRepository) ListByCustomer(customerID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByIDAndCustomer 获取顾客名下地址
func (r *GormAddressRepository) GetByIDAndCustomer(id, customerID string) (*models.Address, error) {
	var address models.Address
	if err := r.db.Where("id = ? AND customer_id = ?", id, customerID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

// Delete 删除地址
func (r *GormAddressRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Address{}).Error
}

// ClearDefault 取消顾客的默认地址
func (r *GormAddressRepository) ClearDefault(customerID string) error {
	return r.db.Model(&models.Address{}).
		Where("customer_id = ? AND is_default = ?", customerID, true).
		Update("is_default", false).Error
}
