package models

import (
	"time"

	"gorm.io/gorm"
)

// ShippingMethod 配送方式
type ShippingMethod struct {
	ID            string    `gorm:"type:varchar(36);primarykey" json:"id"`               // 主键
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`              // 名称
	Carrier       string    `gorm:"type:varchar(100)" json:"carrier"`                    // 承运商
	BaseRate      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"base_rate"` // 基础运费
	EstimatedDays int       `gorm:"not null;default:0" json:"estimated_days"`            // 预计送达天数
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`              // 是否启用
	CreatedAt     time.Time `json:"created_at"`                                          // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (ShippingMethod) TableName() string {
	return "shipping_methods"
}

// BeforeCreate 填充主键
func (m *ShippingMethod) BeforeCreate(_ *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// Shipment 发货记录
type Shipment struct {
	ID               string     `gorm:"type:varchar(36);primarykey" json:"id"`              // 主键
	OrderID          string     `gorm:"type:varchar(36);index;not null" json:"order_id"`    // 订单ID
	ShippingMethodID *string    `gorm:"type:varchar(36)" json:"shipping_method_id,omitempty"` // 配送方式ID
	TrackingNumber   string     `gorm:"type:varchar(100)" json:"tracking_number"`           // 物流单号
	Status           string     `gorm:"type:varchar(20);not null" json:"status"`            // 发货状态
	ShippedAt        *time.Time `json:"shipped_at,omitempty"`                               // 发货时间
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`                             // 签收时间
	CreatedAt        time.Time  `json:"created_at"`                                         // 创建时间
	UpdatedAt        time.Time  `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Shipment) TableName() string {
	return "shipments"
}

// BeforeCreate 填充主键
func (s *Shipment) BeforeCreate(_ *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
