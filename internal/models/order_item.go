package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项（下单时快照商品名称与单价）
type OrderItem struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"id"`                   // 主键
	OrderID     string    `gorm:"type:varchar(36);index;not null" json:"order_id"`         // 订单ID
	ProductID   string    `gorm:"type:varchar(36);index;not null" json:"product_id"`       // 商品ID
	ProductName string    `gorm:"type:varchar(200);not null" json:"product_name"`          // 商品名称快照
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价快照
	Quantity    int       `gorm:"not null" json:"quantity"`                                // 数量
	CreatedAt   time.Time `json:"created_at"`                                              // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate 填充主键
func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// LineTotal 行小计
func (i OrderItem) LineTotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}
