package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车（每个顾客一辆）
type Cart struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`                    // 主键
	CustomerID string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"customer_id"` // 顾客ID
	CreatedAt  time.Time `json:"created_at"`                                               // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                               // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车条目
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// BeforeCreate 填充主键
func (c *Cart) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// CartItem 购物车条目
type CartItem struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`                  // 主键
	CartID    string    `gorm:"type:varchar(36);index;not null" json:"cart_id"`         // 购物车ID
	ProductID string    `gorm:"type:varchar(36);index;not null" json:"product_id"`      // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                               // 数量
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 加购时单价
	CreatedAt time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate 填充主键
func (i *CartItem) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
