package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            string    `gorm:"type:varchar(36);primarykey" json:"id"`                       // 主键
	Name          string    `gorm:"type:varchar(200);not null;index" json:"name"`                // 名称
	Description   string    `gorm:"type:text" json:"description"`                                // 描述
	Sku           string    `gorm:"type:varchar(64);index" json:"sku"`                           // SKU 编码（可为空）
	Price         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`          // 单价
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`                    // 可售库存
	ImageURL      string    `gorm:"type:varchar(500)" json:"image_url"`                          // 图片地址
	CategoryID    string    `gorm:"type:varchar(36);not null;index" json:"category_id"`          // 分类ID
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`                // 是否上架
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                                  // 更新时间

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 填充主键
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// Inventory 库存台账
type Inventory struct {
	ID              string     `gorm:"type:varchar(36);primarykey" json:"id"`                    // 主键
	ProductID       string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"product_id"`  // 商品ID
	Quantity        int        `gorm:"not null;default:0" json:"quantity"`                       // 库存数量
	Location        string     `gorm:"type:varchar(100)" json:"location"`                        // 仓位
	LastRestockedAt *time.Time `json:"last_restocked_at,omitempty"`                              // 最近补货时间
	CreatedAt       time.Time  `json:"created_at"`                                               // 创建时间
	UpdatedAt       time.Time  `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (Inventory) TableName() string {
	return "inventories"
}

// BeforeCreate 填充主键
func (i *Inventory) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// InventoryReservation 待支付订单的库存占用
type InventoryReservation struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`            // 主键
	ProductID string    `gorm:"type:varchar(36);index;not null" json:"product_id"` // 商品ID
	OrderID   string    `gorm:"type:varchar(36);index;not null" json:"order_id"`   // 订单ID
	Quantity  int       `gorm:"not null" json:"quantity"`                          // 占用数量
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`                           // 占用过期时间
	CreatedAt time.Time `json:"created_at"`                                        // 创建时间
}

// TableName 指定表名
func (InventoryReservation) TableName() string {
	return "inventory_reservations"
}

// BeforeCreate 填充主键
func (r *InventoryReservation) BeforeCreate(_ *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
