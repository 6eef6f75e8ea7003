package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                string    `gorm:"type:varchar(36);primarykey" json:"id"`                       // 主键
	CustomerID        string    `gorm:"type:varchar(36);index;not null" json:"customer_id"`          // 顾客ID
	Status            string    `gorm:"type:varchar(32);index;not null" json:"status"`               // 订单状态
	SubTotal          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"sub_total"`      // 商品小计
	Tax               Money     `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`            // 税费
	Shipping          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"shipping"`       // 运费
	Discount          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`       // 优惠金额
	GrandTotal        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"grand_total"`    // 应付合计
	TotalAmount       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 实付金额
	BillingAddressID  *string   `gorm:"type:varchar(36)" json:"billing_address_id,omitempty"`        // 账单地址
	ShippingAddressID *string   `gorm:"type:varchar(36)" json:"shipping_address_id,omitempty"`       // 收货地址
	CouponCode        string    `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`               // 使用的优惠码
	Notes             string    `gorm:"type:text" json:"notes,omitempty"`                            // 备注
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                                                  // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 填充主键
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}
