package models

import (
	"time"

	"gorm.io/gorm"
)

// CouponUsage 优惠券使用记录
type CouponUsage struct {
	ID             string    `gorm:"type:varchar(36);primarykey" json:"id"`                       // 主键
	CouponID       string    `gorm:"type:varchar(36);index;not null" json:"coupon_id"`            // 优惠券ID
	CustomerID     string    `gorm:"type:varchar(36);index;not null" json:"customer_id"`          // 顾客ID
	OrderID        string    `gorm:"type:varchar(36);index;not null" json:"order_id"`             // 订单ID
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	CreatedAt      time.Time `json:"created_at"`                                                  // 创建时间
}

// TableName 指定表名
func (CouponUsage) TableName() string {
	return "coupon_usages"
}

// BeforeCreate 填充主键
func (u *CouponUsage) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
