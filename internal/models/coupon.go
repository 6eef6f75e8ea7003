package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠券
type Coupon struct {
	ID                string     `gorm:"type:varchar(36);primarykey" json:"id"`                          // 主键
	Code              string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`              // 优惠码
	DiscountType      string     `gorm:"type:varchar(20);not null" json:"discount_type"`                 // 类型（Percentage/Fixed）
	Value             Money      `gorm:"type:decimal(20,2);not null" json:"value"`                       // 数值（固定金额或百分比）
	MinOrderAmount    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"`  // 使用门槛
	MaxUsageCount     int        `gorm:"not null;default:0" json:"max_usage_count"`                      // 总使用上限（0 表示不限制）
	CurrentUsageCount int        `gorm:"not null;default:0" json:"current_usage_count"`                  // 已使用次数
	ValidFrom         *time.Time `gorm:"index" json:"valid_from"`                                        // 生效时间
	ValidTo           *time.Time `gorm:"index" json:"valid_to"`                                          // 失效时间
	IsActive          bool       `gorm:"not null;default:true" json:"is_active"`                         // 是否启用
	CreatedAt         time.Time  `json:"created_at"`                                                     // 创建时间
	UpdatedAt         time.Time  `json:"updated_at"`                                                     // 更新时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}

// BeforeCreate 填充主键
func (c *Coupon) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// Usable 判断优惠券在指定时间点与订单金额下是否可用
func (c *Coupon) Usable(now time.Time, subTotal Money) bool {
	if c == nil || !c.IsActive {
		return false
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidTo != nil && now.After(*c.ValidTo) {
		return false
	}
	if c.MaxUsageCount > 0 && c.CurrentUsageCount >= c.MaxUsageCount {
		return false
	}
	return subTotal.Decimal.GreaterThanOrEqual(c.MinOrderAmount.Decimal)
}
