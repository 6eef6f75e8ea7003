package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付记录
type Payment struct {
	ID              string     `gorm:"type:varchar(36);primarykey" json:"id"`                         // 主键
	OrderID         string     `gorm:"type:varchar(36);index;not null" json:"order_id"`               // 订单ID
	PaymentMethodID *string    `gorm:"type:varchar(36)" json:"payment_method_id,omitempty"`           // 支付方式ID
	Amount          Money      `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`           // 金额
	Currency        string     `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`        // 币种
	Status          string     `gorm:"type:varchar(20);index;not null" json:"status"`                 // 支付状态
	Provider        string     `gorm:"type:varchar(50);not null" json:"provider"`                     // 支付提供方
	TransactionRef  string     `gorm:"type:varchar(100);index" json:"transaction_ref"`                // 交易流水号
	CapturedAt      *time.Time `json:"captured_at,omitempty"`                                         // 扣款时间
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time  `json:"updated_at"`                                                    // 更新时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate 填充主键
func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
