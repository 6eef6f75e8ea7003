package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 商品评价
type Review struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`              // 主键
	ProductID  string    `gorm:"type:varchar(36);index;not null" json:"product_id"`  // 商品ID
	CustomerID string    `gorm:"type:varchar(36);index;not null" json:"customer_id"` // 顾客ID
	Rating     int       `gorm:"not null" json:"rating"`                             // 评分（1-5）
	Comment    string    `gorm:"type:varchar(1000)" json:"comment"`                  // 评论内容
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                         // 更新时间

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 评价人
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate 填充主键
func (r *Review) BeforeCreate(_ *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
