package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类（支持父子层级）
type Category struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"id"`            // 主键
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`           // 名称
	Description string    `gorm:"type:text" json:"description"`                     // 描述
	ParentID    *string   `gorm:"type:varchar(36);index" json:"parent_id"`          // 父分类ID
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`     // 是否启用
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                       // 更新时间

	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`   // 父分类
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"` // 子分类
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate 填充主键
func (c *Category) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
