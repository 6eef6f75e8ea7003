package models

import (
	"time"

	"gorm.io/gorm"
)

// Wishlist 收藏夹
type Wishlist struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`                    // 主键
	CustomerID string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"customer_id"` // 顾客ID
	CreatedAt  time.Time `json:"created_at"`                                               // 创建时间

	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items,omitempty"` // 收藏条目
}

// TableName 指定表名
func (Wishlist) TableName() string {
	return "wishlists"
}

// BeforeCreate 填充主键
func (w *Wishlist) BeforeCreate(_ *gorm.DB) error {
	ensureID(&w.ID)
	return nil
}

// WishlistItem 收藏条目
type WishlistItem struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`                                      // 主键
	WishlistID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_product" json:"wishlist_id"` // 收藏夹ID
	ProductID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_product" json:"product_id"`  // 商品ID
	CreatedAt  time.Time `json:"created_at"`                                                                 // 收藏时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// BeforeCreate 填充主键
func (i *WishlistItem) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
