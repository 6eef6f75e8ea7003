package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 顾客（认证主体）
type Customer struct {
	ID                 string     `gorm:"type:varchar(36);primarykey" json:"id"`                  // 主键
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`    // 邮箱
	PasswordHash       string     `gorm:"not null" json:"-"`                                      // 密码哈希（不返回给前端）
	FirstName          string     `gorm:"type:varchar(100);default:''" json:"first_name"`         // 名
	LastName           string     `gorm:"type:varchar(100);default:''" json:"last_name"`          // 姓
	DateOfBirth        *time.Time `json:"date_of_birth,omitempty"`                                // 出生日期
	LoyaltyPoints      int        `gorm:"not null;default:0" json:"loyalty_points"`               // 积分
	Role               string     `gorm:"type:varchar(20);not null;default:'Customer'" json:"role"` // 角色（Admin/Customer）
	RefreshToken       string     `gorm:"type:varchar(255);index" json:"-"`                       // 当前刷新令牌
	RefreshTokenExpiry *time.Time `json:"-"`                                                      // 刷新令牌过期时间
	IsActive           bool       `gorm:"not null;default:true;index" json:"is_active"`           // 是否启用
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`                                // 最后登录时间
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt          time.Time  `json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate 填充主键
func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// Address 收货/账单地址
type Address struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`              // 主键
	CustomerID string    `gorm:"type:varchar(36);index;not null" json:"customer_id"` // 顾客ID
	Line1      string    `gorm:"type:varchar(200);not null" json:"line1"`            // 地址行1
	Line2      string    `gorm:"type:varchar(200)" json:"line2"`                     // 地址行2
	City       string    `gorm:"type:varchar(100);not null" json:"city"`             // 城市
	State      string    `gorm:"type:varchar(100)" json:"state"`                     // 省/州
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code"`                // 邮编
	Country    string    `gorm:"type:varchar(100);not null" json:"country"`          // 国家
	IsDefault  bool      `gorm:"not null;default:false" json:"is_default"`           // 是否默认
	CreatedAt  time.Time `json:"created_at"`                                         // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}

// BeforeCreate 填充主键
func (a *Address) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
