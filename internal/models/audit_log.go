package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditLog 实体变更审计日志
// 说明：由异步任务 audit:log 写入；队列关闭时在请求内同步写入。
type AuditLog struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Entity    string    `gorm:"type:varchar(100);index;not null" json:"entity"`
	EntityID  string    `gorm:"type:varchar(36);index;not null" json:"entity_id"`
	Action    string    `gorm:"type:varchar(20);index;not null" json:"action"`
	OldValues string    `gorm:"type:text" json:"old_values,omitempty"`
	NewValues string    `gorm:"type:text" json:"new_values,omitempty"`
	UserID    string    `gorm:"type:varchar(36);index;not null;default:''" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate 填充主键
func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
