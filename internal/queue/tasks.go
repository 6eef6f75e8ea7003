package queue

import (
	"encoding/json"

	"github.com/ecommerce-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAuditLog 审计日志写入任务
	TaskAuditLog = constants.TaskAuditLog
	// TaskLoyaltyAward 积分发放任务
	TaskLoyaltyAward = constants.TaskLoyaltyAward
	// TaskOrderTimeoutCancel 超时取消任务
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
)

// AuditLogPayload 审计日志任务载荷
type AuditLogPayload struct {
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id"`
	Action    string `json:"action"`
	OldValues string `json:"old_values,omitempty"`
	NewValues string `json:"new_values,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// LoyaltyAwardPayload 积分发放任务载荷
type LoyaltyAwardPayload struct {
	CustomerID string `json:"customer_id"`
	OrderID    string `json:"order_id"`
	Amount     string `json:"amount"`
}

// OrderTimeoutCancelPayload 超时取消任务载荷
type OrderTimeoutCancelPayload struct {
	OrderID string `json:"order_id"`
}

// NewAuditLogTask 创建审计日志任务
func NewAuditLogTask(payload AuditLogPayload) (*asynq.Task, error) {
	return newJSONTask(TaskAuditLog, payload)
}

// NewLoyaltyAwardTask 创建积分发放任务
func NewLoyaltyAwardTask(payload LoyaltyAwardPayload) (*asynq.Task, error) {
	return newJSONTask(TaskLoyaltyAward, payload)
}

// NewOrderTimeoutCancelTask 创建超时取消任务
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderTimeoutCancel, payload)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
