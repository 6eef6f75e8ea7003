package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/provider"
	"github.com/ecommerce-api/internal/queue"
	"github.com/ecommerce-api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAuditLog, c.handleAuditLog)
	mux.HandleFunc(queue.TaskLoyaltyAward, c.handleLoyaltyAward)
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
}

func (c *Consumer) handleAuditLog(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_audit_log_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.AuditLogPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_audit_log_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Entity) == "" || strings.TrimSpace(payload.Action) == "" {
		logger.Debugw("worker_audit_log_skip_invalid_payload", "entity", payload.Entity, "action", payload.Action)
		return nil
	}
	if err := c.AuditService.Write(payload); err != nil {
		logger.Warnw("worker_audit_log_write_failed", "entity", payload.Entity, "entity_id", payload.EntityID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleLoyaltyAward(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_loyalty_award_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LoyaltyAwardPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_loyalty_award_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.CustomerID) == "" {
		logger.Debugw("worker_loyalty_award_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.PaymentService == nil {
		logger.Warnw("worker_loyalty_award_skip_payment_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.PaymentService.AwardLoyalty(payload); err != nil {
		if errors.Is(err, service.ErrBadRequest) {
			logger.Warnw("worker_loyalty_award_skip_invalid_amount", "order_id", payload.OrderID, "amount", payload.Amount)
			return nil
		}
		logger.Warnw("worker_loyalty_award_failed", "customer_id", payload.CustomerID, "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_timeout_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_timeout_cancel_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	cancelled, err := c.OrderService.CancelExpired(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if !cancelled {
		logger.Debugw("worker_order_timeout_cancel_skip_not_pending", "order_id", payload.OrderID)
	}
	return nil
}
