package service

import (
	"encoding/json"

	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/queue"
	"github.com/ecommerce-api/internal/repository"
)

// AuditService 审计日志记录
// 队列启用时异步写入，否则在当前请求内同步写入
type AuditService struct {
	auditRepo   repository.AuditLogRepository
	queueClient *queue.Client
}

// NewAuditService 创建审计服务
func NewAuditService(auditRepo repository.AuditLogRepository, queueClient *queue.Client) *AuditService {
	return &AuditService{auditRepo: auditRepo, queueClient: queueClient}
}

// Record 记录实体变更，失败只记录日志
func (s *AuditService) Record(entity, entityID, action string, oldValue, newValue interface{}, userID string) {
	if s == nil {
		return
	}
	payload := queue.AuditLogPayload{
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		OldValues: marshalAuditValue(oldValue),
		NewValues: marshalAuditValue(newValue),
		UserID:    userID,
	}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueAuditLog(payload)
		if err == nil {
			return
		}
		logger.Warnw("audit_log_enqueue_failed", "entity", entity, "entity_id", entityID, "error", err)
	}
	if err := s.Write(payload); err != nil {
		logger.Warnw("audit_log_write_failed", "entity", entity, "entity_id", entityID, "error", err)
	}
}

// Write 直接写入审计日志（异步任务消费时调用）
func (s *AuditService) Write(payload queue.AuditLogPayload) error {
	if s == nil || s.auditRepo == nil {
		return nil
	}
	return s.auditRepo.Create(&models.AuditLog{
		Entity:    payload.Entity,
		EntityID:  payload.EntityID,
		Action:    payload.Action,
		OldValues: payload.OldValues,
		NewValues: payload.NewValues,
		UserID:    payload.UserID,
	})
}

// List 审计日志列表
func (s *AuditService) List(filter repository.AuditLogListFilter) ([]models.AuditLog, int64, error) {
	return s.auditRepo.List(filter)
}

func marshalAuditValue(value interface{}) string {
	if value == nil {
		return ""
	}
	body, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(body)
}
