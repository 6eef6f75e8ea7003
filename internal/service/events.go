package service

import (
	"context"
	"time"

	"github.com/ecommerce-api/internal/events"
	"github.com/ecommerce-api/internal/logger"
)

const eventPublishTimeout = 3 * time.Second

// publishEvent 投递领域事件，失败只记录日志
func publishEvent(publisher events.Publisher, eventType, aggregateID string, payload interface{}) {
	if publisher == nil {
		return
	}
	event, err := events.New(eventType, aggregateID, payload)
	if err != nil {
		logger.Warnw("event_build_failed", "type", eventType, "aggregate_id", aggregateID, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
	defer cancel()
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warnw("event_publish_failed", "type", eventType, "aggregate_id", aggregateID, "error", err)
	}
}
