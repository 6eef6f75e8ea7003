package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event 领域事件信封
type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// Publisher 领域事件发布接口
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// New 构建领域事件
func New(eventType, aggregateID string, payload interface{}) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     body,
	}, nil
}

// NopPublisher 关闭事件投递时使用
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close 无操作
func (NopPublisher) Close() error { return nil }
