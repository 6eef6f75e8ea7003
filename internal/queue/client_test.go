package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ecommerce-api/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueAuditLog(AuditLogPayload{Entity: "Product"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueOrderTimeoutCancel(OrderTimeoutCancelPayload{OrderID: "o1"}, time.Minute); err != nil {
		t.Fatalf("disabled delayed enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("addr want 127.0.0.1:6379 got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("concurrency want 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("default queue weight want 1 got %d", cfg.Queues[DefaultQueue])
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, DB: 2, Concurrency: 3, Queues: map[string]int{"critical": 5}})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 3 || cfg.Queues["critical"] != 5 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}

func TestNewTasksCarryJSONPayload(t *testing.T) {
	task, err := NewLoyaltyAwardTask(LoyaltyAwardPayload{CustomerID: "c1", OrderID: "o1", Amount: "12.50"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskLoyaltyAward {
		t.Fatalf("type want %s got %s", TaskLoyaltyAward, task.Type())
	}
	var payload LoyaltyAwardPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.Amount != "12.50" || payload.CustomerID != "c1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
