package worker

import (
	"context"
	"errors"
	"time"

	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/service"
)

const (
	defaultLowStockScanInterval = 15 * time.Minute
	defaultLowStockThreshold    = 5
)

// LowStockMonitor 周期扫描低库存商品并输出告警日志
type LowStockMonitor struct {
	products  *service.ProductService
	threshold int
	interval  time.Duration
	done      chan struct{}
}

// NewLowStockMonitor 创建低库存巡检服务
func NewLowStockMonitor(products *service.ProductService, threshold, scanMinutes int) *LowStockMonitor {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	interval := defaultLowStockScanInterval
	if scanMinutes > 0 {
		interval = time.Duration(scanMinutes) * time.Minute
	}
	return &LowStockMonitor{
		products:  products,
		threshold: threshold,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Name 服务名称
func (m *LowStockMonitor) Name() string {
	return "low_stock_monitor"
}

// Start 启动巡检循环，直到 ctx 取消或 Stop 被调用
func (m *LowStockMonitor) Start(ctx context.Context) error {
	if m == nil || m.products == nil {
		return errors.New("low stock monitor not initialized")
	}
	m.ScanOnce()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.done:
			return nil
		case <-ticker.C:
			m.ScanOnce()
		}
	}
}

// Stop 停止巡检
func (m *LowStockMonitor) Stop(_ context.Context) error {
	if m == nil {
		return nil
	}
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	return nil
}

// ScanOnce 执行一次巡检，返回低库存商品数量
func (m *LowStockMonitor) ScanOnce() int {
	products, err := m.products.ListLowStock(m.threshold)
	if err != nil {
		logger.Warnw("worker_low_stock_scan_failed", "error", err)
		return 0
	}
	for _, product := range products {
		logger.Warnw("worker_low_stock_product",
			"product_id", product.ID,
			"name", product.Name,
			"stock_quantity", product.StockQuantity,
			"threshold", m.threshold,
		)
	}
	if len(products) > 0 {
		logger.Infow("worker_low_stock_scan_done", "count", len(products), "threshold", m.threshold)
	}
	return len(products)
}
