package cache

import (
	"context"
	"strings"
	"time"
)

const productCacheTTL = 5 * time.Minute

// ProductKey 商品详情缓存 key
func ProductKey(productID string) string {
	return "product:" + strings.TrimSpace(productID)
}

// GetProduct 读取商品详情缓存
func GetProduct(ctx context.Context, productID string, dest interface{}) (bool, error) {
	if strings.TrimSpace(productID) == "" {
		return false, nil
	}
	return GetJSON(ctx, ProductKey(productID), dest)
}

// SetProduct 写入商品详情缓存
func SetProduct(ctx context.Context, productID string, value interface{}) error {
	if strings.TrimSpace(productID) == "" {
		return nil
	}
	return SetJSON(ctx, ProductKey(productID), value, productCacheTTL)
}

// InvalidateProduct 失效商品详情缓存
func InvalidateProduct(ctx context.Context, productIDs ...string) error {
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if strings.TrimSpace(id) == "" {
			continue
		}
		keys = append(keys, ProductKey(id))
	}
	return Del(ctx, keys...)
}
