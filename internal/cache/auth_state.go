package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecommerce-api/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// CustomerAuthState 顾客鉴权快照
// 仅用于 JWT 中间件在 Redis 中的快速校验，避免每次请求都查询数据库
type CustomerAuthState struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	UpdatedAt  int64  `json:"updated_at"`
}

func customerAuthStateKey(customerID string) string {
	return fmt.Sprintf("auth:customer:%s", customerID)
}

// BuildCustomerAuthState 从顾客模型构建鉴权快照
func BuildCustomerAuthState(customer *models.Customer) *CustomerAuthState {
	if customer == nil {
		return nil
	}
	return &CustomerAuthState{
		CustomerID: customer.ID,
		Email:      customer.Email,
		Role:       customer.Role,
		IsActive:   customer.IsActive,
		UpdatedAt:  time.Now().Unix(),
	}
}

// GetCustomerAuthState 获取顾客鉴权快照
func GetCustomerAuthState(ctx context.Context, customerID string) (*CustomerAuthState, bool, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, false, nil
	}
	var state CustomerAuthState
	hit, err := GetJSON(ctx, customerAuthStateKey(customerID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCustomerAuthState 写入顾客鉴权快照
func SetCustomerAuthState(ctx context.Context, state *CustomerAuthState) error {
	if state == nil || state.CustomerID == "" {
		return nil
	}
	return SetJSON(ctx, customerAuthStateKey(state.CustomerID), state, authStateCacheTTL)
}

// DelCustomerAuthState 删除顾客鉴权快照
func DelCustomerAuthState(ctx context.Context, customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return nil
	}
	return Del(ctx, customerAuthStateKey(customerID))
}
