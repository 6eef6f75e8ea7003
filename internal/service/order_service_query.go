package service

import (
	"time"

	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/repository"
)

// OrderItemDTO 订单项
type OrderItemDTO struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	UnitPrice   models.Money `json:"unit_price"`
	Quantity    int          `json:"quantity"`
	LineTotal   models.Money `json:"line_total"`
}

// OrderDTO 订单详情
type OrderDTO struct {
	ID                string         `json:"id"`
	CustomerID        string         `json:"customer_id"`
	Status            string         `json:"status"`
	SubTotal          models.Money   `json:"sub_total"`
	Tax               models.Money   `json:"tax"`
	Shipping          models.Money   `json:"shipping"`
	Discount          models.Money   `json:"discount"`
	GrandTotal        models.Money   `json:"grand_total"`
	TotalAmount       models.Money   `json:"total_amount"`
	CouponCode        string         `json:"coupon_code,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	BillingAddressID  *string        `json:"billing_address_id,omitempty"`
	ShippingAddressID *string        `json:"shipping_address_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	Items             []OrderItemDTO `json:"items"`
}

// OrderSummary 订单列表摘要
type OrderSummary struct {
	ID          string       `json:"id"`
	CustomerID  string       `json:"customer_id"`
	CreatedAt   time.Time    `json:"created_at"`
	Status      string       `json:"status"`
	TotalAmount models.Money `json:"total_amount"`
	ItemCount   int          `json:"item_count"`
}

// GetForCustomer 获取顾客自己的订单
func (s *OrderService) GetForCustomer(customerID, orderID string) (*OrderDTO, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFound("Order", orderID)
	}
	dto := toOrderDTO(order)
	return &dto, nil
}

// ListForCustomer 顾客订单列表（最新在前）
func (s *OrderService) ListForCustomer(customerID string) ([]OrderSummary, error) {
	orders, _, err := s.orderRepo.List(repository.OrderListFilter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	return toOrderSummaries(orders), nil
}

// ListAll 管理端订单列表（pageSize<=0 时不分页）
func (s *OrderService) ListAll(page, pageSize int, status string) ([]OrderSummary, int64, error) {
	filter := repository.OrderListFilter{Status: status}
	if pageSize > 0 {
		filter.Page, filter.PageSize = NormalizePage(page, pageSize)
	}
	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderSummaries(orders), total, nil
}

func toOrderDTO(order *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:                order.ID,
		CustomerID:        order.CustomerID,
		Status:            order.Status,
		SubTotal:          order.SubTotal,
		Tax:               order.Tax,
		Shipping:          order.Shipping,
		Discount:          order.Discount,
		GrandTotal:        order.GrandTotal,
		TotalAmount:       order.TotalAmount,
		CouponCode:        order.CouponCode,
		Notes:             order.Notes,
		BillingAddressID:  order.BillingAddressID,
		ShippingAddressID: order.ShippingAddressID,
		CreatedAt:         order.CreatedAt,
		Items:             make([]OrderItemDTO, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
		})
	}
	return dto
}

func toOrderSummaries(orders []models.Order) []OrderSummary {
	result := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderSummary{
			ID:          order.ID,
			CustomerID:  order.CustomerID,
			CreatedAt:   order.CreatedAt,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			ItemCount:   len(order.Items),
		})
	}
	return result
}
