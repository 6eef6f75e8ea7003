package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/events"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/queue"
	"github.com/ecommerce-api/internal/repository"

	"gorm.io/gorm"
)

const (
	msgCartEmpty          = "Cart is empty"
	msgInvalidOrderStatus = "Invalid order status"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	cartRepo      repository.CartRepository
	inventoryRepo repository.InventoryRepository
	addressRepo   repository.AddressRepository
	shipmentRepo  repository.ShipmentRepository
	couponService *CouponService
	audit         *AuditService
	queueClient   *queue.Client
	publisher     events.Publisher
	expireMinutes int
	now           func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, inventoryRepo repository.InventoryRepository, addressRepo repository.AddressRepository, shipmentRepo repository.ShipmentRepository, couponService *CouponService, audit *AuditService, queueClient *queue.Client, publisher events.Publisher, expireMinutes int) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		inventoryRepo: inventoryRepo,
		addressRepo:   addressRepo,
		shipmentRepo:  shipmentRepo,
		couponService: couponService,
		audit:         audit,
		queueClient:   queueClient,
		publisher:     publisher,
		expireMinutes: expireMinutes,
		now:           time.Now,
	}
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	BillingAddressID  *string `json:"billing_address_id"`
	ShippingAddressID *string `json:"shipping_address_id"`
	CouponCode        string  `json:"coupon_code" validate:"max=50"`
	Notes             string  `json:"notes" validate:"max=1000"`
}

// UpdateOrderStatusInput 修改订单状态输入
type UpdateOrderStatusInput struct {
	Status         string `json:"status" validate:"required"`
	TrackingNumber string `json:"tracking_number" validate:"max=100"`
}

// CreateFromCart 将购物车转为订单
// 扣减库存、写入订单与库存占用、核销优惠券、清空购物车在同一事务内完成
func (s *OrderService) CreateFromCart(customerID string, input CreateOrderInput) (*OrderDTO, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, BadRequest(msgCartEmpty)
	}
	billingID, err := s.resolveAddress(customerID, input.BillingAddressID)
	if err != nil {
		return nil, err
	}
	shippingID, err := s.resolveAddress(customerID, input.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		CustomerID:        customerID,
		Status:            constants.OrderStatusPendingPayment,
		Tax:               models.ZeroMoney(),
		Shipping:          models.ZeroMoney(),
		BillingAddressID:  billingID,
		ShippingAddressID: shippingID,
		Notes:             strings.TrimSpace(input.Notes),
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		items := make([]models.OrderItem, 0, len(cart.Items))
		subTotal := models.ZeroMoney()

		for _, line := range cart.Items {
			product, err := productRepo.GetActiveByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return NotFound("Product", line.ProductID)
			}
			if product.StockQuantity < line.Quantity {
				return BadRequest(fmt.Sprintf("Insufficient stock for product: %s", product.Name))
			}
			affected, err := productRepo.DecrementStock(product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return BadRequest(fmt.Sprintf("Insufficient stock for product: %s", product.Name))
			}
			if err := s.inventoryRepo.WithTx(tx).AdjustQuantity(product.ID, -line.Quantity); err != nil {
				return err
			}
			item := models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    line.Quantity,
			}
			items = append(items, item)
			subTotal = subTotal.Add(item.LineTotal())
		}

		coupon, discount, err := s.couponService.Quote(tx, input.CouponCode, subTotal, now)
		if err != nil {
			return err
		}
		order.SubTotal = subTotal
		order.Discount = discount
		order.GrandTotal = subTotal.Sub(discount)
		order.TotalAmount = order.GrandTotal
		if coupon != nil {
			order.CouponCode = coupon.Code
		}

		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}

		expiresAt := now.Add(time.Duration(positiveOr(s.expireMinutes, 30)) * time.Minute)
		reservations := make([]models.InventoryReservation, 0, len(items))
		for _, item := range items {
			reservations = append(reservations, models.InventoryReservation{
				ProductID: item.ProductID,
				OrderID:   order.ID,
				Quantity:  item.Quantity,
				ExpiresAt: expiresAt,
			})
		}
		if err := s.inventoryRepo.WithTx(tx).CreateReservations(reservations); err != nil {
			return err
		}
		if err := s.couponService.Redeem(tx, coupon, customerID, order.ID, discount); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearItems(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	invalidateProducts(orderProductIDs(order)...)
	logger.Infow("order_created", "order_id", order.ID, "customer_id", customerID, "total", order.TotalAmount.String())
	s.audit.Record("Order", order.ID, constants.AuditActionInsert, nil, order, customerID)
	publishEvent(s.publisher, constants.EventOrderCreated, order.ID, map[string]interface{}{
		"customer_id":  customerID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
		"item_count":   len(order.Items),
	})
	if err := s.queueClient.EnqueueOrderTimeoutCancel(
		queue.OrderTimeoutCancelPayload{OrderID: order.ID},
		time.Duration(positiveOr(s.expireMinutes, 30))*time.Minute,
	); err != nil {
		logger.Warnw("order_timeout_enqueue_failed", "order_id", order.ID, "error", err)
	}

	dto := toOrderDTO(order)
	return &dto, nil
}

// UpdateStatus 管理员修改订单状态（不校验流转顺序）
// 取消仍持有库存占用的订单时回补库存
func (s *OrderService) UpdateStatus(orderID string, input UpdateOrderStatusInput, actorID string) error {
	status, ok := ParseOrderStatus(input.Status)
	if !ok {
		return BadRequest(msgInvalidOrderStatus)
	}
	now := s.now()

	var (
		order    *models.Order
		previous string
		released []string
	)
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		var err error
		order, err = orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return NotFound("Order", orderID)
		}
		previous = order.Status
		if status == constants.OrderStatusCancelled && previous == constants.OrderStatusPendingPayment {
			released, err = s.releaseStock(tx, order.ID)
			if err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(order.ID, status, map[string]interface{}{"updated_at": now}); err != nil {
			return err
		}
		if status == constants.OrderStatusShipped {
			return s.shipmentRepo.WithTx(tx).Create(&models.Shipment{
				OrderID:        order.ID,
				TrackingNumber: strings.TrimSpace(input.TrackingNumber),
				Status:         constants.ShipmentStatusShipped,
				ShippedAt:      &now,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateProducts(released...)
	s.audit.Record("Order", order.ID, constants.AuditActionUpdate,
		map[string]string{"status": previous},
		map[string]string{"status": status},
		actorID,
	)
	publishEvent(s.publisher, constants.EventOrderStatusChanged, order.ID, map[string]string{
		"from": previous,
		"to":   status,
	})
	return nil
}

// CancelExpired 取消超时未支付订单并回补库存（非待支付状态时忽略）
func (s *OrderService) CancelExpired(orderID string) (bool, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return false, err
	}
	if order == nil || order.Status != constants.OrderStatusPendingPayment {
		return false, nil
	}

	cancelled := false
	var released []string
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.orderRepo.WithTx(tx).UpdateStatusFrom(order.ID, constants.OrderStatusPendingPayment, constants.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}
		cancelled = true
		released, err = s.releaseStock(tx, order.ID)
		return err
	})
	if err != nil || !cancelled {
		return false, err
	}

	invalidateProducts(released...)
	logger.Infow("order_timeout_cancelled", "order_id", order.ID)
	publishEvent(s.publisher, constants.EventOrderStatusChanged, order.ID, map[string]string{
		"from": constants.OrderStatusPendingPayment,
		"to":   constants.OrderStatusCancelled,
	})
	return true, nil
}

// releaseStock 按订单剩余的库存占用回补库存，返回涉及的商品
// 占用删除为 0 行时说明库存已被回补过
func (s *OrderService) releaseStock(tx *gorm.DB, orderID string) ([]string, error) {
	inventoryRepo := s.inventoryRepo.WithTx(tx)
	reservations, err := inventoryRepo.ListReservationsByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, nil
	}
	deleted, err := inventoryRepo.DeleteReservationsByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, nil
	}
	productRepo := s.productRepo.WithTx(tx)
	productIDs := make([]string, 0, len(reservations))
	for _, reservation := range reservations {
		if err := productRepo.IncrementStock(reservation.ProductID, reservation.Quantity); err != nil {
			return nil, err
		}
		if err := inventoryRepo.AdjustQuantity(reservation.ProductID, reservation.Quantity); err != nil {
			return nil, err
		}
		productIDs = append(productIDs, reservation.ProductID)
	}
	return productIDs, nil
}

func orderProductIDs(order *models.Order) []string {
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func (s *OrderService) resolveAddress(customerID string, addressID *string) (*string, error) {
	if addressID == nil || strings.TrimSpace(*addressID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*addressID)
	address, err := s.addressRepo.GetByIDAndCustomer(id, customerID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, NotFound("Address", id)
	}
	return &address.ID, nil
}

// ParseOrderStatus 解析订单状态（不区分大小写）
func ParseOrderStatus(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, status := range constants.OrderStatuses {
		if strings.EqualFold(status, trimmed) {
			return status, true
		}
	}
	return "", false
}
