package service

import (
	"strings"
	"time"

	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/events"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/queue"
	"github.com/ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgPaymentProcessed = "Payment processed successfully"
	msgOrderCancelled   = "Order has been cancelled"
)

// PaymentService 支付服务（模拟扣款，不对接外部网关）
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	customerRepo  repository.CustomerRepository
	audit         *AuditService
	queueClient   *queue.Client
	publisher     events.Publisher
	now           func() time.Time
}

// NewPaymentService 创建支付服务
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, inventoryRepo repository.InventoryRepository, customerRepo repository.CustomerRepository, audit *AuditService, queueClient *queue.Client, publisher events.Publisher) *PaymentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &PaymentService{
		paymentRepo:   paymentRepo,
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		customerRepo:  customerRepo,
		audit:         audit,
		queueClient:   queueClient,
		publisher:     publisher,
		now:           time.Now,
	}
}

// ProcessPaymentInput 支付请求
// 卡片字段仅做格式占位，不会被保存
type ProcessPaymentInput struct {
	OrderID    string `json:"order_id" validate:"required"`
	Provider   string `json:"provider" validate:"max=50"`
	CardNumber string `json:"card_number" validate:"max=32"`
	CardHolder string `json:"card_holder" validate:"max=100"`
	Expiry     string `json:"expiry" validate:"max=7"`
	CVV        string `json:"cvv" validate:"max=4"`
}

// PaymentResult 支付结果
type PaymentResult struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"payment_id"`
	Message   string `json:"message"`
}

// PaymentDTO 支付记录
type PaymentDTO struct {
	ID             string       `json:"id"`
	OrderID        string       `json:"order_id"`
	Amount         models.Money `json:"amount"`
	Currency       string       `json:"currency"`
	Status         string       `json:"status"`
	Provider       string       `json:"provider"`
	TransactionRef string       `json:"transaction_ref"`
	CapturedAt     *time.Time   `json:"captured_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Process 处理订单支付
func (s *PaymentService) Process(customerID string, input ProcessPaymentInput) (*PaymentResult, error) {
	input.OrderID = strings.TrimSpace(input.OrderID)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByIDAndCustomer(input.OrderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFound("Order", input.OrderID)
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, Domain(msgOrderCancelled)
	}

	provider := strings.TrimSpace(input.Provider)
	if provider == "" {
		provider = constants.PaymentDefaultProvider
	}
	now := s.now()
	payment := &models.Payment{
		OrderID:        order.ID,
		Amount:         order.TotalAmount,
		Currency:       constants.PaymentDefaultCurrency,
		Status:         constants.PaymentStatusCaptured,
		Provider:       provider,
		TransactionRef: uuid.NewString(),
		CapturedAt:     &now,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		affected, err := orderRepo.UpdateStatusFrom(order.ID, constants.OrderStatusPendingPayment, constants.OrderStatusPaid)
		if err != nil {
			return err
		}
		if affected == 0 {
			// 已支付或已发货的订单保持原状态，仅追加支付记录
			current, err := orderRepo.GetByID(order.ID)
			if err != nil {
				return err
			}
			if current == nil || current.Status == constants.OrderStatusCancelled {
				return Domain(msgOrderCancelled)
			}
		}
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return err
		}
		_, err = s.inventoryRepo.WithTx(tx).DeleteReservationsByOrder(order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("payment_captured", "order_id", order.ID, "payment_id", payment.ID, "amount", payment.Amount.String())
	s.audit.Record("Payment", payment.ID, constants.AuditActionInsert, nil, toPaymentDTO(payment), customerID)
	s.awardLoyalty(customerID, order.ID, payment.Amount)
	publishEvent(s.publisher, constants.EventPaymentCaptured, order.ID, map[string]interface{}{
		"payment_id":  payment.ID,
		"customer_id": customerID,
		"amount":      payment.Amount,
		"currency":    payment.Currency,
	})

	return &PaymentResult{Success: true, PaymentID: payment.ID, Message: msgPaymentProcessed}, nil
}

// GetByOrderID 获取订单最近一次支付记录
func (s *PaymentService) GetByOrderID(customerID, orderID string) (*PaymentDTO, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFound("Payment", orderID)
	}
	payment, err := s.paymentRepo.GetLatestByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, NotFound("Payment", orderID)
	}
	dto := toPaymentDTO(payment)
	return &dto, nil
}

// AwardLoyalty 按支付金额发放积分（向下取整，每 1 元 1 分）
func (s *PaymentService) AwardLoyalty(payload queue.LoyaltyAwardPayload) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(payload.Amount))
	if err != nil {
		return BadRequest("invalid loyalty amount")
	}
	points := int(amount.Floor().IntPart())
	if points <= 0 {
		return nil
	}
	return s.customerRepo.AddLoyaltyPoints(payload.CustomerID, points)
}

func (s *PaymentService) awardLoyalty(customerID, orderID string, amount models.Money) {
	payload := queue.LoyaltyAwardPayload{
		CustomerID: customerID,
		OrderID:    orderID,
		Amount:     amount.String(),
	}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueLoyaltyAward(payload)
		if err == nil {
			return
		}
		logger.Warnw("loyalty_award_enqueue_failed", "order_id", orderID, "error", err)
	}
	if err := s.AwardLoyalty(payload); err != nil {
		logger.Warnw("loyalty_award_failed", "order_id", orderID, "customer_id", customerID, "error", err)
	}
}

func toPaymentDTO(payment *models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:             payment.ID,
		OrderID:        payment.OrderID,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
		Status:         payment.Status,
		Provider:       payment.Provider,
		TransactionRef: payment.TransactionRef,
		CapturedAt:     payment.CapturedAt,
		CreatedAt:      payment.CreatedAt,
	}
}
