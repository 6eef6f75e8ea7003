package service

import (
	"errors"
	"testing"

	"github.com/ecommerce-api/internal/constants"
	"github.com/ecommerce-api/internal/models"
	"github.com/ecommerce-api/internal/queue"
)

func TestPaymentProcessCapturesOrder(t *testing.T) {
	f := newServiceFixture(t, "payment_process")
	customer := f.createCustomer(t, "payer@example.com")
	category := f.createCategory(t, "Camera")
	product := f.createProduct(t, category.ID, "Lens", 120.75, 2)

	if _, err := f.carts.AddItem(customer.ID, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := f.orders.CreateFromCart(customer.ID, CreateOrderInput{})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	result, err := f.payments.Process(customer.ID, ProcessPaymentInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("process payment failed: %v", err)
	}
	if !result.Success || result.PaymentID == "" || result.Message != msgPaymentProcessed {
		t.Fatalf("unexpected result %+v", result)
	}

	payment, err := f.payments.GetByOrderID(customer.ID, order.ID)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusCaptured || payment.Amount.String() != "120.75" {
		t.Fatalf("unexpected payment %+v", payment)
	}
	if payment.Currency != "USD" || payment.Provider != "Simulated" || payment.TransactionRef == "" {
		t.Fatalf("unexpected payment defaults %+v", payment)
	}

	got, err := f.orders.GetForCustomer(customer.ID, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusPaid {
		t.Fatalf("order status want Paid got %s", got.Status)
	}

	var reservations int64
	f.db.Model(&models.InventoryReservation{}).Where("order_id = ?", order.ID).Count(&reservations)
	if reservations != 0 {
		t.Fatalf("reservations want 0 got %d", reservations)
	}

	var stored models.Customer
	if err := f.db.First(&stored, "id = ?", customer.ID).Error; err != nil {
		t.Fatalf("load customer failed: %v", err)
	}
	if stored.LoyaltyPoints != 120 {
		t.Fatalf("loyalty points want 120 got %d", stored.LoyaltyPoints)
	}

	// 已支付订单不会被超时任务取消
	cancelled, err := f.orders.CancelExpired(order.ID)
	if err != nil || cancelled {
		t.Fatalf("paid order must not be cancelled got %v %v", cancelled, err)
	}
}

func TestPaymentProcessUnknownOrder(t *testing.T) {
	f := newServiceFixture(t, "payment_unknown_order")
	customer := f.createCustomer(t, "nobody@example.com")

	if _, err := f.payments.Process(customer.ID, ProcessPaymentInput{OrderID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want not found got %v", err)
	}
	if _, err := f.payments.Process(customer.ID, ProcessPaymentInput{}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("missing order id want bad request got %v", err)
	}
	if _, err := f.payments.GetByOrderID(customer.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("payment lookup want not found got %v", err)
	}
}

func TestAwardLoyaltyFloorsAmount(t *testing.T) {
	f := newServiceFixture(t, "payment_loyalty")
	customer := f.createCustomer(t, "points@example.com")

	if err := f.payments.AwardLoyalty(queue.LoyaltyAwardPayload{CustomerID: customer.ID, Amount: "19.99"}); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if err := f.payments.AwardLoyalty(queue.LoyaltyAwardPayload{CustomerID: customer.ID, Amount: "0.50"}); err != nil {
		t.Fatalf("award small amount failed: %v", err)
	}
	if err := f.payments.AwardLoyalty(queue.LoyaltyAwardPayload{CustomerID: customer.ID, Amount: "abc"}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("invalid amount want bad request got %v", err)
	}

	var stored models.Customer
	if err := f.db.First(&stored, "id = ?", customer.ID).Error; err != nil {
		t.Fatalf("load customer failed: %v", err)
	}
	if stored.LoyaltyPoints != 19 {
		t.Fatalf("loyalty points want 19 got %d", stored.LoyaltyPoints)
	}
}

func TestPaymentProcessRejectsCancelledOrder(t *testing.T) {
	f := newServiceFixture(t, "payment_cancelled_order")
	customer := f.createCustomer(t, "late-payer@example.com")
	category := f.createCategory(t, "Audio")
	product := f.createProduct(t, category.ID, "Speaker", 60, 5)

	if _, err := f.carts.AddItem(customer.ID, product.ID, 5); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := f.orders.CreateFromCart(customer.ID, CreateOrderInput{})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if cancelled, err := f.orders.CancelExpired(order.ID); err != nil || !cancelled {
		t.Fatalf("cancel want true got %v %v", cancelled, err)
	}

	_, err = f.payments.Process(customer.ID, ProcessPaymentInput{OrderID: order.ID})
	if !errors.Is(err, ErrDomain) {
		t.Fatalf("want domain error got %v", err)
	}
	if err.Error() != msgOrderCancelled {
		t.Fatalf("message want %q got %q", msgOrderCancelled, err.Error())
	}

	got, err := f.orders.GetForCustomer(customer.ID, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want Cancelled got %s", got.Status)
	}
	var payments int64
	f.db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&payments)
	if payments != 0 {
		t.Fatalf("payments want 0 got %d", payments)
	}
	if got := f.stockOf(t, product.ID); got != 5 {
		t.Fatalf("stock want 5 got %d", got)
	}
}

func TestPaymentProcessPaidOrderKeepsStatus(t *testing.T) {
	f := newServiceFixture(t, "payment_repeat")
	customer := f.createCustomer(t, "twice@example.com")
	category := f.createCategory(t, "Books")
	product := f.createProduct(t, category.ID, "Atlas", 15, 3)

	if _, err := f.carts.AddItem(customer.ID, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := f.orders.CreateFromCart(customer.ID, CreateOrderInput{})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := f.payments.Process(customer.ID, ProcessPaymentInput{OrderID: order.ID}); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}
	if err := f.orders.UpdateStatus(order.ID, UpdateOrderStatusInput{Status: "Shipped"}, "admin"); err != nil {
		t.Fatalf("ship failed: %v", err)
	}
	if _, err := f.payments.Process(customer.ID, ProcessPaymentInput{OrderID: order.ID}); err != nil {
		t.Fatalf("second payment failed: %v", err)
	}
	got, err := f.orders.GetForCustomer(customer.ID, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusShipped {
		t.Fatalf("status want Shipped got %s", got.Status)
	}
}
