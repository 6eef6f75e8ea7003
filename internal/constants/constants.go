package constants

// 角色常量
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// 订单状态常量
const (
	OrderStatusPendingPayment = "PendingPayment"
	OrderStatusPaid           = "Paid"
	OrderStatusProcessing     = "Processing"
	OrderStatusShipped        = "Shipped"
	OrderStatusCompleted      = "Completed"
	OrderStatusCancelled      = "Cancelled"
	OrderStatusRefunded       = "Refunded"
)

// OrderStatuses 所有合法订单状态
var OrderStatuses = []string{
	OrderStatusPendingPayment,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

// 支付状态常量
const (
	PaymentStatusInitiated  = "Initiated"
	PaymentStatusAuthorized = "Authorized"
	PaymentStatusCaptured   = "Captured"
	PaymentStatusFailed     = "Failed"
	PaymentStatusRefunded   = "Refunded"
)

// 支付默认值
const (
	PaymentDefaultCurrency = "USD"
	PaymentDefaultProvider = "Simulated"
)

// 发货状态常量
const (
	ShipmentStatusPending   = "Pending"
	ShipmentStatusPacked    = "Packed"
	ShipmentStatusShipped   = "Shipped"
	ShipmentStatusDelivered = "Delivered"
	ShipmentStatusReturned  = "Returned"
)

// 优惠券类型常量
const (
	DiscountTypePercentage = "Percentage"
	DiscountTypeFixed      = "Fixed"
)

// 审计动作常量
const (
	AuditActionInsert = "Insert"
	AuditActionUpdate = "Update"
	AuditActionDelete = "Delete"
)

// 队列常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskAuditLog           = "audit:log"
	TaskLoyaltyAward       = "loyalty:award"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
)

// 领域事件类型常量
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventPaymentCaptured    = "payment.captured"
)

// 验证码场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)
