// internal/models/common.go
package models

// Enums
type OrderStatus string

const (
	OrderStatusPendingStockConfirmation OrderStatus = "PENDING_STOCK_CONFIRMATION"
	OrderStatusAwaitingPayment          OrderStatus = "AWAITING_PAYMENT"
	OrderStatusPaidPrepareOrder         OrderStatus = "PAID_PREPARE_ORDER"
	OrderStatusPreparingOrder           OrderStatus = "PREPARING_ORDER"
	OrderStatusReadyForDelivery         OrderStatus = "READY_FOR_DELIVERY"
	OrderStatusCompleted                OrderStatus = "COMPLETED"
)

type PaymentMode string

const (
	PaymentModeOnline    PaymentMode = "ONLINE"
	PaymentModeCredit    PaymentMode = "CREDIT"
	PaymentModePayInShop PaymentMode = "PAY_IN_SHOP"
)

type SenderType string

const (
	SenderTypeClient SenderType = "CLIENT"
	SenderTypeStaff  SenderType = "STAFF"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleClient   UserRole = "CLIENT"
	UserRoleShop     UserRole = "SHOP"
	UserRoleDelivery UserRole = "DELIVERY"
)
