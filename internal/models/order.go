// internal/models/order.go
package models

import (
	"time"
)

type Order struct {
	ID              int64       `json:"orderId" gorm:"primaryKey"`
	PublicOrderCode *string     `json:"publicOrderCode" gorm:"size:32;uniqueIndex"`
	CustomerName    string      `json:"customerName" gorm:"size:255;not null"`
	Email           string      `json:"email" gorm:"size:255;not null;index"`
	Phone           *string     `json:"phone" gorm:"size:50"`
	Address         string      `json:"address" gorm:"type:text;not null"`
	TotalAmount     float64     `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(40);not null;index"`
	PaymentMode     PaymentMode `json:"paymentMode" gorm:"type:varchar(20);not null;default:'ONLINE'"`
	ShopID          int64       `json:"shopId" gorm:"not null;index"`
	CreatedAt       time.Time   `json:"createdAt" gorm:"index"`

	// Relationships
	Items    []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Messages []OrderMessage `json:"messages,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem captures the unit price at order time; it never tracks later
// catalog price changes.
type OrderItem struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	OrderID   int64   `json:"orderId" gorm:"not null;index"`
	ProductID int64   `json:"productId" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
}

// OrderMessage is one entry in the two-party thread attached to an order.
// The sender's own read flag is set on insert; the other side's stays false
// until the matching bulk mark-read call.
type OrderMessage struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	OrderID        int64      `json:"orderId" gorm:"not null;index"`
	SenderType     SenderType `json:"senderType" gorm:"type:varchar(10);not null"`
	SenderName     *string    `json:"senderName" gorm:"size:255"`
	Message        string     `json:"message" gorm:"type:text;not null"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"index"`
	IsReadByClient bool       `json:"isReadByClient" gorm:"not null;default:false"`
	IsReadByStaff  bool       `json:"isReadByStaff" gorm:"not null;default:false"`
}
