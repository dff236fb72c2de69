// internal/services/message_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lapalette/backend/internal/models"
)

// MessageService owns the per-order two-party thread. Messages are
// append-only; the two read flags are the only mutable fields.
type MessageService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type AppendMessageRequest struct {
	SenderType string  `json:"senderType"`
	SenderName *string `json:"senderName"`
	Message    string  `json:"message"`
}

func NewMessageService(db *gorm.DB, notifications *NotificationService) *MessageService {
	return &MessageService{
		db:            db,
		notifications: notifications,
	}
}

// AppendMessage stores a message and dispatches an email alert. The alert is
// fire-and-forget: its failure never reaches the caller.
func (s *MessageService) AppendMessage(orderID int64, req *AppendMessageRequest) (*models.OrderMessage, error) {
	senderType := models.SenderType(strings.ToUpper(strings.TrimSpace(req.SenderType)))
	if senderType != models.SenderTypeClient && senderType != models.SenderTypeStaff {
		return nil, ErrInvalidSender
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	// Ensure order exists and get the recipient info for the alert
	var order models.Order
	if err := s.db.Select("id", "public_order_code", "email").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	message := models.OrderMessage{
		OrderID:        orderID,
		SenderType:     senderType,
		SenderName:     req.SenderName,
		Message:        req.Message,
		IsReadByClient: senderType == models.SenderTypeClient,
		IsReadByStaff:  senderType == models.SenderTypeStaff,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("failed to create order message: %w", err)
	}

	go s.notifyNewMessage(&order, &message)

	return &message, nil
}

// ListMessages returns the whole thread, oldest first.
func (s *MessageService) ListMessages(orderID int64) ([]models.OrderMessage, error) {
	messages := make([]models.OrderMessage, 0)
	err := s.db.Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order messages: %w", err)
	}

	return messages, nil
}

// MarkReadByClient flags every message of the order as read on the client
// side, regardless of sender or prior value. Returns the rows touched.
func (s *MessageService) MarkReadByClient(orderID int64) (int64, error) {
	return s.markRead(orderID, "is_read_by_client")
}

// MarkReadByStaff is the staff-side counterpart of MarkReadByClient.
func (s *MessageService) MarkReadByStaff(orderID int64) (int64, error) {
	return s.markRead(orderID, "is_read_by_staff")
}

func (s *MessageService) markRead(orderID int64, column string) (int64, error) {
	result := s.db.Model(&models.OrderMessage{}).
		Where("order_id = ?", orderID).
		Update(column, true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (s *MessageService) notifyNewMessage(order *models.Order, message *models.OrderMessage) {
	orderCode := strconv.FormatInt(order.ID, 10)
	if order.PublicOrderCode != nil && *order.PublicOrderCode != "" {
		orderCode = *order.PublicOrderCode
	}

	senderName := ""
	if message.SenderName != nil {
		senderName = *message.SenderName
	}

	var err error
	if message.SenderType == models.SenderTypeClient {
		err = s.notifications.SendClientMessageAlert(orderCode, senderName, message.Message)
	} else {
		err = s.notifications.SendStaffMessageAlert(order.Email, orderCode, senderName, message.Message)
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"orderId":    order.ID,
			"senderType": message.SenderType,
		}).WithError(err).Error("Failed to send order message email alert")
	}
}
