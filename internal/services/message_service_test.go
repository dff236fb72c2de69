// internal/services/message_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lapalette/backend/internal/config"
	"github.com/lapalette/backend/internal/models"
)

func newMessageService(db *gorm.DB) *MessageService {
	// No SMTP credentials configured, so alerts are logged no-ops
	return NewMessageService(db, NewNotificationService(&config.Config{}))
}

func createTestOrder(t *testing.T, db *gorm.DB) *CreateOrderResponse {
	t.Helper()

	shop := seedShop(t, db)
	resp, err := NewOrderService(db).CreateOrder(validOrderRequest(shop.ID))
	require.NoError(t, err)
	return resp
}

func TestAppendMessageClient(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db)
	service := newMessageService(db)

	message, err := service.AppendMessage(order.OrderID, &AppendMessageRequest{
		SenderType: "client",
		SenderName: ptr("Marie"),
		Message:    "Pouvez-vous confirmer le stock ?",
	})
	require.NoError(t, err)

	// Lowercase input is normalized, and the sender's own side starts read
	assert.Equal(t, models.SenderTypeClient, message.SenderType)
	assert.True(t, message.IsReadByClient)
	assert.False(t, message.IsReadByStaff)
	assert.Equal(t, order.OrderID, message.OrderID)
}

func TestAppendMessageStaff(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db)
	service := newMessageService(db)

	message, err := service.AppendMessage(order.OrderID, &AppendMessageRequest{
		SenderType: "STAFF",
		Message:    "Stock confirmé, vous pouvez régler la commande.",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SenderTypeStaff, message.SenderType)
	assert.False(t, message.IsReadByClient)
	assert.True(t, message.IsReadByStaff)
	assert.Nil(t, message.SenderName)
}

func TestAppendMessageRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db)
	service := newMessageService(db)

	_, err := service.AppendMessage(order.OrderID, &AppendMessageRequest{
		SenderType: "ROBOT",
		Message:    "hello",
	})
	require.ErrorIs(t, err, ErrInvalidSender)

	_, err = service.AppendMessage(order.OrderID, &AppendMessageRequest{
		SenderType: "CLIENT",
		Message:    "   ",
	})
	require.ErrorIs(t, err, ErrEmptyMessage)

	_, err = service.AppendMessage(order.OrderID+100, &AppendMessageRequest{
		SenderType: "CLIENT",
		Message:    "hello",
	})
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListMessagesOldestFirst(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db)
	service := newMessageService(db)

	now := time.Now()
	rows := []models.OrderMessage{
		{OrderID: order.OrderID, SenderType: models.SenderTypeStaff, Message: "second", CreatedAt: now},
		{OrderID: order.OrderID, SenderType: models.SenderTypeClient, Message: "first", CreatedAt: now.Add(-time.Hour)},
		{OrderID: order.OrderID, SenderType: models.SenderTypeClient, Message: "third", CreatedAt: now.Add(time.Hour)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	messages, err := service.ListMessages(order.OrderID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Message)
	assert.Equal(t, "second", messages[1].Message)
	assert.Equal(t, "third", messages[2].Message)
}

func TestListMessagesEmptyThread(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db)
	service := newMessageService(db)

	messages, err := service.ListMessages(order.OrderID)
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestMarkRead(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db)
	service := newMessageService(db)

	for _, m := range []AppendMessageRequest{
		{SenderType: "CLIENT", Message: "un"},
		{SenderType: "CLIENT", Message: "deux"},
		{SenderType: "STAFF", Message: "trois"},
	} {
		_, err := service.AppendMessage(order.OrderID, &m)
		require.NoError(t, err)
	}

	// The bulk update touches every message of the order
	updated, err := service.MarkReadByStaff(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	var unread int64
	require.NoError(t, db.Model(&models.OrderMessage{}).
		Where("order_id = ? AND is_read_by_staff = ?", order.OrderID, false).
		Count(&unread).Error)
	assert.Zero(t, unread)

	// The client side is untouched by the staff call
	var unreadByClient int64
	require.NoError(t, db.Model(&models.OrderMessage{}).
		Where("order_id = ? AND is_read_by_client = ?", order.OrderID, false).
		Count(&unreadByClient).Error)
	assert.Equal(t, int64(1), unreadByClient)

	updated, err = service.MarkReadByClient(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
}

func TestMarkReadNoMessages(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db)
	service := newMessageService(db)

	updated, err := service.MarkReadByClient(order.OrderID)
	require.NoError(t, err)
	assert.Zero(t, updated)
}
