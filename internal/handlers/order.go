// internal/handlers/order.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lapalette/backend/internal/models"
	"github.com/lapalette/backend/internal/services"
	"github.com/lapalette/backend/internal/utils"
)

type OrderHandler struct {
	orderService   *services.OrderService
	messageService *services.MessageService
}

func NewOrderHandler(orderService *services.OrderService, messageService *services.MessageService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		messageService: messageService,
	}
}

func orderIDParam(c *gin.Context) (int64, bool) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		utils.BadRequestResponse(c, "Invalid order id")
		return 0, false
	}
	return orderID, true
}

// GET /api/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders()
	if err != nil {
		utils.InternalErrorResponse(c, err, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, items, err := h.orderService.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order not found")
			return
		}
		utils.InternalErrorResponse(c, err, "Failed to fetch order detail")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
	})
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	// Validation order matters: customer fields, then items, then shop
	if req.Customer.Name == "" || req.Customer.Email == "" || req.Customer.Address == "" {
		utils.BadRequestResponse(c, "Missing required customer fields")
		return
	}
	if len(req.Items) == 0 {
		utils.BadRequestResponse(c, "Order must contain at least one item")
		return
	}
	if req.ShopID <= 0 {
		utils.BadRequestResponse(c, "shopId is required and must be a valid number")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, "Invalid order payload", validationErrors)
		return
	}

	response, err := h.orderService.CreateOrder(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidShop) {
			utils.BadRequestResponse(c, "Invalid shopId")
			return
		}
		utils.InternalErrorResponse(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// POST /api/orders/:id/stock-confirm
func (h *OrderHandler) ConfirmStock(c *gin.Context) {
	h.setStatus(c, models.OrderStatusAwaitingPayment, "Failed to confirm stock")
}

// POST /api/orders/:id/pay
func (h *OrderHandler) Pay(c *gin.Context) {
	h.setStatus(c, models.OrderStatusPaidPrepareOrder, "Failed to mark order as paid")
}

// POST /api/orders/:id/prepare
func (h *OrderHandler) Prepare(c *gin.Context) {
	h.setStatus(c, models.OrderStatusPreparingOrder, "Failed to mark order as preparing")
}

// POST /api/orders/:id/ready-for-delivery
func (h *OrderHandler) ReadyForDelivery(c *gin.Context) {
	h.setStatus(c, models.OrderStatusReadyForDelivery, "Failed to mark order as ready for delivery")
}

func (h *OrderHandler) setStatus(c *gin.Context, status models.OrderStatus, failureMessage string) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	update, err := h.orderService.SetStatus(orderID, status)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order not found")
			return
		}
		utils.InternalErrorResponse(c, err, failureMessage)
		return
	}

	c.JSON(http.StatusOK, update)
}

// POST /api/orders/deliver/:publicCode
func (h *OrderHandler) Deliver(c *gin.Context) {
	publicCode := strings.TrimSpace(c.Param("publicCode"))
	if publicCode == "" {
		utils.BadRequestResponse(c, "Invalid order code")
		return
	}

	update, err := h.orderService.SetStatusByCode(publicCode, models.OrderStatusCompleted)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order not found")
			return
		}
		utils.InternalErrorResponse(c, err, "Failed to confirm delivery")
		return
	}

	c.JSON(http.StatusOK, update)
}

// GET /api/orders/:id/messages
func (h *OrderHandler) GetMessages(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	messages, err := h.messageService.ListMessages(orderID)
	if err != nil {
		utils.InternalErrorResponse(c, err, "Failed to fetch order messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// POST /api/orders/:id/messages
func (h *OrderHandler) CreateMessage(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req services.AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	message, err := h.messageService.AppendMessage(orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSender):
			utils.BadRequestResponse(c, "Invalid senderType")
		case errors.Is(err, services.ErrEmptyMessage):
			utils.BadRequestResponse(c, "Message is required")
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFoundResponse(c, "Order not found")
		default:
			utils.InternalErrorResponse(c, err, "Failed to create order message")
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}

// POST /api/orders/:id/read/client
func (h *OrderHandler) MarkReadByClient(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	updated, err := h.messageService.MarkReadByClient(orderID)
	if err != nil {
		utils.InternalErrorResponse(c, err, "Failed to mark messages read (client)")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// POST /api/orders/:id/read/staff
func (h *OrderHandler) MarkReadByStaff(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	updated, err := h.messageService.MarkReadByStaff(orderID)
	if err != nil {
		utils.InternalErrorResponse(c, err, "Failed to mark messages read (staff)")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
