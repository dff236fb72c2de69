// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lapalette/backend/internal/database"
	"github.com/lapalette/backend/internal/models"
)

const recentOrdersLimit = 50

type OrderService struct {
	db *gorm.DB
}

type CreateOrderCustomer struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required"`
	Phone   *string `json:"phone"`
	Address string  `json:"address" validate:"required"`
}

type CreateOrderItem struct {
	ProductID int64   `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	Customer    CreateOrderCustomer `json:"customer"`
	Items       []CreateOrderItem   `json:"items" validate:"required,min=1,dive"`
	PaymentMode models.PaymentMode  `json:"paymentMode" validate:"omitempty,oneof=ONLINE CREDIT PAY_IN_SHOP"`
	ShopID      int64               `json:"shopId" validate:"required,gt=0"`
}

type CreateOrderResponse struct {
	OrderID         int64              `json:"orderId"`
	PublicOrderCode string             `json:"publicOrderCode"`
	Status          models.OrderStatus `json:"status"`
	PaymentMode     models.PaymentMode `json:"paymentMode"`
	ShopID          int64              `json:"shopId"`
}

type StatusUpdate struct {
	OrderID         int64              `json:"orderId"`
	PublicOrderCode *string            `json:"publicOrderCode"`
	Status          models.OrderStatus `json:"status"`
}

// OrderSummary is one row of the back-office order list: the order itself
// plus shop, matching customer profile, and message-thread aggregates.
type OrderSummary struct {
	OrderID              int64              `json:"orderId"`
	PublicOrderCode      *string            `json:"publicOrderCode"`
	CreatedAt            time.Time          `json:"createdAt"`
	CustomerName         string             `json:"customerName"`
	Email                string             `json:"email"`
	TotalAmount          float64            `json:"totalAmount"`
	Status               models.OrderStatus `json:"status"`
	PaymentMode          models.PaymentMode `json:"paymentMode"`
	ShopID               int64              `json:"shopId"`
	ShopCode             *string            `json:"shopCode"`
	ShopName             *string            `json:"shopName"`
	CustomerCode         *string            `json:"customerCode"`
	CustomerCompanyName  *string            `json:"customerCompanyName"`
	CustomerContactName  *string            `json:"customerContactName"`
	CustomerAddressLine1 *string            `json:"customerAddressLine1"`
	CustomerAddressLine2 *string            `json:"customerAddressLine2"`
	CustomerPostalCode   *string            `json:"customerPostalCode"`
	CustomerCity         *string            `json:"customerCity"`
	CustomerCountry      *string            `json:"customerCountry"`
	CustomerVatNumber    *string            `json:"customerVatNumber"`
	CustomerSiret        *string            `json:"customerSiret"`
	CustomerApeCode      *string            `json:"customerApeCode"`
	MessageCount         int64              `json:"messageCount"`
	HasNewForStaff       bool               `json:"hasNewForStaff"`
	HasNewForClient      bool               `json:"hasNewForClient"`
}

// OrderDetail is the single-order view: same enrichment as the list rows
// minus message aggregates, plus phone and delivery address.
type OrderDetail struct {
	OrderID              int64              `json:"orderId"`
	PublicOrderCode      *string            `json:"publicOrderCode"`
	CreatedAt            time.Time          `json:"createdAt"`
	CustomerName         string             `json:"customerName"`
	Email                string             `json:"email"`
	Phone                *string            `json:"phone"`
	Address              string             `json:"address"`
	TotalAmount          float64            `json:"totalAmount"`
	Status               models.OrderStatus `json:"status"`
	PaymentMode          models.PaymentMode `json:"paymentMode"`
	ShopID               int64              `json:"shopId"`
	ShopCode             *string            `json:"shopCode"`
	ShopName             *string            `json:"shopName"`
	CustomerCode         *string            `json:"customerCode"`
	CustomerCompanyName  *string            `json:"customerCompanyName"`
	CustomerContactName  *string            `json:"customerContactName"`
	CustomerAddressLine1 *string            `json:"customerAddressLine1"`
	CustomerAddressLine2 *string            `json:"customerAddressLine2"`
	CustomerPostalCode   *string            `json:"customerPostalCode"`
	CustomerCity         *string            `json:"customerCity"`
	CustomerCountry      *string            `json:"customerCountry"`
	CustomerVatNumber    *string            `json:"customerVatNumber"`
	CustomerSiret        *string            `json:"customerSiret"`
	CustomerApeCode      *string            `json:"customerApeCode"`
}

type OrderItemDetail struct {
	ProductID   int64   `json:"productId"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	ProductName *string `json:"productName"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db: db,
	}
}

// PublicOrderCode derives the human-readable code, e.g. LP-2024-0007. The id
// is zero-padded to 4 digits minimum and never truncated.
func PublicOrderCode(orderID int64, year int) string {
	return fmt.Sprintf("LP-%d-%04d", year, orderID)
}

// CreateOrder persists the order and its line items in one transaction. The
// total is computed from the caller-supplied prices; there is no server-side
// re-pricing against the live catalog.
func (s *OrderService) CreateOrder(req *CreateOrderRequest) (*CreateOrderResponse, error) {
	totalAmount := 0.0
	for _, item := range req.Items {
		totalAmount += item.Price * float64(item.Qty)
	}

	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = models.PaymentModeOnline
	}

	var order models.Order

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		// Ensure the shop exists; shops are never auto-created here
		var shop models.Shop
		if err := tx.First(&shop, req.ShopID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidShop
			}
			return fmt.Errorf("failed to look up shop: %w", err)
		}

		order = models.Order{
			CustomerName: req.Customer.Name,
			Email:        req.Customer.Email,
			Phone:        req.Customer.Phone,
			Address:      req.Customer.Address,
			TotalAmount:  totalAmount,
			Status:       models.OrderStatusPendingStockConfirmation,
			PaymentMode:  paymentMode,
			ShopID:       req.ShopID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// The code needs the generated id, hence the two-step write
		code := PublicOrderCode(order.ID, time.Now().Year())
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("public_order_code", code).Error; err != nil {
			return fmt.Errorf("failed to assign public order code: %w", err)
		}
		order.PublicOrderCode = &code

		for _, item := range req.Items {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Qty,
				UnitPrice: item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateOrderResponse{
		OrderID:         order.ID,
		PublicOrderCode: *order.PublicOrderCode,
		Status:          order.Status,
		PaymentMode:     order.PaymentMode,
		ShopID:          order.ShopID,
	}, nil
}

// SetStatus overwrites the order status unconditionally. There is no guard on
// the current status, so repeated calls are idempotent no-ops.
func (s *OrderService) SetStatus(orderID int64, status models.OrderStatus) (*StatusUpdate, error) {
	result := s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}

	return s.statusUpdate("id = ?", orderID)
}

// SetStatusByCode is the delivery confirmation path: the final transition is
// keyed by the public order code (e.g. scanned from a QR label).
func (s *OrderService) SetStatusByCode(publicCode string, status models.OrderStatus) (*StatusUpdate, error) {
	code := strings.TrimSpace(publicCode)
	result := s.db.Model(&models.Order{}).Where("public_order_code = ?", code).Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}

	return s.statusUpdate("public_order_code = ?", code)
}

func (s *OrderService) statusUpdate(query string, arg interface{}) (*StatusUpdate, error) {
	var order models.Order
	if err := s.db.Select("id", "public_order_code", "status").Where(query, arg).First(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	return &StatusUpdate{
		OrderID:         order.ID,
		PublicOrderCode: order.PublicOrderCode,
		Status:          order.Status,
	}, nil
}

// ListOrders returns the most recent orders enriched with shop info, the
// matching customer profile (by case-insensitive email) and message-thread
// aggregates, newest first.
func (s *OrderService) ListOrders() ([]OrderSummary, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Limit(recentOrdersLimit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	if len(orders) == 0 {
		return summaries, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	shops, err := s.shopsFor(orders)
	if err != nil {
		return nil, err
	}

	customers, err := s.customersFor(orders)
	if err != nil {
		return nil, err
	}

	type messageAggregate struct {
		OrderID      int64
		MessageCount int64
		NewForStaff  int64
		NewForClient int64
	}

	var aggregates []messageAggregate
	err = s.db.Model(&models.OrderMessage{}).
		Select("order_id, COUNT(*) AS message_count, "+
			"SUM(CASE WHEN sender_type = ? AND NOT is_read_by_staff THEN 1 ELSE 0 END) AS new_for_staff, "+
			"SUM(CASE WHEN sender_type = ? AND NOT is_read_by_client THEN 1 ELSE 0 END) AS new_for_client",
			models.SenderTypeClient, models.SenderTypeStaff).
		Where("order_id IN ?", orderIDs).
		Group("order_id").
		Scan(&aggregates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order messages: %w", err)
	}

	aggByOrder := make(map[int64]messageAggregate, len(aggregates))
	for _, agg := range aggregates {
		aggByOrder[agg.OrderID] = agg
	}

	for _, o := range orders {
		summary := OrderSummary{
			OrderID:         o.ID,
			PublicOrderCode: o.PublicOrderCode,
			CreatedAt:       o.CreatedAt,
			CustomerName:    o.CustomerName,
			Email:           o.Email,
			TotalAmount:     o.TotalAmount,
			Status:          o.Status,
			PaymentMode:     o.PaymentMode,
			ShopID:          o.ShopID,
		}

		if shop, ok := shops[o.ShopID]; ok {
			summary.ShopCode = &shop.Code
			summary.ShopName = &shop.Name
		}

		if customer, ok := customers[strings.ToLower(o.Email)]; ok {
			summary.CustomerCode = customer.CustomerCode
			summary.CustomerCompanyName = customer.CompanyName
			summary.CustomerContactName = customer.ContactName
			summary.CustomerAddressLine1 = customer.AddressLine1
			summary.CustomerAddressLine2 = customer.AddressLine2
			summary.CustomerPostalCode = customer.PostalCode
			summary.CustomerCity = customer.City
			summary.CustomerCountry = customer.Country
			summary.CustomerVatNumber = customer.VatNumber
			summary.CustomerSiret = customer.Siret
			summary.CustomerApeCode = customer.ApeCode
		}

		if agg, ok := aggByOrder[o.ID]; ok {
			summary.MessageCount = agg.MessageCount
			summary.HasNewForStaff = agg.NewForStaff > 0
			summary.HasNewForClient = agg.NewForClient > 0
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GetOrder returns one enriched order with its line items. Item rows resolve
// the current product name; no name snapshot is kept at purchase time.
func (s *OrderService) GetOrder(orderID int64) (*OrderDetail, []OrderItemDetail, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	detail := OrderDetail{
		OrderID:         order.ID,
		PublicOrderCode: order.PublicOrderCode,
		CreatedAt:       order.CreatedAt,
		CustomerName:    order.CustomerName,
		Email:           order.Email,
		Phone:           order.Phone,
		Address:         order.Address,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		PaymentMode:     order.PaymentMode,
		ShopID:          order.ShopID,
	}

	var shop models.Shop
	if err := s.db.First(&shop, order.ShopID).Error; err == nil {
		detail.ShopCode = &shop.Code
		detail.ShopName = &shop.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to fetch shop: %w", err)
	}

	var customer models.Customer
	if err := s.db.Where("LOWER(email) = LOWER(?)", order.Email).First(&customer).Error; err == nil {
		detail.CustomerCode = customer.CustomerCode
		detail.CustomerCompanyName = customer.CompanyName
		detail.CustomerContactName = customer.ContactName
		detail.CustomerAddressLine1 = customer.AddressLine1
		detail.CustomerAddressLine2 = customer.AddressLine2
		detail.CustomerPostalCode = customer.PostalCode
		detail.CustomerCity = customer.City
		detail.CustomerCountry = customer.Country
		detail.CustomerVatNumber = customer.VatNumber
		detail.CustomerSiret = customer.Siret
		detail.CustomerApeCode = customer.ApeCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to fetch customer profile: %w", err)
	}

	var items []OrderItemDetail
	err := s.db.Table("order_items").
		Select("order_items.product_id, order_items.quantity, order_items.unit_price, products.name AS product_name").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch order items: %w", err)
	}

	return &detail, items, nil
}

func (s *OrderService) shopsFor(orders []models.Order) (map[int64]models.Shop, error) {
	shopIDs := make([]int64, 0, len(orders))
	seen := make(map[int64]bool, len(orders))
	for _, o := range orders {
		if !seen[o.ShopID] {
			seen[o.ShopID] = true
			shopIDs = append(shopIDs, o.ShopID)
		}
	}

	var shops []models.Shop
	if err := s.db.Where("id IN ?", shopIDs).Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shops: %w", err)
	}

	byID := make(map[int64]models.Shop, len(shops))
	for _, shop := range shops {
		byID[shop.ID] = shop
	}
	return byID, nil
}

func (s *OrderService) customersFor(orders []models.Order) (map[string]models.Customer, error) {
	emails := make([]string, 0, len(orders))
	seen := make(map[string]bool, len(orders))
	for _, o := range orders {
		email := strings.ToLower(o.Email)
		if !seen[email] {
			seen[email] = true
			emails = append(emails, email)
		}
	}

	var customers []models.Customer
	if err := s.db.Where("LOWER(email) IN ?", emails).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch customer profiles: %w", err)
	}

	byEmail := make(map[string]models.Customer, len(customers))
	for _, customer := range customers {
		byEmail[strings.ToLower(customer.Email)] = customer
	}
	return byEmail, nil
}
