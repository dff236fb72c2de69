// internal/handlers/api_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lapalette/backend/internal/config"
	"github.com/lapalette/backend/internal/models"
	"github.com/lapalette/backend/internal/router"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Shop{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderMessage{},
	))

	return db, router.Initialize(db, &config.Config{})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedTestShop(t *testing.T, db *gorm.DB) models.Shop {
	t.Helper()

	shop := models.Shop{ID: 3, Code: "CONVENTION", Name: "La Palette Convention (Paris 15e)"}
	require.NoError(t, db.Create(&shop).Error)
	return shop
}

func orderPayload(shopID int64) map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]interface{}{
			"name":    "Marie Dupont",
			"email":   "marie@example.com",
			"address": "12 rue des Lilas, 75015 Paris",
		},
		"items": []map[string]interface{}{
			{"productId": 1, "name": "Peinture mate blanche 10L", "qty": 2, "price": 24.90},
		},
		"shopId": shopID,
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestProductEndpoints(t *testing.T) {
	db, r := newTestServer(t)
	require.NoError(t, db.Create(&models.Product{ID: 1, Name: "Peinture mate blanche 10L", Price: 24.90, Active: true}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Peinture mate blanche 10L", products[0]["name"])

	w = doJSON(t, r, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/products/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/api/products/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid product id", decodeBody(t, w)["error"])
}

func TestCreateOrderValidation(t *testing.T) {
	db, r := newTestServer(t)
	shop := seedTestShop(t, db)

	payload := orderPayload(shop.ID)
	payload["customer"] = map[string]interface{}{"name": "", "email": "", "address": ""}
	w := doJSON(t, r, http.MethodPost, "/api/orders", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required customer fields", decodeBody(t, w)["error"])

	payload = orderPayload(shop.ID)
	payload["items"] = []map[string]interface{}{}
	w = doJSON(t, r, http.MethodPost, "/api/orders", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Order must contain at least one item", decodeBody(t, w)["error"])

	payload = orderPayload(shop.ID)
	delete(payload, "shopId")
	w = doJSON(t, r, http.MethodPost, "/api/orders", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "shopId is required and must be a valid number", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/api/orders", orderPayload(999))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid shopId", decodeBody(t, w)["error"])
}

func TestOrderLifecycle(t *testing.T) {
	db, r := newTestServer(t)
	shop := seedTestShop(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload(shop.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeBody(t, w)
	orderID := int64(created["orderId"].(float64))
	publicCode := created["publicOrderCode"].(string)
	assert.Equal(t, string(models.OrderStatusPendingStockConfirmation), created["status"])
	assert.Equal(t, string(models.PaymentModeOnline), created["paymentMode"])
	assert.NotEmpty(t, publicCode)

	steps := []struct {
		path   string
		status models.OrderStatus
	}{
		{"stock-confirm", models.OrderStatusAwaitingPayment},
		{"pay", models.OrderStatusPaidPrepareOrder},
		{"prepare", models.OrderStatusPreparingOrder},
		{"ready-for-delivery", models.OrderStatusReadyForDelivery},
	}
	for _, step := range steps {
		w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/%s", orderID, step.path), nil)
		require.Equal(t, http.StatusOK, w.Code, step.path)
		assert.Equal(t, string(step.status), decodeBody(t, w)["status"], step.path)
	}

	w = doJSON(t, r, http.MethodPost, "/api/orders/deliver/"+publicCode, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(models.OrderStatusCompleted), decodeBody(t, w)["status"])

	w = doJSON(t, r, http.MethodPost, "/api/orders/deliver/LP-2020-9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeBody(t, w)
	require.Contains(t, detail, "order")
	require.Contains(t, detail, "items")

	w = doJSON(t, r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, string(models.OrderStatusCompleted), list[0]["status"])
}

func TestOrderMessageEndpoints(t *testing.T) {
	db, r := newTestServer(t)
	shop := seedTestShop(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload(shop.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := int64(decodeBody(t, w)["orderId"].(float64))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/messages", orderID), map[string]interface{}{
		"senderType": "client",
		"message":    "Pouvez-vous confirmer le stock ?",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	message := decodeBody(t, w)
	assert.Equal(t, string(models.SenderTypeClient), message["senderType"])
	assert.Equal(t, true, message["isReadByClient"])
	assert.Equal(t, false, message["isReadByStaff"])

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/messages", orderID), map[string]interface{}{
		"senderType": "ROBOT",
		"message":    "hello",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid senderType", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/messages", orderID), map[string]interface{}{
		"senderType": "CLIENT",
		"message":    "   ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Message is required", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/api/orders/999/messages", map[string]interface{}{
		"senderType": "CLIENT",
		"message":    "hello",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d/messages", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var thread []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &thread))
	require.Len(t, thread, 1)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/read/staff", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["updated"])
}

func TestCustomerEndpoints(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/customers/register", map[string]interface{}{
		"email": "marie@example.com",
		"name":  "Marie Dupont",
		"phone": "0601020304",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["created"])

	w = doJSON(t, r, http.MethodPost, "/api/customers/register", map[string]interface{}{"name": "Marie"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email and name are required", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/api/customers/me", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email is required", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/api/customers/me?email=nobody@example.com", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/api/customers/me?email=MARIE@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody(t, w)
	assert.Equal(t, "Marie Dupont", profile["contactName"])
	assert.Equal(t, "0601020304", profile["phone"])

	w = doJSON(t, r, http.MethodPut, "/api/customers/me", map[string]interface{}{
		"email": "marie@example.com",
		"city":  "Paris",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["updated"])
}

// The auth limiter is shared package state, so this test keeps its request
// count under the burst.
func TestAuthEndpoints(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "admin@lapalette.demo",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "1:ADMIN", body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "ADMIN", user["role"])

	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "admin@lapalette.demo",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Identifiants invalides (démo).", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "not-an-email",
		"password": "admin123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Merci de saisir une adresse e-mail valide (démo).", decodeBody(t, w)["message"])
}
