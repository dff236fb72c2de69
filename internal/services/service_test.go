// internal/services/service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lapalette/backend/internal/models"
)

// newTestDB opens a private in-memory database per test. The unique name keeps
// parallel tests from sharing state through sqlite's shared cache.
func newTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func seedShop(t *testing.T, db *gorm.DB) models.Shop {
	t.Helper()

	shop := models.Shop{ID: 3, Code: "CONVENTION", Name: "La Palette Convention (Paris 15e)"}
	require.NoError(t, db.Create(&shop).Error)
	return shop
}

func ptr(s string) *string { return &s }
