package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/papillonstore/papillon-api/models"
)

// newTestDB opens a private in-memory database per test. The pool is pinned to
// one connection so every session sees the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Wilaya{},
		&models.Order{},
		&models.OrderItem{},
		&models.SiteSettings{},
		&models.AboutUsContent{},
	))
	return db
}

// seedVariant creates a product with one variant holding qty units.
func seedVariant(t *testing.T, db *gorm.DB, qty int) *models.ProductVariant {
	t.Helper()

	product := models.Product{
		Name:  "Silk Scarf",
		Price: decimal.NewFromInt(1200),
		Variants: []models.ProductVariant{
			{Size: "M", ColorName: "Rose", ColorHex: "#e8a0bf", Quantity: qty},
		},
	}
	require.NoError(t, db.Create(&product).Error)
	return &product.Variants[0]
}

// seedOrder creates a pending order with a single line against the variant.
// Stock is NOT consumed; callers that need reserved stock go through
// PlaceManualOrder or adjust the variant themselves.
func seedOrder(t *testing.T, db *gorm.DB, variant *models.ProductVariant, qty int) *models.Order {
	t.Helper()

	store := NewOrderStore(db)
	order, err := store.Create(context.Background(), &models.Order{
		CustomerFirstName: "Amina",
		CustomerLastName:  "B",
		CustomerPhone:     "0550123456",
		Status:            models.OrderStatusPending,
	}, []models.OrderItem{
		{
			ProductID:   &variant.ProductID,
			VariantID:   &variant.ID,
			ProductName: "Silk Scarf",
			Price:       decimal.NewFromInt(1200),
			Quantity:    qty,
		},
	})
	require.NoError(t, err)
	return order
}

func variantQty(t *testing.T, db *gorm.DB, variantID string) int {
	t.Helper()

	var variant models.ProductVariant
	require.NoError(t, db.First(&variant, "id = ?", variantID).Error)
	return variant.Quantity
}
