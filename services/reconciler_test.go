package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/papillonstore/papillon-api/models"
)

func TestStockDirection(t *testing.T) {
	cases := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		want int
	}{
		{"create consumes", "", models.OrderStatusPending, -1},
		{"cancel restores", models.OrderStatusConfirmed, models.OrderStatusCancelled, +1},
		{"reactivate consumes", models.OrderStatusCancelled, models.OrderStatusPending, -1},
		{"lateral confirm", models.OrderStatusPending, models.OrderStatusConfirmed, 0},
		{"lateral ship", models.OrderStatusConfirmed, models.OrderStatusShipped, 0},
		{"deliver", models.OrderStatusShipped, models.OrderStatusDelivered, 0},
		{"same status", models.OrderStatusPending, models.OrderStatusPending, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stockDirection(tc.from, tc.to))
		})
	}
}

func TestReconcileSkipsDetachedLines(t *testing.T) {
	db := newTestDB(t)
	variant := seedVariant(t, db, 10)
	rec := NewInventoryReconciler()

	missing := "no-such-variant"
	order := &models.Order{
		Items: []models.OrderItem{
			{VariantID: &variant.ID, Quantity: 2},
			{VariantID: nil, Quantity: 3},
			{VariantID: &missing, Quantity: 4},
		},
	}

	// Detached and dangling lines are skipped, the live one is adjusted.
	err := db.Transaction(func(tx *gorm.DB) error {
		return rec.Reconcile(tx, order, "", models.OrderStatusPending)
	})
	require.NoError(t, err)
	assert.Equal(t, 8, variantQty(t, db, variant.ID))
}

func TestReconcileLateralMoveTouchesNothing(t *testing.T) {
	db := newTestDB(t)
	variant := seedVariant(t, db, 10)
	rec := NewInventoryReconciler()

	order := &models.Order{
		Items: []models.OrderItem{{VariantID: &variant.ID, Quantity: 2}},
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return rec.Reconcile(tx, order, models.OrderStatusPending, models.OrderStatusConfirmed)
	})
	require.NoError(t, err)
	assert.Equal(t, 10, variantQty(t, db, variant.ID))
}
