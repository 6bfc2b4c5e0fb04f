package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/papillonstore/papillon-api/models"
)

func newLifecycle(t *testing.T) (*OrderLifecycle, *VariantStock, *Feed, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	store := NewOrderStore(db)
	stock := NewVariantStock(db)
	feed := NewFeed()
	return NewOrderLifecycle(db, store, stock, feed), stock, feed, db
}

func placeOrder(t *testing.T, l *OrderLifecycle, variant *models.ProductVariant, qty int) *models.Order {
	t.Helper()

	order, err := l.PlaceManualOrder(context.Background(), CustomerInfo{
		FirstName:    "Amina",
		LastName:     "B",
		Phone:        "0550667788",
		Municipality: "Bab Ezzouar",
		DeliveryType: models.DeliveryHome,
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

func TestOrderLifecycleStockRoundTrip(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 10)
	ctx := context.Background()

	// Placing the order reserves stock immediately.
	order := placeOrder(t, lifecycle, variant, 3)
	assert.Equal(t, 7, variantQty(t, db, variant.ID))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// Confirming is a lateral move: no stock effect, confirmation stamped.
	confirmed, err := lifecycle.Transition(ctx, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 7, variantQty(t, db, variant.ID))
	require.NotNil(t, confirmed.ConfirmedAt)

	// Cancelling releases the reservation.
	cancelled, err := lifecycle.Transition(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 10, variantQty(t, db, variant.ID))
	assert.Nil(t, cancelled.ConfirmedAt)

	// Re-confirming a cancelled order consumes the stock again.
	_, err = lifecycle.Transition(ctx, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 7, variantQty(t, db, variant.ID))
}

func TestTransitionRejectsNoOp(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 10)
	order := placeOrder(t, lifecycle, variant, 3)
	ctx := context.Background()

	// A duplicate click must not touch stock.
	_, err := lifecycle.Transition(ctx, order.ID, models.OrderStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 7, variantQty(t, db, variant.ID))
}

func TestTransitionRejectsUnreachableStatus(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 10)
	order := placeOrder(t, lifecycle, variant, 1)
	ctx := context.Background()

	// pending cannot jump straight to delivered.
	_, err := lifecycle.Transition(ctx, order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// delivered is terminal.
	_, err = lifecycle.Transition(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	_, err = lifecycle.Transition(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	_, err = lifecycle.Transition(ctx, order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionUnknownOrder(t *testing.T) {
	lifecycle, _, _, _ := newLifecycle(t)

	_, err := lifecycle.Transition(context.Background(), "no-such-order", models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUndoConfirmationWithinWindow(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 10)
	order := placeOrder(t, lifecycle, variant, 2)
	ctx := context.Background()

	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lifecycle.now = func() time.Time { return clock }

	_, err := lifecycle.Transition(ctx, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)

	// 23 hours later the undo still works.
	clock = clock.Add(23 * time.Hour)
	undone, err := lifecycle.UndoConfirmation(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, undone.Status)
	assert.Nil(t, undone.ConfirmedAt)

	// Stock untouched: pending and confirmed both hold the reservation.
	assert.Equal(t, 8, variantQty(t, db, variant.ID))
}

func TestUndoConfirmationExpired(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 10)
	order := placeOrder(t, lifecycle, variant, 2)
	ctx := context.Background()

	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lifecycle.now = func() time.Time { return clock }

	_, err := lifecycle.Transition(ctx, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)

	clock = clock.Add(24*time.Hour + time.Minute)
	_, err = lifecycle.UndoConfirmation(ctx, order.ID)
	assert.ErrorIs(t, err, ErrWindowExpired)

	// The order stays confirmed.
	got, err := lifecycle.store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
}

func TestUndoConfirmationRequiresConfirmed(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 10)
	order := placeOrder(t, lifecycle, variant, 1)

	_, err := lifecycle.UndoConfirmation(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestVisibleOrdersArchivesOldConfirmed(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 100)
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lifecycle.now = func() time.Time { return clock }

	archived := placeOrder(t, lifecycle, variant, 1)
	_, err := lifecycle.Transition(ctx, archived.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)

	clock = clock.Add(2 * 24 * time.Hour)
	recent := placeOrder(t, lifecycle, variant, 1)
	_, err = lifecycle.Transition(ctx, recent.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)

	stillPending := placeOrder(t, lifecycle, variant, 1)

	// 6 days after the first confirmation: it ages out of the view, the
	// 4-day-old one stays.
	clock = clock.Add(4 * 24 * time.Hour)
	visible, err := lifecycle.VisibleOrders(ctx, OrderFilter{})
	require.NoError(t, err)
	ids := make([]string, 0, len(visible))
	for _, o := range visible {
		ids = append(ids, o.ID)
	}
	assert.ElementsMatch(t, []string{recent.ID, stillPending.ID}, ids)
}

func TestPlaceManualOrderValidation(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 2)
	ctx := context.Background()

	line := models.OrderItem{
		VariantID:   &variant.ID,
		ProductName: "Silk Scarf",
		Price:       decimal.NewFromInt(1200),
		Quantity:    5,
	}

	// More than on hand.
	_, err := lifecycle.PlaceManualOrder(ctx, CustomerInfo{FirstName: "Amina", Phone: "0550"}, []models.OrderItem{line})
	assert.True(t, IsValidation(err))
	assert.Equal(t, 2, variantQty(t, db, variant.ID))

	// Missing name and phone.
	_, err = lifecycle.PlaceManualOrder(ctx, CustomerInfo{Phone: "0550"}, nil)
	assert.True(t, IsValidation(err))
	_, err = lifecycle.PlaceManualOrder(ctx, CustomerInfo{FirstName: "Amina"}, nil)
	assert.True(t, IsValidation(err))

	// Unknown variant.
	unknown := "no-such-variant"
	badLine := line
	badLine.VariantID = &unknown
	badLine.Quantity = 1
	_, err = lifecycle.PlaceManualOrder(ctx, CustomerInfo{FirstName: "Amina", Phone: "0550"}, []models.OrderItem{badLine})
	assert.True(t, IsValidation(err))
}

func TestDeleteOrderDoesNotRestoreStock(t *testing.T) {
	lifecycle, _, _, db := newLifecycle(t)
	variant := seedVariant(t, db, 10)
	order := placeOrder(t, lifecycle, variant, 4)
	ctx := context.Background()

	require.NoError(t, lifecycle.DeleteOrder(ctx, order.ID))

	// Deletion is destructive; cancellation is the path that gives stock back.
	assert.Equal(t, 6, variantQty(t, db, variant.ID))
	_, err := lifecycle.store.Get(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLifecyclePublishesEvents(t *testing.T) {
	lifecycle, _, feed, db := newLifecycle(t)
	variant := seedVariant(t, db, 10)
	ctx := context.Background()

	events, cancel := feed.Subscribe()
	defer cancel()

	order := placeOrder(t, lifecycle, variant, 1)
	created := <-events
	assert.Equal(t, EventOrderCreated, created.Kind)
	assert.Equal(t, order.ID, created.OrderID)
	assert.Equal(t, order.OrderNumber, created.OrderNumber)
	assert.Equal(t, "Amina B", created.Customer)

	_, err := lifecycle.Transition(ctx, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	changed := <-events
	assert.Equal(t, EventStatusChanged, changed.Kind)
	assert.Equal(t, models.OrderStatusPending, changed.From)
	assert.Equal(t, models.OrderStatusConfirmed, changed.To)
}
