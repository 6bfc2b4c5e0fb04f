package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/papillonstore/papillon-api/models"
	"gorm.io/gorm"
)

const (
	// undoWindow is how long a confirmation can be taken back.
	undoWindow = 24 * time.Hour

	// archiveAfter is the age at which confirmed orders drop out of the
	// default working view. The data is kept, only hidden.
	archiveAfter = 5 * 24 * time.Hour
)

// allowedTransitions is the reachability table of the order state machine.
// pending/confirmed/shipped move freely between each other (stock-neutral
// lateral moves), any of them can be cancelled, shipped can complete to
// delivered, and cancelled can be re-activated by an admin. delivered is
// terminal.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {models.OrderStatusPending, models.OrderStatusConfirmed},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CustomerInfo is the manual-entry form an admin fills when taking an order
// by phone.
type CustomerInfo struct {
	FirstName    string
	LastName     string
	Phone        string
	WilayaID     *string
	Municipality string
	Address      string
	DeliveryType models.DeliveryType
}

// OrderLifecycle drives order status changes and keeps inventory consistent
// while doing so. Every operation that touches both the order and the stock
// runs in one database transaction, with stock adjusted first and the status
// committed under an optimistic precondition, so a crash or a concurrent
// admin can never leave the two diverged.
type OrderLifecycle struct {
	db    *gorm.DB
	store *OrderStore
	stock *VariantStock
	rec   *InventoryReconciler
	feed  *Feed
	now   func() time.Time
}

func NewOrderLifecycle(db *gorm.DB, store *OrderStore, stock *VariantStock, feed *Feed) *OrderLifecycle {
	return &OrderLifecycle{
		db:    db,
		store: store,
		stock: stock,
		rec:   NewInventoryReconciler(),
		feed:  feed,
		now:   time.Now,
	}
}

// Transition moves the order to the requested status. Requesting the status
// the order already has is rejected outright: duplicate UI events must not
// re-apply stock effects. On ErrConflict (another admin won the race) the
// transition is re-read and retried once, then surfaced.
func (l *OrderLifecycle) Transition(ctx context.Context, orderID string, to models.OrderStatus) (*models.Order, error) {
	order, from, err := l.attempt(ctx, orderID, to)
	if errors.Is(err, ErrConflict) {
		order, from, err = l.attempt(ctx, orderID, to)
	}
	if err != nil {
		return nil, err
	}
	l.feed.Publish(Event{
		Kind:    EventStatusChanged,
		OrderID: order.ID,
		From:    from,
		To:      to,
		At:      l.now(),
	})
	return order, nil
}

func (l *OrderLifecycle) attempt(ctx context.Context, orderID string, to models.OrderStatus) (*models.Order, models.OrderStatus, error) {
	order, err := l.store.Get(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	from := order.Status
	if to == from {
		return nil, "", fmt.Errorf("%w: order #%d is already %s", ErrInvalidTransition, order.OrderNumber, to)
	}
	if !canTransition(from, to) {
		return nil, "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	confirmedAt := order.ConfirmedAt
	switch {
	case to == models.OrderStatusConfirmed:
		now := l.now()
		confirmedAt = &now
	case from == models.OrderStatusConfirmed:
		confirmedAt = nil
	}

	// Stock first, status second; both roll back together. The status
	// precondition doubles as the idempotency guard: a replay of an
	// already-committed transition finds from stale and stops at
	// ErrConflict instead of adjusting stock again.
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := l.rec.Reconcile(tx, order, from, to); err != nil {
			return err
		}
		return setStatusTx(tx, orderID, from, to, confirmedAt)
	})
	if err != nil {
		return nil, "", err
	}

	order.Status = to
	order.ConfirmedAt = confirmedAt
	return order, from, nil
}

// UndoConfirmation takes a confirmed order back to pending, only within 24
// hours of the confirmation.
func (l *OrderLifecycle) UndoConfirmation(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := l.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusConfirmed || order.ConfirmedAt == nil {
		return nil, fmt.Errorf("%w: order #%d is %s, not confirmed", ErrInvalidTransition, order.OrderNumber, order.Status)
	}
	if l.now().Sub(*order.ConfirmedAt) >= undoWindow {
		return nil, ErrWindowExpired
	}
	return l.Transition(ctx, orderID, models.OrderStatusPending)
}

// VisibleOrders is the default working view: everything List returns, minus
// confirmed orders older than the 5-day archive threshold.
func (l *OrderLifecycle) VisibleOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	filter.HideConfirmedBefore = l.now().Add(-archiveAfter)
	return l.store.List(ctx, filter)
}

// PlaceManualOrder creates an admin-entered order as pending and reserves its
// stock immediately, in the same transaction. A line asking for more than is
// on hand fails validation before anything is written; manual orders are
// taken over the phone and the admin should resolve the shortage, not
// silently oversell.
func (l *OrderLifecycle) PlaceManualOrder(ctx context.Context, customer CustomerInfo, lines []models.OrderItem) (*models.Order, error) {
	if customer.FirstName == "" && customer.LastName == "" {
		return nil, validationErr("customer", "customer name is required")
	}
	if customer.Phone == "" {
		return nil, validationErr("phone", "customer phone is required")
	}
	for _, line := range lines {
		if line.VariantID == nil {
			continue
		}
		onHand, err := l.stock.Read(ctx, *line.VariantID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, validationErr("variant_id", "unknown variant %s", *line.VariantID)
			}
			return nil, err
		}
		if onHand < line.Quantity {
			return nil, validationErr("quantity", "insufficient stock for %q: %d on hand, %d requested",
				line.ProductName, onHand, line.Quantity)
		}
	}

	order := &models.Order{
		CustomerFirstName: customer.FirstName,
		CustomerLastName:  customer.LastName,
		CustomerPhone:     customer.Phone,
		WilayaID:          customer.WilayaID,
		MunicipalityName:  customer.Municipality,
		Address:           customer.Address,
		DeliveryType:      customer.DeliveryType,
		Status:            models.OrderStatusPending,
		CreatedAt:         l.now(),
	}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createOrderTx(tx, order, lines); err != nil {
			return err
		}
		// Consume stock as if moving from "not created" to pending.
		return l.rec.Reconcile(tx, order, "", models.OrderStatusPending)
	})
	if err != nil {
		return nil, err
	}

	l.feed.Publish(Event{
		Kind:        EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Customer:    order.CustomerName(),
		At:          l.now(),
	})
	return order, nil
}

// DeleteOrder removes the order and its lines. Deletion never restores stock:
// it is a destructive admin action distinct from cancellation. Cancel first
// if the inventory should come back.
func (l *OrderLifecycle) DeleteOrder(ctx context.Context, orderID string) error {
	return l.store.DeleteCascade(ctx, orderID)
}
