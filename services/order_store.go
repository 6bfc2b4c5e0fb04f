package services

import (
	"context"
	"errors"
	"time"

	"github.com/papillonstore/papillon-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderFilter narrows List results. Zero value means "everything".
type OrderFilter struct {
	Status models.OrderStatus // empty = all statuses
	Search string             // matches customer name, phone or order number

	// HideConfirmedBefore excludes confirmed orders whose confirmation is
	// older than the given instant (the 5-day archive rule). Set by
	// OrderLifecycle.VisibleOrders, zero = no archiving.
	HideConfirmedBefore time.Time
}

// OrderStore persists Order + OrderItem aggregates. Status changes go through
// SetStatus, which is a pure field update: stock effects are the reconciler's
// job so they stay auditable and retryable independently of persistence.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create validates the lines, assigns the next order number and persists the
// aggregate. The total is always recomputed from the lines, never trusted
// from the caller.
func (s *OrderStore) Create(ctx context.Context, order *models.Order, lines []models.OrderItem) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createOrderTx(tx, order, lines)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func createOrderTx(tx *gorm.DB, order *models.Order, lines []models.OrderItem) error {
	if len(lines) == 0 {
		return validationErr("items", "order has no items")
	}
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return validationErr("quantity", "line %q has non-positive quantity %d", line.ProductName, line.Quantity)
		}
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if order.WilayaID != nil {
		var count int64
		if err := tx.Model(&models.Wilaya{}).Where("id = ?", *order.WilayaID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return validationErr("wilaya_id", "unknown wilaya %s", *order.WilayaID)
		}
	}

	var maxNumber int64
	if err := tx.Model(&models.Order{}).
		Select("COALESCE(MAX(order_number), 0)").Scan(&maxNumber).Error; err != nil {
		return err
	}
	order.OrderNumber = maxNumber + 1
	order.TotalPrice = total
	order.Items = lines
	return tx.Create(order).Error
}

// Get loads one order with its lines and wilaya attached.
func (s *OrderStore) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := withRetry(ctx, func(ctx context.Context) error {
		err := s.db.WithContext(ctx).
			Preload("Items").
			Preload("Wilaya").
			First(&order, "id = ?", orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders newest first, filtered by status and free-text search.
func (s *OrderStore) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	err := withRetry(ctx, func(ctx context.Context) error {
		q := s.db.WithContext(ctx).
			Preload("Items").
			Preload("Wilaya").
			Order("created_at DESC")
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			q = q.Where(
				"customer_first_name LIKE ? OR customer_last_name LIKE ? OR customer_phone LIKE ? OR CAST(order_number AS TEXT) LIKE ?",
				like, like, like, like)
		}
		if !filter.HideConfirmedBefore.IsZero() {
			q = q.Where(
				"status <> ? OR confirmed_at IS NULL OR confirmed_at >= ?",
				models.OrderStatusConfirmed, filter.HideConfirmedBefore)
		}
		return q.Find(&orders).Error
	})
	return orders, err
}

// SetStatus commits a status change with an optimistic precondition: the row
// is only touched while its stored status still equals from. A concurrent
// admin winning the race surfaces as ErrConflict so the caller re-reads and
// retries. confirmedAt is written as given (set on entry into confirmed,
// cleared on leaving it, carried through otherwise).
func (s *OrderStore) SetStatus(ctx context.Context, orderID string, from, to models.OrderStatus, confirmedAt *time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return setStatusTx(tx, orderID, from, to, confirmedAt)
	})
}

func setStatusTx(tx *gorm.DB, orderID string, from, to models.OrderStatus, confirmedAt *time.Time) error {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]any{
			"status":       to,
			"confirmed_at": confirmedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

// DetachProduct nulls the product and variant references on every order line
// pointing at the product, preserving the historical snapshots. Called by the
// product deletion flow before the variants are removed.
func (s *OrderStore) DetachProduct(ctx context.Context, productID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return detachProductTx(tx, productID)
	})
}

func detachProductTx(tx *gorm.DB, productID string) error {
	// Variant references first: the subquery only resolves while the
	// variants still exist.
	if err := tx.Model(&models.OrderItem{}).
		Where("variant_id IN (?)", tx.Model(&models.ProductVariant{}).
			Select("id").Where("product_id = ?", productID)).
		Update("variant_id", nil).Error; err != nil {
		return err
	}
	return tx.Model(&models.OrderItem{}).
		Where("product_id = ?", productID).
		Update("product_id", nil).Error
}

// DeleteCascade removes the order's lines and then the order, in that fixed
// order because order_items references orders.
func (s *OrderStore) DeleteCascade(ctx context.Context, orderID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", orderID).Delete(&models.Order{}).Error
	})
}

// Unread returns the newest unread orders plus the total unread count, for
// the notification bell.
func (s *OrderStore) Unread(ctx context.Context, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var count int64
	err := withRetry(ctx, func(ctx context.Context) error {
		db := s.db.WithContext(ctx)
		if err := db.Model(&models.Order{}).Where("is_read = ?", false).Count(&count).Error; err != nil {
			return err
		}
		return db.Where("is_read = ?", false).Order("created_at DESC").Limit(limit).Find(&orders).Error
	})
	return orders, count, err
}

// MarkRead flags one order as seen by an admin.
func (s *OrderStore) MarkRead(ctx context.Context, orderID string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead clears the unread flag on every order.
func (s *OrderStore) MarkAllRead(ctx context.Context) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}
