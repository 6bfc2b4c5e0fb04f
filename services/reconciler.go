package services

import (
	"errors"

	"github.com/papillonstore/papillon-api/models"
	"gorm.io/gorm"
)

// InventoryReconciler owns every stock mutation implied by an order moving
// between statuses. Nothing else adjusts stock on behalf of orders: the old
// dashboard split this between client code and database triggers, which could
// double-apply; here the reconciler is the sole owner.
type InventoryReconciler struct{}

func NewInventoryReconciler() *InventoryReconciler {
	return &InventoryReconciler{}
}

// Reconcile applies the stock delta implied by moving order from -> to. It
// runs inside the caller's transaction so the stock delta and the status
// commit land (or roll back) together; replaying a rolled-back transition can
// therefore never double-apply.
//
//	holds stock -> released (cancelled):  restore each line
//	released -> holds stock:              consume each line
//	lateral or from == to:                nothing
//
// Lines without a resolvable variant are skipped: legacy and manual entries
// may lack the link, and a variant deleted since the order was placed has no
// counter left to adjust.
func (r *InventoryReconciler) Reconcile(tx *gorm.DB, order *models.Order, from, to models.OrderStatus) error {
	direction := stockDirection(from, to)
	if direction == 0 {
		return nil
	}
	for _, line := range order.Items {
		if line.VariantID == nil {
			continue
		}
		if _, err := adjustStockTx(tx, *line.VariantID, direction*line.Quantity); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

// holdsStock reports whether an order in the given status has inventory
// reserved for it. The empty status stands for "not created yet", used when a
// manual order consumes stock at creation time.
func holdsStock(status models.OrderStatus) bool {
	switch status {
	case models.OrderStatusPending, models.OrderStatusConfirmed,
		models.OrderStatusShipped, models.OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// stockDirection returns +1 (restore), -1 (consume) or 0 (no stock effect)
// for a from -> to move.
func stockDirection(from, to models.OrderStatus) int {
	switch {
	case from == to:
		return 0
	case holdsStock(from) && !holdsStock(to):
		return +1
	case !holdsStock(from) && holdsStock(to):
		return -1
	default:
		return 0
	}
}
