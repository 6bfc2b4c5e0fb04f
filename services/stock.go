package services

import (
	"context"
	"errors"

	"github.com/papillonstore/papillon-api/models"
	"gorm.io/gorm"
)

// VariantStock is the single source of truth for on-hand quantity per variant.
type VariantStock struct {
	db *gorm.DB
}

func NewVariantStock(db *gorm.DB) *VariantStock {
	return &VariantStock{db: db}
}

// Adjust applies delta to the variant's quantity (positive restores, negative
// consumes) and returns the post-adjustment quantity. The result is clamped at
// zero: over-consuming floors the counter instead of failing, which is the
// best-effort policy the store runs on. The adjustment is a single UPDATE, so
// concurrent adjustments to the same variant serialize at the row and cannot
// lose updates.
func (s *VariantStock) Adjust(ctx context.Context, variantID string, delta int) (int, error) {
	var qty int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		qty, err = adjustStockTx(tx, variantID, delta)
		return err
	})
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// Read returns the current on-hand quantity.
func (s *VariantStock) Read(ctx context.Context, variantID string) (int, error) {
	var qty int
	err := withRetry(ctx, func(ctx context.Context) error {
		var variant models.ProductVariant
		err := s.db.WithContext(ctx).Select("quantity").First(&variant, "id = ?", variantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		qty = variant.Quantity
		return nil
	})
	return qty, err
}

// adjustStockTx is the shared adjustment primitive; the reconciler calls it
// inside the lifecycle transaction so stock and status commit together.
func adjustStockTx(tx *gorm.DB, variantID string, delta int) (int, error) {
	res := tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("quantity", gorm.Expr(
			"CASE WHEN quantity + ? < 0 THEN 0 ELSE quantity + ? END", delta, delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	var variant models.ProductVariant
	if err := tx.Select("quantity").First(&variant, "id = ?", variantID).Error; err != nil {
		return 0, err
	}
	return variant.Quantity, nil
}
