package dashboardController

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// lowStockThreshold flags variants the dashboard should warn about.
const lowStockThreshold = 5

type Stats struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int64           `json:"total_orders"`
	PendingOrders int64           `json:"pending_orders"`
	LowStock      int64           `json:"low_stock_variants"`
	RecentOrders  []models.Order  `json:"recent_orders"`
}

// GetStats aggregates the dashboard numbers. The five queries are independent
// so they run concurrently.
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats Stats
		g, ctx := errgroup.WithContext(c.Request.Context())

		g.Go(func() error {
			// Cancelled orders never count towards revenue.
			var revenue sql.NullFloat64
			err := db.WithContext(ctx).Model(&models.Order{}).
				Where("status <> ?", models.OrderStatusCancelled).
				Select("SUM(total_price)").Scan(&revenue).Error
			if err != nil {
				return err
			}
			stats.TotalRevenue = decimal.Zero
			if revenue.Valid {
				stats.TotalRevenue = decimal.NewFromFloat(revenue.Float64)
			}
			return nil
		})
		g.Go(func() error {
			return db.WithContext(ctx).Model(&models.Order{}).Count(&stats.TotalOrders).Error
		})
		g.Go(func() error {
			return db.WithContext(ctx).Model(&models.Order{}).
				Where("status = ?", models.OrderStatusPending).
				Count(&stats.PendingOrders).Error
		})
		g.Go(func() error {
			return db.WithContext(ctx).Model(&models.ProductVariant{}).
				Where("quantity < ?", lowStockThreshold).
				Count(&stats.LowStock).Error
		})
		g.Go(func() error {
			return db.WithContext(ctx).
				Preload("Items").
				Order("created_at DESC").
				Limit(5).
				Find(&stats.RecentOrders).Error
		})

		if err := g.Wait(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
