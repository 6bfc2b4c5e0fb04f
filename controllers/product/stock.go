package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/services"
)

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustVariantStock applies a manual stock correction to one variant and
// returns the new quantity. The result never goes below zero.
func AdjustVariantStock(stock *services.VariantStock) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		quantity, err := stock.Adjust(c.Request.Context(), c.Param("id"), req.Delta)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"quantity": quantity})
	}
}
