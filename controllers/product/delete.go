package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"github.com/papillonstore/papillon-api/services"
	"gorm.io/gorm"
)

// DeleteProduct removes a product and its variants. Historical order lines
// are detached first (product and variant references nulled) so old orders
// keep their name/price snapshots; they are never cascade-deleted.
func DeleteProduct(db *gorm.DB, store *services.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := services.NewOrderStore(tx).DetachProduct(c.Request.Context(), id); err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
