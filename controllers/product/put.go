package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"gorm.io/gorm"
)

// UpdateProduct updates the product fields and synchronizes its variants:
// variants present in the request keep their id and are updated, variants
// missing from the request are deleted, and variants without an id are new.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]any{
				"name":           req.Name,
				"description":    req.Description,
				"price":          req.Price,
				"discount_price": req.DiscountPrice,
				"category_id":    req.CategoryID,
			}
			if req.Images != nil {
				updates["images"] = req.Images
			}
			if req.IsActive != nil {
				updates["is_active"] = *req.IsActive
			}
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}

			// Delete variants the admin removed in the form.
			var keepIDs []string
			for _, v := range req.Variants {
				if v.ID != "" {
					keepIDs = append(keepIDs, v.ID)
				}
			}
			q := tx.Where("product_id = ?", id)
			if len(keepIDs) > 0 {
				q = q.Where("id NOT IN ?", keepIDs)
			}
			if err := q.Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}

			// Upsert the rest. Writing quantity here is the direct admin
			// stock edit, distinct from order reconciliation.
			for _, v := range req.Variants {
				if v.ID == "" {
					variant := models.ProductVariant{
						ProductID: id,
						Size:      v.Size,
						ColorName: v.ColorName,
						ColorHex:  v.ColorHex,
						Quantity:  v.Quantity,
					}
					if err := tx.Create(&variant).Error; err != nil {
						return err
					}
					continue
				}
				if err := tx.Model(&models.ProductVariant{}).
					Where("id = ? AND product_id = ?", v.ID, id).
					Updates(map[string]any{
						"size":       v.Size,
						"color_name": v.ColorName,
						"color_hex":  v.ColorHex,
						"quantity":   v.Quantity,
					}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		var updated models.Product
		if err := db.Preload("Category").Preload("Variants").
			First(&updated, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
