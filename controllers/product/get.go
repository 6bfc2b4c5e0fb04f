package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"gorm.io/gorm"
)

// GetProducts returns the catalog with categories and variants attached.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		q := db.Preload("Category").Preload("Variants").Order("created_at DESC")
		if c.Query("active") == "1" {
			q = q.Where("is_active = ?", true)
		}
		if err := q.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Category").Preload("Variants").
			First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
