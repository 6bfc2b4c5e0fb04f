package wilayaController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WilayaRequest struct {
	Name              string          `json:"name" binding:"required"`
	DeliveryPriceHome decimal.Decimal `json:"delivery_price_home"`
	DeliveryPriceDesk decimal.Decimal `json:"delivery_price_desk"`
	IsActive          *bool           `json:"is_active"`
}

func GetWilayas(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var wilayas []models.Wilaya
		q := db.Order("name ASC")
		if c.Query("active") == "1" {
			q = q.Where("is_active = ?", true)
		}
		if err := q.Find(&wilayas).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, wilayas)
	}
}

func CreateWilaya(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WilayaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		wilaya := models.Wilaya{
			Name:              req.Name,
			DeliveryPriceHome: req.DeliveryPriceHome,
			DeliveryPriceDesk: req.DeliveryPriceDesk,
			IsActive:          isActive,
		}
		if err := db.Create(&wilaya).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wilaya"})
			return
		}
		c.JSON(http.StatusCreated, wilaya)
	}
}

func UpdateWilaya(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var wilaya models.Wilaya
		if err := db.First(&wilaya, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wilaya not found"})
			return
		}
		var req WilayaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{
			"name":                req.Name,
			"delivery_price_home": req.DeliveryPriceHome,
			"delivery_price_desk": req.DeliveryPriceDesk,
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if err := db.Model(&wilaya).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wilaya"})
			return
		}
		c.JSON(http.StatusOK, wilaya)
	}
}

// DeleteWilaya removes a delivery zone. Orders that referenced it are
// unlinked, not deleted; the municipality text on each order keeps the
// history readable.
func DeleteWilaya(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var wilaya models.Wilaya
		if err := db.First(&wilaya, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wilaya not found"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Order{}).
				Where("wilaya_id = ?", id).
				Update("wilaya_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&wilaya).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wilaya"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wilaya deleted successfully"})
	}
}
