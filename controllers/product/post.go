package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VariantRequest struct {
	ID        string `json:"id"`
	Size      string `json:"size" binding:"required"`
	ColorName string `json:"color_name" binding:"required"`
	ColorHex  string `json:"color_hex"`
	Quantity  int    `json:"quantity"`
}

type ProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	CategoryID    *string          `json:"category_id"`
	Images        []string         `json:"images"`
	IsActive      *bool            `json:"is_active"`
	Variants      []VariantRequest `json:"variants"`
}

// CreateProduct creates a product together with its size/color variants.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		product := models.Product{
			Name:          req.Name,
			Description:   req.Description,
			Price:         req.Price,
			DiscountPrice: req.DiscountPrice,
			CategoryID:    req.CategoryID,
			Images:        req.Images,
			IsActive:      isActive,
		}
		for _, v := range req.Variants {
			product.Variants = append(product.Variants, models.ProductVariant{
				Size:      v.Size,
				ColorName: v.ColorName,
				ColorHex:  v.ColorHex,
				Quantity:  v.Quantity,
			})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
