package settingsController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papillonstore/papillon-api/models"
	"gorm.io/gorm"
)

type SiteSettingsRequest struct {
	SiteName            string `json:"site_name" binding:"required"`
	LogoURL             string `json:"logo_url"`
	FaviconURL          string `json:"favicon_url"`
	PrimaryColor        string `json:"primary_color"`
	SecondaryColor      string `json:"secondary_color"`
	AnnouncementText    string `json:"announcement_text"`
	HeroImageURL        string `json:"hero_image_url"`
	HeroTitle           string `json:"hero_title"`
	HeroSubtitle        string `json:"hero_subtitle"`
	DeliveryCompanyName string `json:"delivery_company_name"`
}

// GetSettings returns the single settings row, creating a default one on
// first access.
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := loadOrInitSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SiteSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		settings, err := loadOrInitSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		updates := map[string]any{
			"site_name":             req.SiteName,
			"logo_url":              req.LogoURL,
			"favicon_url":           req.FaviconURL,
			"primary_color":         req.PrimaryColor,
			"secondary_color":       req.SecondaryColor,
			"announcement_text":     req.AnnouncementText,
			"hero_image_url":        req.HeroImageURL,
			"hero_title":            req.HeroTitle,
			"hero_subtitle":         req.HeroSubtitle,
			"delivery_company_name": req.DeliveryCompanyName,
		}
		if err := db.Model(settings).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func loadOrInitSettings(db *gorm.DB) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.SiteSettings{SiteName: "Papillon Store"}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

type AboutUsRequest struct {
	Title    string                `json:"title"`
	Content  string                `json:"content"`
	Features []models.AboutFeature `json:"features"`
}

func GetAboutUs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var about models.AboutUsContent
		err := db.First(&about).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.AboutUsContent{})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, about)
	}
}

func UpdateAboutUs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AboutUsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var about models.AboutUsContent
		err := db.First(&about).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			about = models.AboutUsContent{Title: req.Title, Content: req.Content, Features: req.Features}
			if err := db.Create(&about).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content"})
				return
			}
			c.JSON(http.StatusOK, about)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		about.Title = req.Title
		about.Content = req.Content
		about.Features = req.Features
		if err := db.Save(&about).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content"})
			return
		}
		c.JSON(http.StatusOK, about)
	}
}
