package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteSettings is a single-row table holding the storefront configuration.
type SiteSettings struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	SiteName            string    `gorm:"not null" json:"site_name"`
	LogoURL             string    `json:"logo_url"`
	FaviconURL          string    `json:"favicon_url"`
	PrimaryColor        string    `json:"primary_color"`
	SecondaryColor      string    `json:"secondary_color"`
	AnnouncementText    string    `json:"announcement_text"`
	HeroImageURL        string    `json:"hero_image_url"`
	HeroTitle           string    `json:"hero_title"`
	HeroSubtitle        string    `json:"hero_subtitle"`
	DeliveryCompanyName string    `json:"delivery_company_name"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (s *SiteSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type AboutFeature struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// AboutUsContent is the editable "about us" page, also a single row.
type AboutUsContent struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Features  []AboutFeature `gorm:"serializer:json" json:"features"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (a *AboutUsContent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
