package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"unique;not null" json:"name"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_price,omitempty"`
	CategoryID    *string          `gorm:"type:uuid" json:"category_id,omitempty"`
	Category      *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images        []string         `gorm:"serializer:json" json:"images"`
	IsActive      bool             `gorm:"default:true" json:"is_active"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductVariant is one purchasable size/color combination of a product and
// the unit of stock tracking. Quantity never goes below zero.
type ProductVariant struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;index;not null" json:"product_id"`
	Size      string    `gorm:"not null" json:"size"`
	ColorName string    `gorm:"not null" json:"color_name"`
	ColorHex  string    `json:"color_hex"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
