package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wilaya is a delivery zone with its two delivery prices: home delivery and
// pickup at the delivery company's desk.
type Wilaya struct {
	ID                string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string          `gorm:"unique;not null" json:"name"`
	DeliveryPriceHome decimal.Decimal `gorm:"type:decimal(10,2)" json:"delivery_price_home"`
	DeliveryPriceDesk decimal.Decimal `gorm:"type:decimal(10,2)" json:"delivery_price_desk"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
}

func (w *Wilaya) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
