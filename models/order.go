package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string
type DeliveryType string

const (
	// Order statuses (storefront flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed with the customer by phone
	OrderStatusShipped   OrderStatus = "shipped"   // Handed to the delivery company
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the parcel
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled; reserved stock is restored

	// Delivery types
	DeliveryHome DeliveryType = "home" // to the customer's address
	DeliveryDesk DeliveryType = "desk" // pickup at the delivery company's desk
)

// ParseOrderStatus maps a request string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusConfirmed):
		return OrderStatusConfirmed, nil
	case string(OrderStatusShipped):
		return OrderStatusShipped, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

type Order struct {
	ID                string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber       int64           `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerFirstName string          `gorm:"not null" json:"customer_first_name"`
	CustomerLastName  string          `json:"customer_last_name"`
	CustomerPhone     string          `gorm:"not null" json:"customer_phone"`
	WilayaID          *string         `gorm:"type:uuid" json:"wilaya_id,omitempty"`
	Wilaya            *Wilaya         `gorm:"foreignKey:WilayaID" json:"wilaya,omitempty"`
	MunicipalityName  string          `json:"municipality_name"`
	Address           string          `json:"address"`
	DeliveryType      DeliveryType    `gorm:"type:varchar(10);default:'home'" json:"delivery_type"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_price"`
	Status            OrderStatus     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	IsRead            bool            `gorm:"default:false" json:"is_read"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt         time.Time       `json:"created_at"`
	ConfirmedAt       *time.Time      `json:"confirmed_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// CustomerName is what the notification feed shows for a new order.
func (o *Order) CustomerName() string {
	return strings.TrimSpace(o.CustomerFirstName + " " + o.CustomerLastName)
}

// OrderItem snapshots the product at order time. ProductID and VariantID are
// weak references: deleting a product detaches them (sets NULL) so the
// historical line keeps its name and price.
type OrderItem struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       string          `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID     *string         `gorm:"type:uuid" json:"product_id,omitempty"`
	VariantID     *string         `gorm:"type:uuid" json:"variant_id,omitempty"`
	ProductName   string          `gorm:"not null" json:"product_name"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	SelectedSize  string          `json:"selected_size"`
	SelectedColor string          `json:"selected_color"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
