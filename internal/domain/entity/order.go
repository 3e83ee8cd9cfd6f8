package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a customer print order. Total is derived from the pricing
// engine for the current items and customer tier; every edit to items
// recomputes and persists a new total. CustomerName is a denormalized
// cache of the referenced customer, refreshed at the read boundary.
type Order struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	NotaNo       string         `gorm:"size:100;unique;not null" json:"nota_no"`
	CustomerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName string         `gorm:"size:255;not null" json:"customer_name"`
	OrderDate    time.Time      `gorm:"type:date;not null" json:"order_date"`
	Detail       string         `gorm:"type:text" json:"detail"`
	Total        int64          `gorm:"not null;default:0" json:"total"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single line of an order. LineNo is client-assigned and
// unique within its order. Length and Width are decimal strings that only
// matter for PerArea categories; anything unparseable counts as 0.
// PriceOverride, when set, replaces the computed line subtotal outright
// and is only used while a payment is being finalized.
type OrderItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_order_line" json:"order_id"`
	LineNo        int            `gorm:"not null;uniqueIndex:ux_order_line" json:"line_no"`
	ProductID     *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName   string         `gorm:"size:255" json:"product_name"`
	FinishingName string         `gorm:"size:255;default:'None'" json:"finishing_name"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Length        string         `gorm:"size:32" json:"length"`
	Width         string         `gorm:"size:32" json:"width"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	PriceOverride *int64         `json:"price_override,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order    `gorm:"foreignKey:OrderID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
