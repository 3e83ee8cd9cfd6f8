package entity

import (
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a print-shop customer. The assigned tier selects
// which product price column applies when orders are quoted.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null;index" json:"name"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Tier      enum.Tier      `gorm:"default:0" json:"tier"`
	JoinedAt  time.Time      `gorm:"type:date" json:"joined_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.JoinedAt.IsZero() {
		c.JoinedAt = time.Now()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
