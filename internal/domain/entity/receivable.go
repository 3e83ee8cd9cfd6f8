package entity

import (
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receivable tracks what is owed against an order. Its ID equals the
// order's ID (one-to-one when it exists). Amount must track Order.Total
// whenever the order is edited; PaymentStatus is always re-derived from
// the recorded payments plus discount against Amount.
type Receivable struct {
	ID               uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName     string                `gorm:"size:255;not null" json:"customer_name"`
	Amount           int64                 `gorm:"not null;default:0" json:"amount"`
	DueDate          time.Time             `gorm:"type:date;not null" json:"due_date"`
	PaymentStatus    enum.PaymentStatus    `gorm:"default:0" json:"payment_status"`
	ProductionStatus enum.ProductionStatus `gorm:"default:0;index" json:"production_status"`
	Discount         int64                 `gorm:"not null;default:0" json:"discount"`
	DeliveryDate     *time.Time            `json:"delivery_date,omitempty"`
	DeliveryNote     string                `gorm:"type:text" json:"delivery_note"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
	DeletedAt        gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Payments []Payment `gorm:"foreignKey:ReceivableID;constraint:OnDelete:CASCADE" json:"payments"`
}

// TableName returns the table name for the Receivable model
func (Receivable) TableName() string {
	return "receivables"
}

// TotalPaid sums every recorded payment.
func (r *Receivable) TotalPaid() int64 {
	var paid int64
	for _, p := range r.Payments {
		paid += p.Amount
	}
	return paid
}

// Balance is the remaining amount owed, never negative.
func (r *Receivable) Balance() int64 {
	balance := r.Amount - r.Discount - r.TotalPaid()
	if balance < 0 {
		return 0
	}
	return balance
}

// DeriveStatus returns Paid iff payments plus discount cover the amount.
// Equality counts as Paid.
func (r *Receivable) DeriveStatus() enum.PaymentStatus {
	if r.TotalPaid()+r.Discount >= r.Amount {
		return enum.PaymentStatusPaid
	}
	return enum.PaymentStatusUnpaid
}

// Payment is a single recorded payment against a receivable. MethodName
// is denormalized from the payment method at recording time.
type Payment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReceivableID uuid.UUID  `gorm:"type:uuid;not null;index" json:"receivable_id"`
	Amount       int64      `gorm:"not null" json:"amount"`
	Date         time.Time  `gorm:"type:date;not null" json:"date"`
	MethodID     *uuid.UUID `gorm:"type:uuid" json:"method_id,omitempty"`
	MethodName   string     `gorm:"size:100" json:"method_name"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
