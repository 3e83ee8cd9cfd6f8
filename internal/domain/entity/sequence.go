package entity

import (
	"fmt"
	"time"
)

// DefaultNotaSequence is the name of the shared order-number counter.
const DefaultNotaSequence = "nota"

// NotaSequence is the shared counter behind sequential order numbers.
// Prefix and NextValue are user-editable; claiming a number must advance
// NextValue atomically with respect to concurrent creators.
type NotaSequence struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;unique;not null" json:"name"`
	Prefix    string    `gorm:"size:20;not null;default:'NOTA-'" json:"prefix"`
	NextValue int64     `gorm:"not null;default:1" json:"next_value"`
	Padding   int       `gorm:"not null;default:5" json:"padding"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the NotaSequence model
func (NotaSequence) TableName() string {
	return "nota_sequences"
}

// Format renders a claimed counter value as a nota number.
func (s *NotaSequence) Format(value int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Padding, value)
}
