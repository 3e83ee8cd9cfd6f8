package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finishing is a flat per-quantity surcharge (lamination, cutting,
// eyelets). The surcharge is never scaled by area. An empty Categories
// set means the finishing applies to every category.
type Finishing struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;unique;not null" json:"name"`
	Surcharge int64          `gorm:"not null;default:0" json:"surcharge"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Categories []Category `gorm:"many2many:finishing_categories" json:"categories"`
}

// BeforeCreate generates a UUID before creating a new finishing
func (f *Finishing) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Finishing model
func (Finishing) TableName() string {
	return "finishings"
}

// AppliesTo reports whether the finishing may be used with the given
// category. An empty restriction set is unrestricted.
func (f *Finishing) AppliesTo(categoryID uuid.UUID) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, c := range f.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
