package entity

import (
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products and carries the unit policy that decides
// whether an item's material price scales by length x width.
type Category struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name       string          `gorm:"size:255;unique;not null" json:"name"`
	UnitPolicy enum.UnitPolicy `gorm:"default:0" json:"unit_policy"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Product is a sellable print product with one price row per customer tier.
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category       `gorm:"foreignKey:CategoryID" json:"category"`
	Prices   []ProductPrice `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"prices"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceFor resolves the product price for a tier, falling back to the
// EndCustomer price when the tier-specific price is absent or zero.
func (p *Product) PriceFor(tier enum.Tier) int64 {
	var fallback int64
	for _, price := range p.Prices {
		if price.Tier == tier && price.Price > 0 {
			return price.Price
		}
		if price.Tier == enum.TierEndCustomer {
			fallback = price.Price
		}
	}
	return fallback
}

// ProductPrice is one row of a product's per-tier price map.
// Prices are whole currency units, not cents.
type ProductPrice struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_product_tier" json:"product_id"`
	Tier      enum.Tier `gorm:"not null;uniqueIndex:ux_product_tier" json:"tier"`
	Price     int64     `gorm:"not null;default:0" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product price
func (pp *ProductPrice) BeforeCreate(tx *gorm.DB) error {
	if pp.ID == uuid.Nil {
		pp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductPrice model
func (ProductPrice) TableName() string {
	return "product_prices"
}
