package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SettingKeyShop addresses the shop configuration object.
const SettingKeyShop = "shop"

// Setting is one row of the key/value configuration table. Values are
// JSON-encoded configuration objects addressed by string key.
type Setting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Key       string         `gorm:"size:100;unique;not null" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName returns the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}

// ShopConfig is the configuration object stored under SettingKeyShop.
type ShopConfig struct {
	// GraceDays is added to an order's date to compute the due date of a
	// receivable created without an explicit one.
	GraceDays int `json:"grace_days"`
	// RoundingIncrement is the step order totals are rounded up to.
	RoundingIncrement int64 `json:"rounding_increment"`
	// DefaultDiscount pre-fills the discount field at payment time.
	DefaultDiscount int64 `json:"default_discount"`
}

// DefaultShopConfig returns the configuration seeded on first boot.
func DefaultShopConfig() ShopConfig {
	return ShopConfig{
		GraceDays:         7,
		RoundingIncrement: 500,
		DefaultDiscount:   0,
	}
}
