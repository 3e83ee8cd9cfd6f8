package database

import (
	"encoding/json"
	"fmt"

	"github.com/ardiansn/cetakflow-api/internal/config"
	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Catalog entities
		&entity.Category{},
		&entity.Product{},
		&entity.ProductPrice{},
		&entity.Finishing{},
		&entity.Customer{},
		&entity.PaymentMethod{},

		// Order-to-cash entities
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Receivable{},
		&entity.Payment{},

		// System entities
		&entity.NotaSequence{},
		&entity.Setting{},
	)
}

// SeedDefaultData seeds the nota sequence, shop configuration and the
// built-in payment methods. Safe to run on every boot.
func SeedDefaultData(db *gorm.DB, log *zap.Logger) error {
	var seq entity.NotaSequence
	if err := db.Where("name = ?", entity.DefaultNotaSequence).First(&seq).Error; err != nil {
		seq = entity.NotaSequence{
			Name:      entity.DefaultNotaSequence,
			Prefix:    "NOTA-",
			NextValue: 1,
			Padding:   5,
		}
		if err := db.Create(&seq).Error; err != nil {
			return fmt.Errorf("failed to seed nota sequence: %w", err)
		}
	}

	var shop entity.Setting
	if err := db.Where("key = ?", entity.SettingKeyShop).First(&shop).Error; err != nil {
		raw, err := json.Marshal(entity.DefaultShopConfig())
		if err != nil {
			return err
		}
		shop = entity.Setting{Key: entity.SettingKeyShop, Value: datatypes.JSON(raw)}
		if err := db.Create(&shop).Error; err != nil {
			return fmt.Errorf("failed to seed shop settings: %w", err)
		}
	}

	for _, name := range []string{"Cash", "Bank Transfer", "QRIS"} {
		var existing entity.PaymentMethod
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&entity.PaymentMethod{Name: name}).Error; err != nil {
				log.Warn("failed to seed payment method", zap.String("name", name), zap.Error(err))
			}
		}
	}

	return nil
}
