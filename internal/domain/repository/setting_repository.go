package repository

import (
	"context"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
)

// SettingRepository defines the interface for the key/value settings table.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
	// Set upserts the value stored under key.
	Set(ctx context.Context, key string, value interface{}) error
}
