package repository

import (
	"context"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByNotaNo(ctx context.Context, notaNo string) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// Update persists the order header and replaces its items inside the
	// given transaction when tx is non-nil, otherwise in its own.
	Update(ctx context.Context, tx *gorm.DB, order *entity.Order) error
	// UpdateTotal persists only the order's total, leaving items alone.
	UpdateTotal(ctx context.Context, id uuid.UUID, total int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Order, error)
	// ListUnprocessed returns orders with no receivable, or whose
	// receivable is still queued.
	ListUnprocessed(ctx context.Context) ([]entity.Order, error)
	// Transaction runs fn inside a single database transaction.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
