package repository

import (
	"context"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/ardiansn/cetakflow-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceivableRepository defines the interface for receivable data operations
type ReceivableRepository interface {
	Create(ctx context.Context, receivable *entity.Receivable) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receivable, error)
	GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Receivable, error)
	// Save persists the receivable header inside the given transaction
	// when tx is non-nil, otherwise in its own.
	Save(ctx context.Context, tx *gorm.DB, receivable *entity.Receivable) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ReceivableFilterParams) ([]entity.Receivable, int64, error)
	ListAll(ctx context.Context) ([]entity.Receivable, error)
	AddPayment(ctx context.Context, tx *gorm.DB, payment *entity.Payment) error
	UpdateDueDate(ctx context.Context, id uuid.UUID, due time.Time) error
	UpdateProductionStatus(ctx context.Context, id uuid.UUID, status enum.ProductionStatus) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ReceivableFilterParams contains filtering parameters for receivable queries
type ReceivableFilterParams struct {
	Pagination       *pagination.PaginationParams
	Search           string
	PaymentStatus    *enum.PaymentStatus
	ProductionStatus *enum.ProductionStatus
	DueBefore        *time.Time
}
