package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	domainRepo "github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type receivableRepository struct {
	db *gorm.DB
}

// NewReceivableRepository creates a new receivable repository
func NewReceivableRepository(db *gorm.DB) domainRepo.ReceivableRepository {
	return &receivableRepository{db: db}
}

func (r *receivableRepository) Create(ctx context.Context, receivable *entity.Receivable) error {
	return r.db.WithContext(ctx).Create(receivable).Error
}

func (r *receivableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receivable, error) {
	var receivable entity.Receivable
	err := r.db.WithContext(ctx).First(&receivable, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receivable, err
}

func (r *receivableRepository) GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Receivable, error) {
	var receivable entity.Receivable
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC, created_at ASC") }).
		First(&receivable, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receivable, err
}

func (r *receivableRepository) Save(ctx context.Context, tx *gorm.DB, receivable *entity.Receivable) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Omit("Payments").Save(receivable).Error
}

func (r *receivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entity.Payment{}, "receivable_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&entity.Receivable{}, "id = ?", id).Error
	})
}

func (r *receivableRepository) List(ctx context.Context, params *domainRepo.ReceivableFilterParams) ([]entity.Receivable, int64, error) {
	var receivables []entity.Receivable
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receivable{})

	if params.Search != "" {
		query = query.Where("customer_name ILIKE ?", "%"+params.Search+"%")
	}

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	if params.ProductionStatus != nil {
		query = query.Where("production_status = ?", *params.ProductionStatus)
	}

	if params.DueBefore != nil {
		query = query.Where("due_date <= ?", *params.DueBefore)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC, created_at ASC") }).
		Order("due_date ASC, created_at DESC").
		Find(&receivables).Error

	return receivables, total, err
}

func (r *receivableRepository) ListAll(ctx context.Context) ([]entity.Receivable, error) {
	var receivables []entity.Receivable
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC, created_at ASC") }).
		Find(&receivables).Error
	return receivables, err
}

func (r *receivableRepository) AddPayment(ctx context.Context, tx *gorm.DB, payment *entity.Payment) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Create(payment).Error
}

func (r *receivableRepository) UpdateDueDate(ctx context.Context, id uuid.UUID, due time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.Receivable{}).
		Where("id = ?", id).
		Update("due_date", due)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *receivableRepository) UpdateProductionStatus(ctx context.Context, id uuid.UUID, status enum.ProductionStatus) error {
	res := r.db.WithContext(ctx).Model(&entity.Receivable{}).
		Where("id = ?", id).
		Update("production_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *receivableRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
