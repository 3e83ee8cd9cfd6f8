package repository

import (
	"context"
	"errors"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	domainRepo "github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type finishingRepository struct {
	db *gorm.DB
}

// NewFinishingRepository creates a new finishing repository
func NewFinishingRepository(db *gorm.DB) domainRepo.FinishingRepository {
	return &finishingRepository{db: db}
}

func (r *finishingRepository) Create(ctx context.Context, finishing *entity.Finishing) error {
	return r.db.WithContext(ctx).Create(finishing).Error
}

func (r *finishingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Finishing, error) {
	var finishing entity.Finishing
	err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&finishing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &finishing, err
}

func (r *finishingRepository) Update(ctx context.Context, finishing *entity.Finishing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Save(finishing).Error; err != nil {
			return err
		}
		// Replace the category restriction set wholesale.
		return tx.Model(finishing).Association("Categories").Replace(finishing.Categories)
	})
}

func (r *finishingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Finishing{}, "id = ?", id).Error
}

func (r *finishingRepository) List(ctx context.Context) ([]entity.Finishing, error) {
	var finishings []entity.Finishing
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Order("name ASC").
		Find(&finishings).Error
	return finishings, err
}
