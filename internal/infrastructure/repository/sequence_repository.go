package repository

import (
	"context"
	"errors"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	domainRepo "github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Get(ctx context.Context, name string) (*entity.NotaSequence, error) {
	var seq entity.NotaSequence
	err := r.db.WithContext(ctx).First(&seq, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &seq, err
}

// Claim advances the counter with a single in-database increment and
// reads the row back in the same transaction. The UPDATE takes the row
// lock, so concurrent claimers serialize and never observe the same
// value. Returns the sequence and the claimed (pre-increment) value.
func (r *sequenceRepository) Claim(ctx context.Context, name string) (*entity.NotaSequence, int64, error) {
	var seq entity.NotaSequence
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.NotaSequence{}).
			Where("name = ?", name).
			UpdateColumn("next_value", gorm.Expr("next_value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&seq, "name = ?", name).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return &seq, seq.NextValue - 1, nil
}

func (r *sequenceRepository) Update(ctx context.Context, seq *entity.NotaSequence) error {
	return r.db.WithContext(ctx).Save(seq).Error
}
