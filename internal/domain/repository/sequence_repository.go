package repository

import (
	"context"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
)

// SequenceRepository defines the interface for the shared nota counter.
type SequenceRepository interface {
	Get(ctx context.Context, name string) (*entity.NotaSequence, error)
	// Claim atomically returns the current counter value and advances it
	// by exactly one. Concurrent claimers never observe the same value.
	Claim(ctx context.Context, name string) (*entity.NotaSequence, int64, error)
	// Update overwrites the user-editable prefix, next value and padding.
	Update(ctx context.Context, seq *entity.NotaSequence) error
}
