package repository

import (
	"context"
	"testing"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSequenceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.NotaSequence{}))
	require.NoError(t, db.Create(&entity.NotaSequence{
		Name:      entity.DefaultNotaSequence,
		Prefix:    "NOTA-",
		NextValue: 1,
		Padding:   5,
	}).Error)
	return db
}

func TestClaimAdvancesByOne(t *testing.T) {
	db := newSequenceTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()

	seq, claimed, err := repo.Claim(ctx, entity.DefaultNotaSequence)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claimed)
	assert.Equal(t, "NOTA-00001", seq.Format(claimed))

	_, claimed, err = repo.Claim(ctx, entity.DefaultNotaSequence)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claimed)

	stored, err := repo.Get(ctx, entity.DefaultNotaSequence)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.NextValue)
}

func TestClaimUnknownSequence(t *testing.T) {
	db := newSequenceTestDB(t)
	repo := NewSequenceRepository(db)

	_, _, err := repo.Claim(context.Background(), "missing")
	require.Error(t, err)
}

func TestGetUnknownSequenceReturnsNil(t *testing.T) {
	db := newSequenceTestDB(t)
	repo := NewSequenceRepository(db)

	seq, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, seq)
}
