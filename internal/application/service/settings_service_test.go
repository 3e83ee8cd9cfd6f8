package service

import (
	"context"
	"testing"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopConfigDefaults(t *testing.T) {
	env := newTestEnv(t)

	cfg, err := env.settings.GetShopConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.GraceDays)
	assert.Equal(t, int64(500), cfg.RoundingIncrement)
	assert.Equal(t, int64(0), cfg.DefaultDiscount)
}

func TestUpdateShopConfig(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	updated, err := env.settings.UpdateShopConfig(ctx, entity.ShopConfig{
		GraceDays:         14,
		RoundingIncrement: 1000,
		DefaultDiscount:   2500,
	})
	require.NoError(t, err)
	assert.Equal(t, 14, updated.GraceDays)

	cfg, err := env.settings.GetShopConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.GraceDays)
	assert.Equal(t, int64(1000), cfg.RoundingIncrement)
	assert.Equal(t, int64(2500), cfg.DefaultDiscount)

	_, err = env.settings.UpdateShopConfig(ctx, entity.ShopConfig{GraceDays: -1, RoundingIncrement: 500})
	require.Error(t, err)
	_, err = env.settings.UpdateShopConfig(ctx, entity.ShopConfig{GraceDays: 7, RoundingIncrement: 0})
	require.Error(t, err)
}

func TestUpdatedRoundingAffectsNewOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.settings.UpdateShopConfig(ctx, entity.ShopConfig{
		GraceDays:         7,
		RoundingIncrement: 10000,
	})
	require.NoError(t, err)

	order, _ := env.seedBannerOrder(t)
	// 305000 rounds up to the next multiple of 10000.
	assert.Equal(t, int64(310000), order.Total)
}

func TestUpdateSequence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seq, err := env.settings.GetSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NOTA-", seq.Prefix)
	assert.Equal(t, int64(1), seq.NextValue)

	updated, err := env.settings.UpdateSequence(ctx, UpdateSequenceInput{
		Prefix:    "INV/",
		NextValue: 100,
		Padding:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV/0100", updated.Format(updated.NextValue))

	// The next order picks up the edited counter.
	order, _ := env.seedBannerOrder(t)
	assert.Equal(t, "INV/0100", order.NotaNo)

	_, err = env.settings.UpdateSequence(ctx, UpdateSequenceInput{Prefix: "X", NextValue: 0, Padding: 5})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	_, err = env.settings.UpdateSequence(ctx, UpdateSequenceInput{Prefix: "X", NextValue: 1, Padding: 13})
	require.Error(t, err)
}
