package pricing

import (
	"testing"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testCatalog(productID uuid.UUID, policy enum.UnitPolicy, prices map[enum.Tier]int64) Catalog {
	return Catalog{
		Products: map[uuid.UUID]ProductInfo{
			productID: {Prices: prices, Policy: policy},
		},
		Finishings: map[string]int64{
			"Eyelets":    5000,
			"Lamination": 3000,
		},
	}
}

func TestMultiplier(t *testing.T) {
	assert.True(t, Multiplier("2", "3", enum.UnitPolicyPerUnit).Equal(decimal.NewFromInt(1)))
	assert.True(t, Multiplier("2", "3", enum.UnitPolicyPerArea).Equal(decimal.NewFromInt(6)))
	assert.True(t, Multiplier("2.5", "4", enum.UnitPolicyPerArea).Equal(decimal.NewFromInt(10)))

	// Malformed or missing dimensions zero the multiplier.
	assert.True(t, Multiplier("", "3", enum.UnitPolicyPerArea).IsZero())
	assert.True(t, Multiplier("abc", "3", enum.UnitPolicyPerArea).IsZero())
}

func TestLineSubtotalPerArea(t *testing.T) {
	productID := uuid.New()
	catalog := testCatalog(productID, enum.UnitPolicyPerArea, map[enum.Tier]int64{
		enum.TierEndCustomer: 50000,
	})

	// 50000 x (2x3) + 5000 eyelets, one piece.
	item := entity.OrderItem{
		ProductID:     &productID,
		FinishingName: "Eyelets",
		Length:        "2",
		Width:         "3",
		Quantity:      1,
	}
	assert.Equal(t, int64(305000), LineSubtotal(item, enum.TierEndCustomer, catalog))

	// Surcharge is flat per quantity, never scaled by area.
	item.Quantity = 2
	assert.Equal(t, int64(610000), LineSubtotal(item, enum.TierEndCustomer, catalog))
}

func TestLineSubtotalFractionalArea(t *testing.T) {
	productID := uuid.New()
	catalog := testCatalog(productID, enum.UnitPolicyPerArea, map[enum.Tier]int64{
		enum.TierEndCustomer: 15000,
	})

	// 15000 x (1.5x0.9) = 20250, exact in decimal arithmetic.
	item := entity.OrderItem{
		ProductID:     &productID,
		FinishingName: NoFinishing,
		Length:        "1.5",
		Width:         "0.9",
		Quantity:      1,
	}
	assert.Equal(t, int64(20250), LineSubtotal(item, enum.TierEndCustomer, catalog))
}

func TestLineSubtotalTierFallback(t *testing.T) {
	productID := uuid.New()
	catalog := testCatalog(productID, enum.UnitPolicyPerUnit, map[enum.Tier]int64{
		enum.TierEndCustomer: 10000,
		enum.TierWholesale:   8000,
	})

	item := entity.OrderItem{ProductID: &productID, FinishingName: NoFinishing, Quantity: 1}

	assert.Equal(t, int64(8000), LineSubtotal(item, enum.TierWholesale, catalog))
	// No reseller price configured: falls back to the end-customer price.
	assert.Equal(t, int64(10000), LineSubtotal(item, enum.TierReseller, catalog))
}

func TestLineSubtotalZeroTierPriceFallsBack(t *testing.T) {
	productID := uuid.New()
	catalog := testCatalog(productID, enum.UnitPolicyPerUnit, map[enum.Tier]int64{
		enum.TierEndCustomer: 10000,
		enum.TierRetail:      0,
	})

	item := entity.OrderItem{ProductID: &productID, FinishingName: NoFinishing, Quantity: 1}
	assert.Equal(t, int64(10000), LineSubtotal(item, enum.TierRetail, catalog))
}

func TestLineSubtotalOverride(t *testing.T) {
	productID := uuid.New()
	catalog := testCatalog(productID, enum.UnitPolicyPerUnit, map[enum.Tier]int64{
		enum.TierEndCustomer: 10000,
	})

	override := int64(7500)
	item := entity.OrderItem{
		ProductID:     &productID,
		FinishingName: "Eyelets",
		Quantity:      3,
		PriceOverride: &override,
	}
	// The override replaces the whole computed subtotal, not the unit price.
	assert.Equal(t, int64(7500), LineSubtotal(item, enum.TierEndCustomer, catalog))
}

func TestLineSubtotalNoProduct(t *testing.T) {
	catalog := Catalog{Products: map[uuid.UUID]ProductInfo{}, Finishings: map[string]int64{}}
	item := entity.OrderItem{FinishingName: NoFinishing, Quantity: 2}
	assert.Equal(t, int64(0), LineSubtotal(item, enum.TierEndCustomer, catalog))
}

func TestRoundUp(t *testing.T) {
	assert.Equal(t, int64(305000), RoundUp(305000, 500))
	assert.Equal(t, int64(305500), RoundUp(305001, 500))
	assert.Equal(t, int64(500), RoundUp(1, 500))
	assert.Equal(t, int64(0), RoundUp(0, 500))
	// Non-positive increment falls back to the default step.
	assert.Equal(t, int64(1000), RoundUp(750, 0))
}

func TestQuoteRoundsTotalOnce(t *testing.T) {
	productID := uuid.New()
	catalog := testCatalog(productID, enum.UnitPolicyPerUnit, map[enum.Tier]int64{
		enum.TierEndCustomer: 1201,
	})

	items := []entity.OrderItem{
		{ProductID: &productID, FinishingName: NoFinishing, Quantity: 1},
		{ProductID: &productID, FinishingName: NoFinishing, Quantity: 1},
	}

	total, lines := Quote(items, enum.TierEndCustomer, catalog, 500)

	// Lines keep their exact subtotals; only the sum rounds up.
	assert.Equal(t, []int64{1201, 1201}, lines)
	assert.Equal(t, int64(2500), total)
}

func TestAttributeRemainder(t *testing.T) {
	lines := AttributeRemainder([]int64{1201, 1201}, 2500)
	assert.Equal(t, []int64{1201, 1299}, lines)

	// No remainder leaves the lines untouched.
	lines = AttributeRemainder([]int64{1000, 1500}, 2500)
	assert.Equal(t, []int64{1000, 1500}, lines)

	assert.Empty(t, AttributeRemainder(nil, 500))
}
