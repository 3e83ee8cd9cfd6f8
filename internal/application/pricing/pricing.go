package pricing

import (
	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NoFinishing is the finishing name meaning "no surcharge".
const NoFinishing = "None"

// DefaultIncrement is the rounding step used when no shop configuration
// overrides it.
const DefaultIncrement int64 = 500

// ProductInfo is the slice of the catalog the engine needs for one
// product: its per-tier price map and its category's unit policy.
type ProductInfo struct {
	Prices map[enum.Tier]int64
	Policy enum.UnitPolicy
}

// Catalog is a read-only lookup view over the reference data. The
// service layer builds it from repository reads; the engine itself
// holds no state.
type Catalog struct {
	Products   map[uuid.UUID]ProductInfo
	Finishings map[string]int64
}

// PriceFor resolves a product's price for a tier, falling back to the
// EndCustomer price when the tier price is absent or zero.
func (c Catalog) PriceFor(productID uuid.UUID, tier enum.Tier) int64 {
	info, ok := c.Products[productID]
	if !ok {
		return 0
	}
	if p := info.Prices[tier]; p > 0 {
		return p
	}
	return info.Prices[enum.TierEndCustomer]
}

// Surcharge resolves a finishing's flat per-quantity surcharge.
// "None" and unknown names cost nothing.
func (c Catalog) Surcharge(finishing string) int64 {
	if finishing == "" || finishing == NoFinishing {
		return 0
	}
	return c.Finishings[finishing]
}

// Multiplier returns the area multiplier for an item: length x width for
// PerArea products, 1 otherwise. Malformed or missing dimensions parse
// as 0, which zeroes the item's material cost.
func Multiplier(length, width string, policy enum.UnitPolicy) decimal.Decimal {
	if policy != enum.UnitPolicyPerArea {
		return decimal.NewFromInt(1)
	}
	l, err := decimal.NewFromString(length)
	if err != nil {
		l = decimal.Zero
	}
	w, err := decimal.NewFromString(width)
	if err != nil {
		w = decimal.Zero
	}
	return l.Mul(w)
}

// LineSubtotal computes one item's subtotal:
// (materialPrice x multiplier + finishingSurcharge) x quantity, truncated
// to whole currency units. A non-nil PriceOverride replaces the computed
// subtotal outright.
func LineSubtotal(item entity.OrderItem, tier enum.Tier, catalog Catalog) int64 {
	if item.PriceOverride != nil {
		return *item.PriceOverride
	}
	if item.ProductID == nil {
		return 0
	}

	price := decimal.NewFromInt(catalog.PriceFor(*item.ProductID, tier))
	policy := enum.UnitPolicyPerUnit
	if info, ok := catalog.Products[*item.ProductID]; ok {
		policy = info.Policy
	}
	mult := Multiplier(item.Length, item.Width, policy)
	surcharge := decimal.NewFromInt(catalog.Surcharge(item.FinishingName))
	qty := decimal.NewFromInt(int64(item.Quantity))

	return price.Mul(mult).Add(surcharge).Mul(qty).IntPart()
}

// Quote prices a whole order. It returns the per-line subtotals and the
// order total: the sum of subtotals rounded up once to the next multiple
// of increment. Rounding is applied to the total only, never per line.
func Quote(items []entity.OrderItem, tier enum.Tier, catalog Catalog, increment int64) (int64, []int64) {
	lines := make([]int64, len(items))
	var sum int64
	for i, item := range items {
		lines[i] = LineSubtotal(item, tier, catalog)
		sum += lines[i]
	}
	return RoundUp(sum, increment), lines
}

// RoundUp rounds total up to the next multiple of increment using
// ceiling division.
func RoundUp(total, increment int64) int64 {
	if increment <= 0 {
		increment = DefaultIncrement
	}
	if total <= 0 {
		return 0
	}
	return (total + increment - 1) / increment * increment
}

// AttributeRemainder adds the rounding remainder (total minus the line
// sum) to the last line so that displayed line totals reconcile with the
// printed grand total. Used when a payment is being finalized.
func AttributeRemainder(lines []int64, total int64) []int64 {
	if len(lines) == 0 {
		return lines
	}
	var sum int64
	for _, l := range lines {
		sum += l
	}
	out := make([]int64, len(lines))
	copy(out, lines)
	out[len(out)-1] += total - sum
	return out
}
