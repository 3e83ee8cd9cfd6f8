package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	domainRepo "github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/infrastructure/repository"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
	"github.com/ardiansn/cetakflow-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func TestCreateOrderPricesAndNumbersTheOrder(t *testing.T) {
	env := newTestEnv(t)

	order, _ := env.seedBannerOrder(t)

	assert.Equal(t, "NOTA-00001", order.NotaNo)
	assert.Equal(t, int64(305000), order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Eyelets", order.Items[0].FinishingName)
	assert.Contains(t, order.Detail, "Flexi 280gsm")
}

func TestCreateOrderSequentialNotaNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.seedCustomer(t, "Sari", enum.TierRetail)
	category := env.seedCategory(t, "Stickers", enum.UnitPolicyPerUnit)
	product := env.seedProduct(t, "Vinyl Sticker", category.ID, map[enum.Tier]int64{
		enum.TierEndCustomer: 2000,
	})

	input := func() *CreateOrderInput {
		return &CreateOrderInput{
			CustomerID: customer.ID,
			Items: []OrderItemInput{{
				LineNo:      1,
				ProductID:   &product.ID,
				Description: "Logo stickers",
				Quantity:    10,
			}},
		}
	}

	first, err := env.orders.CreateOrder(ctx, input())
	require.NoError(t, err)
	second, err := env.orders.CreateOrder(ctx, input())
	require.NoError(t, err)
	third, err := env.orders.CreateOrder(ctx, input())
	require.NoError(t, err)

	assert.Equal(t, "NOTA-00001", first.NotaNo)
	assert.Equal(t, "NOTA-00002", second.NotaNo)
	assert.Equal(t, "NOTA-00003", third.NotaNo)
}

func TestCreateOrderRejectsInvalidItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.seedCustomer(t, "Sari", enum.TierRetail)

	_, err := env.orders.CreateOrder(ctx, &CreateOrderInput{CustomerID: customer.ID})
	require.Error(t, err)

	productID := uuid.New()
	_, err = env.orders.CreateOrder(ctx, &CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:      1,
			ProductID:   &productID,
			Description: "",
			Quantity:    0,
		}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 2)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	customer := env.seedCustomer(t, "Sari", enum.TierRetail)
	missing := uuid.New()

	_, err := env.orders.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:      1,
			ProductID:   &missing,
			Description: "Ghost product",
			Quantity:    1,
		}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateOrderUsesCustomerTierPricing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	wholesale := env.seedCustomer(t, "Toko Maju", enum.TierWholesale)
	category := env.seedCategory(t, "Business Cards", enum.UnitPolicyPerUnit)
	product := env.seedProduct(t, "Art Carton 260", category.ID, map[enum.Tier]int64{
		enum.TierEndCustomer: 1000,
		enum.TierWholesale:   700,
	})

	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		CustomerID: wholesale.ID,
		Items: []OrderItemInput{{
			LineNo:      1,
			ProductID:   &product.ID,
			Description: "Name cards",
			Quantity:    100,
		}},
	})
	require.NoError(t, err)

	// 700 x 100, already a multiple of the 500 rounding step.
	assert.Equal(t, int64(70000), order.Total)
}

func TestUpdateOrderResyncsReceivable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, customer := env.seedBannerOrder(t)

	// Settle the order in full first.
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: order.Total})
	require.NoError(t, err)

	receivable, err := env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, receivable.PaymentStatus)

	// Raising the quantity raises the total; the receivable must follow
	// and flip back to Unpaid.
	items := order.Items
	updated, err := env.orders.UpdateOrder(ctx, order.ID, &UpdateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:        1,
			ProductID:     items[0].ProductID,
			FinishingName: items[0].FinishingName,
			Description:   items[0].Description,
			Length:        items[0].Length,
			Width:         items[0].Width,
			Quantity:      2,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(610000), updated.Total)

	receivable, err = env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(610000), receivable.Amount)
	assert.Equal(t, enum.PaymentStatusUnpaid, receivable.PaymentStatus)
	assert.Equal(t, int64(305000), receivable.Balance())
}

func TestUpdateOrderLoweredTotalMarksPaid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, customer := env.seedBannerOrder(t)

	// Partial payment leaves it unpaid.
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 200000})
	require.NoError(t, err)

	receivable, err := env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusUnpaid, receivable.PaymentStatus)

	// Shrink the order below what was already paid; the resync flips the
	// receivable to Paid without any new payment.
	items := order.Items
	override := int64(150000)
	_, err = env.orders.UpdateOrder(ctx, order.ID, &UpdateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:        1,
			ProductID:     items[0].ProductID,
			FinishingName: items[0].FinishingName,
			Description:   items[0].Description,
			Length:        items[0].Length,
			Width:         items[0].Width,
			Quantity:      1,
			PriceOverride: &override,
		}},
	})
	require.NoError(t, err)

	receivable, err = env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), receivable.Amount)
	assert.Equal(t, enum.PaymentStatusPaid, receivable.PaymentStatus)
}

func TestCreateOrderRejectsRestrictedFinishing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.seedCustomer(t, "Sari", enum.TierRetail)
	banners := env.seedCategory(t, "Outdoor Banner", enum.UnitPolicyPerArea)
	stickers := env.seedCategory(t, "Stickers", enum.UnitPolicyPerUnit)
	sticker := env.seedProduct(t, "Vinyl Sticker", stickers.ID, map[enum.Tier]int64{
		enum.TierEndCustomer: 2000,
	})

	_, err := env.catalog.CreateFinishing(ctx, FinishingInput{
		Name:        "Eyelets",
		Surcharge:   5000,
		CategoryIDs: []uuid.UUID{banners.ID},
	})
	require.NoError(t, err)

	_, err = env.orders.CreateOrder(ctx, &CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:        1,
			ProductID:     &sticker.ID,
			FinishingName: "Eyelets",
			Description:   "Logo stickers",
			Quantity:      10,
		}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "items[1].finishing", appErr.Errors[0].Field)

	// The same finishing is fine on a product in its category.
	banner := env.seedProduct(t, "Flexi 280gsm", banners.ID, map[enum.Tier]int64{
		enum.TierEndCustomer: 50000,
	})
	_, err = env.orders.CreateOrder(ctx, &CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:        1,
			ProductID:     &banner.ID,
			FinishingName: "Eyelets",
			Description:   "Storefront banner",
			Length:        "2",
			Width:         "3",
			Quantity:      1,
		}},
	})
	require.NoError(t, err)
}

type receivableRepoFailingSave struct {
	domainRepo.ReceivableRepository
}

func (r *receivableRepoFailingSave) Save(ctx context.Context, tx *gorm.DB, receivable *entity.Receivable) error {
	return errors.New("receivables store unavailable")
}

func TestUpdateOrderSyncFailureRollsBackOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, customer := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 1000})
	require.NoError(t, err)

	broken := NewOrderService(
		repository.NewOrderRepository(env.db),
		&receivableRepoFailingSave{env.receivableRepo},
		repository.NewCustomerRepository(env.db),
		repository.NewProductRepository(env.db),
		repository.NewFinishingRepository(env.db),
		repository.NewSequenceRepository(env.db),
		env.settings,
		env.hub,
		zaptest.NewLogger(t),
	)

	items := order.Items
	_, err = broken.UpdateOrder(ctx, order.ID, &UpdateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:        1,
			ProductID:     items[0].ProductID,
			FinishingName: items[0].FinishingName,
			Description:   items[0].Description,
			Length:        items[0].Length,
			Width:         items[0].Width,
			Quantity:      2,
		}},
	})
	require.Error(t, err)
	// One transaction covers both writes, so nothing was applied and the
	// error must not claim a half-updated state.
	assert.NotEqual(t, 409, apperror.GetAppError(err).Code)

	fetched, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(305000), fetched.Total)

	receivable, err := env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(305000), receivable.Amount)
}

func TestListOrdersIgnoresUnknownSortColumn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)

	result, err := env.orders.ListOrders(ctx, &domainRepo.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		SortBy:     "total; DROP TABLE orders",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, order.ID, result.Items[0].ID)

	result, err = env.orders.ListOrders(ctx, &domainRepo.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		SortBy:     "nota_no",
		SortOrder:  "asc",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
}

func TestGetOrderRefreshesCustomerName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, customer := env.seedBannerOrder(t)
	assert.Equal(t, "Budi", order.CustomerName)

	_, err := env.customers.UpdateCustomer(ctx, customer.ID, CustomerInput{
		Name: "Budi Santoso",
		Tier: customer.Tier,
	})
	require.NoError(t, err)

	fetched, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", fetched.CustomerName)
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)

	require.NoError(t, env.orders.DeleteOrder(ctx, order.ID))

	_, err := env.orders.GetOrder(ctx, order.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	err = env.orders.DeleteOrder(ctx, order.ID)
	require.Error(t, err)
}

func TestListUnprocessedOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, _ := env.seedBannerOrder(t)

	customer := env.seedCustomer(t, "Sari", enum.TierRetail)
	category := env.seedCategory(t, "Stickers", enum.UnitPolicyPerUnit)
	product := env.seedProduct(t, "Vinyl Sticker", category.ID, map[enum.Tier]int64{
		enum.TierEndCustomer: 2000,
	})
	second, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:      1,
			ProductID:   &product.ID,
			Description: "Logo stickers",
			Quantity:    10,
		}},
	})
	require.NoError(t, err)

	// Both orders start unprocessed.
	unprocessed, err := env.orders.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Len(t, unprocessed, 2)

	// A queued receivable still counts as unprocessed.
	_, err = env.receivables.PayUnprocessedOrder(ctx, first.ID, PaymentInput{Amount: 1000})
	require.NoError(t, err)
	unprocessed, err = env.orders.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Len(t, unprocessed, 2)

	// Entering production removes it from the list.
	_, err = env.production.ProcessOrder(ctx, second.ID)
	require.NoError(t, err)
	unprocessed, err = env.orders.ListUnprocessed(ctx)
	require.NoError(t, err)
	require.Len(t, unprocessed, 1)
	assert.Equal(t, first.ID, unprocessed[0].ID)
}
