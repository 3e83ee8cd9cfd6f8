package service

import (
	"context"
	"testing"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayUnprocessedOrderCreatesQueuedReceivable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)

	receivable, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 100000})
	require.NoError(t, err)

	assert.Equal(t, order.ID, receivable.ID)
	assert.Equal(t, order.Total, receivable.Amount)
	assert.Equal(t, enum.ProductionStatusQueued, receivable.ProductionStatus)
	assert.Equal(t, enum.PaymentStatusUnpaid, receivable.PaymentStatus)
	require.Len(t, receivable.Payments, 1)
	assert.Equal(t, int64(100000), receivable.Payments[0].Amount)

	// Due date is the order date plus the configured grace period.
	wantDue := order.OrderDate.AddDate(0, 0, 7)
	assert.Equal(t, wantDue.Format("2006-01-02"), receivable.DueDate.Format("2006-01-02"))
}

func TestPayUnprocessedOrderConflictsWhenReceivableExists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)

	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 1000})
	require.NoError(t, err)

	_, err = env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 1000})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestProcessPaymentLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t) // total 305000

	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 100000})
	require.NoError(t, err)

	// A 5000 discount arrives with the next payment of 0: balance becomes
	// 305000 - 100000 - 5000 = 200000, still unpaid.
	discount := int64(5000)
	receivable, err := env.receivables.ProcessPayment(ctx, order.ID, PaymentInput{Amount: 0}, ProcessPaymentOptions{
		NewDiscount: &discount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200000), receivable.Balance())
	assert.Equal(t, enum.PaymentStatusUnpaid, receivable.PaymentStatus)

	// Paying the exact balance settles it; equality counts as paid.
	receivable, err = env.receivables.ProcessPayment(ctx, order.ID, PaymentInput{Amount: 200000}, ProcessPaymentOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), receivable.Balance())
	assert.Equal(t, enum.PaymentStatusPaid, receivable.PaymentStatus)
}

func TestProcessPaymentRequiresReceivable(t *testing.T) {
	env := newTestEnv(t)

	order, _ := env.seedBannerOrder(t)

	_, err := env.receivables.ProcessPayment(context.Background(), order.ID, PaymentInput{Amount: 1000}, ProcessPaymentOptions{})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestProcessPaymentRejectsNegativeAmount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 1000})
	require.NoError(t, err)

	_, err = env.receivables.ProcessPayment(ctx, order.ID, PaymentInput{Amount: -1}, ProcessPaymentOptions{})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestProcessPaymentWithRevisedTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 0})
	require.NoError(t, err)

	// Checkout revised the total down to 300000 and settles it in one go.
	newTotal := int64(300000)
	receivable, err := env.receivables.ProcessPayment(ctx, order.ID, PaymentInput{Amount: 300000}, ProcessPaymentOptions{
		NewTotal: &newTotal,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(300000), receivable.Amount)
	assert.Equal(t, enum.PaymentStatusPaid, receivable.PaymentStatus)

	// The order header followed, items untouched.
	fetched, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), fetched.Total)
	assert.Len(t, fetched.Items, 1)
}

func TestProcessPaymentWithRevisedItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 0})
	require.NoError(t, err)

	items := order.Items
	items[0].Description = "Revised at checkout"
	newTotal := int64(300000)
	receivable, err := env.receivables.ProcessPayment(ctx, order.ID, PaymentInput{Amount: 300000}, ProcessPaymentOptions{
		NewTotal:     &newTotal,
		UpdatedItems: items,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, receivable.PaymentStatus)

	// The revised line reached the store along with the total.
	fetched, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), fetched.Total)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Revised at checkout", fetched.Items[0].Description)
}

func TestProcessPaymentUpdatedItemsRequireTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 0})
	require.NoError(t, err)

	items := order.Items
	items[0].Description = "Revised at checkout"
	_, err = env.receivables.ProcessPayment(ctx, order.ID, PaymentInput{Amount: 1000}, ProcessPaymentOptions{
		UpdatedItems: items,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// Rejected outright: the item edit was not silently dropped and no
	// payment was recorded.
	fetched, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Storefront banner", fetched.Items[0].Description)

	receivable, err := env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, receivable.Payments, 1)
}

func TestProcessPaymentRecordsMethodName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 0})
	require.NoError(t, err)

	methods, err := env.methods.ListPaymentMethods(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, methods)
	cash := methods[0]

	receivable, err := env.receivables.ProcessPayment(ctx, order.ID, PaymentInput{
		Amount:   50000,
		MethodID: &cash.ID,
	}, ProcessPaymentOptions{})
	require.NoError(t, err)

	require.Len(t, receivable.Payments, 2)
	var found bool
	for _, p := range receivable.Payments {
		if p.MethodID != nil && *p.MethodID == cash.ID {
			found = true
			assert.Equal(t, cash.Name, p.MethodName)
		}
	}
	assert.True(t, found)
}

func TestBulkProcessPayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Order A: partially paid receivable, bulk pays the exact balance.
	orderA, customer := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, orderA.ID, PaymentInput{Amount: 105000})
	require.NoError(t, err)

	// Order B: no receivable yet, bulk creates a fully paid one.
	category := env.seedCategory(t, "Stickers", enum.UnitPolicyPerUnit)
	product := env.seedProduct(t, "Vinyl Sticker", category.ID, map[enum.Tier]int64{
		enum.TierEndCustomer: 2000,
	})
	orderB, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:      1,
			ProductID:   &product.ID,
			Description: "Logo stickers",
			Quantity:    10,
		}},
	})
	require.NoError(t, err)

	// Order C: does not exist; its failure must not affect A and B.
	ghost := uuid.New()

	results := env.receivables.BulkProcessPayment(ctx, []uuid.UUID{orderA.ID, orderB.ID, ghost}, time.Now(), nil)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, int64(200000), results[0].Paid)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, orderB.Total, results[1].Paid)
	assert.Error(t, results[2].Err)

	recA, err := env.receivables.GetReceivable(ctx, orderA.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, recA.PaymentStatus)
	assert.Equal(t, int64(0), recA.Balance())

	recB, err := env.receivables.GetReceivable(ctx, orderB.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, recB.PaymentStatus)
	assert.Equal(t, enum.ProductionStatusQueued, recB.ProductionStatus)
	require.Len(t, recB.Payments, 1)
	assert.Equal(t, orderB.Total, recB.Payments[0].Amount)
}

func TestBulkProcessPaymentAlreadyPaidAddsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: order.Total})
	require.NoError(t, err)

	results := env.receivables.BulkProcessPayment(ctx, []uuid.UUID{order.ID}, time.Now(), nil)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, int64(0), results[0].Paid)

	receivable, err := env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, receivable.Payments, 1)
}

func TestUpdateDueDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 1000})
	require.NoError(t, err)

	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, env.receivables.UpdateDueDate(ctx, order.ID, due))

	receivable, err := env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-30", receivable.DueDate.Format("2006-01-02"))
	// Only the due date moved.
	assert.Len(t, receivable.Payments, 1)

	err = env.receivables.UpdateDueDate(ctx, uuid.New(), due)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestBulkUpdateDueDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, _ := env.seedBannerOrder(t)
	_, err := env.receivables.PayUnprocessedOrder(ctx, order.ID, PaymentInput{Amount: 1000})
	require.NoError(t, err)

	ghost := uuid.New()
	due := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	results := env.receivables.BulkUpdateDueDate(ctx, []uuid.UUID{order.ID, ghost}, due)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)

	receivable, err := env.receivables.GetReceivable(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15", receivable.DueDate.Format("2006-01-02"))
}

func TestBalanceNeverNegative(t *testing.T) {
	receivable := &entity.Receivable{
		Amount:   10000,
		Discount: 2000,
		Payments: []entity.Payment{{Amount: 15000}},
	}
	assert.Equal(t, int64(0), receivable.Balance())
	assert.Equal(t, enum.PaymentStatusPaid, receivable.DeriveStatus())
}
