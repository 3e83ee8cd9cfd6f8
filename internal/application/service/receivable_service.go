package service

import (
	"context"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
	"github.com/ardiansn/cetakflow-api/pkg/pagination"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReceivableService is the payment ledger: it records payments against
// receivables, derives the payment status from the recorded history, and
// manages due dates. The status is always re-derived from payments plus
// discount against the amount, never mutated independently.
type ReceivableService struct {
	receivableRepo repository.ReceivableRepository
	orderRepo      repository.OrderRepository
	methodRepo     repository.PaymentMethodRepository
	settings       *SettingsService
	hub            *notify.Hub
	log            *zap.Logger
}

// NewReceivableService creates a new receivable service
func NewReceivableService(
	receivableRepo repository.ReceivableRepository,
	orderRepo repository.OrderRepository,
	methodRepo repository.PaymentMethodRepository,
	settings *SettingsService,
	hub *notify.Hub,
	log *zap.Logger,
) *ReceivableService {
	return &ReceivableService{
		receivableRepo: receivableRepo,
		orderRepo:      orderRepo,
		methodRepo:     methodRepo,
		settings:       settings,
		hub:            hub,
		log:            log,
	}
}

// PaymentInput represents one payment being recorded
type PaymentInput struct {
	Amount   int64
	Date     time.Time
	MethodID *uuid.UUID
}

// ProcessPaymentOptions carries the optional checkout-time edits that
// accompany a payment: a new discount, and a revised total when the
// order's items were adjusted during checkout. UpdatedItems is only
// valid together with NewTotal.
type ProcessPaymentOptions struct {
	NewDiscount  *int64
	UpdatedItems []entity.OrderItem
	NewTotal     *int64
}

func (s *ReceivableService) resolveMethod(ctx context.Context, input *PaymentInput) (string, error) {
	if input.MethodID == nil {
		return "", nil
	}
	method, err := s.methodRepo.GetByID(ctx, *input.MethodID)
	if err != nil {
		return "", err
	}
	if method == nil {
		return "", apperror.NewNotFoundError("Payment method")
	}
	return method.Name, nil
}

func validatePayment(input *PaymentInput) error {
	if input.Amount < 0 {
		return apperror.NewBadRequestError("Payment amount must not be negative")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	return nil
}

// ProcessPayment records a payment against an existing receivable. When
// the order was edited during checkout, the revised order total is
// persisted first and the whole operation aborts if that write fails.
// The receivable update itself (amount, payment, discount, re-derived
// status) is one atomic write; if it fails after the order write
// succeeded, the result is reported as a partial failure rather than
// swallowed.
func (s *ReceivableService) ProcessPayment(ctx context.Context, orderID uuid.UUID, input PaymentInput, opts ProcessPaymentOptions) (*entity.Receivable, error) {
	if err := validatePayment(&input); err != nil {
		return nil, err
	}
	if len(opts.UpdatedItems) > 0 && opts.NewTotal == nil {
		return nil, apperror.NewBadRequestError("Updated items require the revised total")
	}

	receivable, err := s.receivableRepo.GetWithPayments(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if receivable == nil {
		return nil, apperror.NewNotFoundError("Receivable")
	}

	methodName, err := s.resolveMethod(ctx, &input)
	if err != nil {
		return nil, err
	}

	orderRevised := false
	if opts.NewTotal != nil {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Order")
		}
		order.Total = *opts.NewTotal
		if len(opts.UpdatedItems) > 0 {
			order.Items = opts.UpdatedItems
			err = s.orderRepo.Update(ctx, nil, order)
		} else {
			err = s.orderRepo.UpdateTotal(ctx, orderID, *opts.NewTotal)
		}
		if err != nil {
			return nil, err
		}
		orderRevised = true
	}

	finalTotal := receivable.Amount
	if opts.NewTotal != nil {
		finalTotal = *opts.NewTotal
	}

	discount := receivable.Discount
	if opts.NewDiscount != nil {
		discount = *opts.NewDiscount
	}

	payment := entity.Payment{
		ReceivableID: receivable.ID,
		Amount:       input.Amount,
		Date:         input.Date,
		MethodID:     input.MethodID,
		MethodName:   methodName,
	}

	err = s.receivableRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.receivableRepo.AddPayment(ctx, tx, &payment); err != nil {
			return err
		}
		receivable.Payments = append(receivable.Payments, payment)
		receivable.Amount = finalTotal
		receivable.Discount = discount
		receivable.PaymentStatus = receivable.DeriveStatus()
		return s.receivableRepo.Save(ctx, tx, receivable)
	})
	if err != nil {
		if orderRevised {
			s.log.Error("order total revised but receivable update failed",
				zap.String("order_id", orderID.String()), zap.Error(err))
			return nil, apperror.NewPartialFailureError("order total updated but payment was not recorded", err)
		}
		return nil, err
	}

	s.hub.Publish(notify.TopicReceivables)
	if orderRevised {
		s.hub.Publish(notify.TopicOrders)
	}
	return s.receivableRepo.GetWithPayments(ctx, orderID)
}

// PayUnprocessedOrder takes the first payment for an order that has no
// receivable yet: it creates one in Queued state seeded with the single
// payment, with a due date of the order date plus the configured grace
// period.
func (s *ReceivableService) PayUnprocessedOrder(ctx context.Context, orderID uuid.UUID, input PaymentInput) (*entity.Receivable, error) {
	if err := validatePayment(&input); err != nil {
		return nil, err
	}

	existing, err := s.receivableRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Receivable already exists for this order")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	methodName, err := s.resolveMethod(ctx, &input)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.GetShopConfig(ctx)
	if err != nil {
		return nil, err
	}

	receivable := &entity.Receivable{
		ID:               order.ID,
		CustomerName:     order.CustomerName,
		Amount:           order.Total,
		DueDate:          order.OrderDate.AddDate(0, 0, cfg.GraceDays),
		ProductionStatus: enum.ProductionStatusQueued,
		Discount:         cfg.DefaultDiscount,
		Payments: []entity.Payment{{
			ReceivableID: order.ID,
			Amount:       input.Amount,
			Date:         input.Date,
			MethodID:     input.MethodID,
			MethodName:   methodName,
		}},
	}
	receivable.PaymentStatus = receivable.DeriveStatus()

	if err := s.receivableRepo.Create(ctx, receivable); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicReceivables)
	return s.receivableRepo.GetWithPayments(ctx, orderID)
}

// BulkPaymentResult reports the outcome of one order in a bulk payment.
type BulkPaymentResult struct {
	OrderID uuid.UUID `json:"order_id"`
	Paid    int64     `json:"paid"`
	Err     error     `json:"-"`
	Error   string    `json:"error,omitempty"`
}

// BulkProcessPayment settles a batch of orders on one date and method.
// Orders with an existing receivable get a payment for their exact
// remaining balance; orders without one get a fully paid receivable at
// their full price. Each order is settled independently: one failure
// does not roll back the others, and every outcome is reported.
func (s *ReceivableService) BulkProcessPayment(ctx context.Context, orderIDs []uuid.UUID, date time.Time, methodID *uuid.UUID) []BulkPaymentResult {
	if date.IsZero() {
		date = time.Now()
	}

	input := PaymentInput{Date: date, MethodID: methodID}
	methodName, err := s.resolveMethod(ctx, &input)
	if err != nil {
		results := make([]BulkPaymentResult, len(orderIDs))
		for i, id := range orderIDs {
			results[i] = BulkPaymentResult{OrderID: id, Err: err, Error: err.Error()}
		}
		return results
	}

	cfg, cfgErr := s.settings.GetShopConfig(ctx)

	results := make([]BulkPaymentResult, 0, len(orderIDs))
	changed := false
	for _, orderID := range orderIDs {
		paid, err := s.settleOne(ctx, orderID, date, methodID, methodName, cfg, cfgErr)
		result := BulkPaymentResult{OrderID: orderID, Paid: paid}
		if err != nil {
			result.Err = err
			result.Error = err.Error()
			s.log.Warn("bulk payment failed for order",
				zap.String("order_id", orderID.String()), zap.Error(err))
		} else {
			changed = true
		}
		results = append(results, result)
	}

	if changed {
		s.hub.Publish(notify.TopicReceivables)
	}
	return results
}

func (s *ReceivableService) settleOne(ctx context.Context, orderID uuid.UUID, date time.Time, methodID *uuid.UUID, methodName string, cfg entity.ShopConfig, cfgErr error) (int64, error) {
	receivable, err := s.receivableRepo.GetWithPayments(ctx, orderID)
	if err != nil {
		return 0, err
	}

	if receivable != nil {
		balance := receivable.Balance()
		err := s.receivableRepo.Transaction(ctx, func(tx *gorm.DB) error {
			if balance > 0 {
				payment := entity.Payment{
					ReceivableID: receivable.ID,
					Amount:       balance,
					Date:         date,
					MethodID:     methodID,
					MethodName:   methodName,
				}
				if err := s.receivableRepo.AddPayment(ctx, tx, &payment); err != nil {
					return err
				}
				receivable.Payments = append(receivable.Payments, payment)
			}
			receivable.PaymentStatus = receivable.DeriveStatus()
			return s.receivableRepo.Save(ctx, tx, receivable)
		})
		return balance, err
	}

	if cfgErr != nil {
		return 0, cfgErr
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if order == nil {
		return 0, apperror.NewNotFoundError("Order")
	}

	created := &entity.Receivable{
		ID:               order.ID,
		CustomerName:     order.CustomerName,
		Amount:           order.Total,
		DueDate:          order.OrderDate.AddDate(0, 0, cfg.GraceDays),
		PaymentStatus:    enum.PaymentStatusPaid,
		ProductionStatus: enum.ProductionStatusQueued,
		Payments: []entity.Payment{{
			ReceivableID: order.ID,
			Amount:       order.Total,
			Date:         date,
			MethodID:     methodID,
			MethodName:   methodName,
		}},
	}
	if err := s.receivableRepo.Create(ctx, created); err != nil {
		return 0, err
	}
	return order.Total, nil
}

// UpdateDueDate mutates only the receivable's due date.
func (s *ReceivableService) UpdateDueDate(ctx context.Context, orderID uuid.UUID, due time.Time) error {
	if due.IsZero() {
		return apperror.NewBadRequestError("Due date is required")
	}
	if err := s.receivableRepo.UpdateDueDate(ctx, orderID, due); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperror.NewNotFoundError("Receivable")
		}
		return err
	}
	s.hub.Publish(notify.TopicReceivables)
	return nil
}

// BulkDueDateResult reports the outcome of one order in a bulk due-date update.
type BulkDueDateResult struct {
	OrderID uuid.UUID `json:"order_id"`
	Err     error     `json:"-"`
	Error   string    `json:"error,omitempty"`
}

// BulkUpdateDueDate sets the same due date on a batch of receivables.
// Payment state is never touched. Per-order failures are reported, not
// rolled back.
func (s *ReceivableService) BulkUpdateDueDate(ctx context.Context, orderIDs []uuid.UUID, due time.Time) []BulkDueDateResult {
	results := make([]BulkDueDateResult, 0, len(orderIDs))
	changed := false
	for _, orderID := range orderIDs {
		result := BulkDueDateResult{OrderID: orderID}
		err := s.receivableRepo.UpdateDueDate(ctx, orderID, due)
		if err == gorm.ErrRecordNotFound {
			err = apperror.NewNotFoundError("Receivable")
		}
		if err != nil {
			result.Err = err
			result.Error = err.Error()
		} else {
			changed = true
		}
		results = append(results, result)
	}
	if changed {
		s.hub.Publish(notify.TopicReceivables)
	}
	return results
}

// GetReceivable retrieves a receivable with its payment history.
func (s *ReceivableService) GetReceivable(ctx context.Context, orderID uuid.UUID) (*entity.Receivable, error) {
	receivable, err := s.receivableRepo.GetWithPayments(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if receivable == nil {
		return nil, apperror.NewNotFoundError("Receivable")
	}
	return receivable, nil
}

// ListReceivables lists receivables with filtering
func (s *ReceivableService) ListReceivables(ctx context.Context, params *repository.ReceivableFilterParams) (*pagination.PaginatedResult[entity.Receivable], error) {
	receivables, total, err := s.receivableRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receivables, pag), nil
}
