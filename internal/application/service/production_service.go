package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductionService drives the production state machine over
// receivables and projects the kanban board. Transitions validate the
// caller-supplied current state against the stored one, so a stale
// client cannot silently overwrite a move someone else already made.
type ProductionService struct {
	receivableRepo repository.ReceivableRepository
	orderRepo      repository.OrderRepository
	settings       *SettingsService
	hub            *notify.Hub
	log            *zap.Logger
}

// NewProductionService creates a new production service
func NewProductionService(
	receivableRepo repository.ReceivableRepository,
	orderRepo repository.OrderRepository,
	settings *SettingsService,
	hub *notify.Hub,
	log *zap.Logger,
) *ProductionService {
	return &ProductionService{
		receivableRepo: receivableRepo,
		orderRepo:      orderRepo,
		settings:       settings,
		hub:            hub,
		log:            log,
	}
}

// ProcessOrder moves an order into Printing. A queued receivable
// advances Queued -> Printing; an order with no receivable yet gets one
// created directly in Printing (the only way to skip Queued), Unpaid,
// with a due date of the order date plus the grace period.
func (s *ProductionService) ProcessOrder(ctx context.Context, orderID uuid.UUID) (*entity.Receivable, error) {
	receivable, err := s.receivableRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if receivable != nil {
		if receivable.ProductionStatus != enum.ProductionStatusQueued {
			return nil, apperror.NewConflictError(
				fmt.Sprintf("Order is already %s", receivable.ProductionStatus))
		}
		if err := s.receivableRepo.UpdateProductionStatus(ctx, orderID, enum.ProductionStatusPrinting); err != nil {
			return nil, err
		}
		s.hub.Publish(notify.TopicReceivables)
		return s.receivableRepo.GetWithPayments(ctx, orderID)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	cfg, err := s.settings.GetShopConfig(ctx)
	if err != nil {
		return nil, err
	}

	receivable = &entity.Receivable{
		ID:               order.ID,
		CustomerName:     order.CustomerName,
		Amount:           order.Total,
		DueDate:          order.OrderDate.AddDate(0, 0, cfg.GraceDays),
		PaymentStatus:    enum.PaymentStatusUnpaid,
		ProductionStatus: enum.ProductionStatusPrinting,
		Discount:         cfg.DefaultDiscount,
	}
	if err := s.receivableRepo.Create(ctx, receivable); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicReceivables)
	return receivable, nil
}

// Move performs a direct transition between two of the four live
// production states, as driven by board drag-and-drop. The stored state
// must match from; otherwise the caller is working from a stale board
// and the move is rejected.
func (s *ProductionService) Move(ctx context.Context, orderID uuid.UUID, from, to enum.ProductionStatus) error {
	if !from.Live() || !to.Live() {
		return apperror.NewBadRequestError("Invalid production status")
	}
	if from == to {
		return nil
	}

	receivable, err := s.receivableRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if receivable == nil {
		return apperror.NewNotFoundError("Receivable")
	}
	if receivable.ProductionStatus == enum.ProductionStatusLegacy {
		return apperror.NewConflictError("Legacy records cannot be moved")
	}
	if receivable.ProductionStatus != from {
		return apperror.NewConflictError(
			fmt.Sprintf("Order is %s, not %s; refresh the board", receivable.ProductionStatus, from))
	}

	if err := s.receivableRepo.UpdateProductionStatus(ctx, orderID, to); err != nil {
		return err
	}

	s.hub.Publish(notify.TopicReceivables)
	return nil
}

// Deliver marks the order Delivered, stamping the delivery date and note.
func (s *ProductionService) Deliver(ctx context.Context, orderID uuid.UUID, note string) (*entity.Receivable, error) {
	receivable, err := s.receivableRepo.GetWithPayments(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if receivable == nil {
		return nil, apperror.NewNotFoundError("Receivable")
	}
	if receivable.ProductionStatus == enum.ProductionStatusLegacy {
		return nil, apperror.NewConflictError("Legacy records cannot be moved")
	}
	if receivable.ProductionStatus == enum.ProductionStatusDelivered {
		return nil, apperror.NewConflictError("Order is already delivered")
	}

	now := time.Now()
	receivable.ProductionStatus = enum.ProductionStatusDelivered
	receivable.DeliveryDate = &now
	receivable.DeliveryNote = note
	if err := s.receivableRepo.Save(ctx, nil, receivable); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicReceivables)
	return receivable, nil
}

// CancelQueue deletes a queued receivable entirely, returning the order
// to the unprocessed set. Only meaningful from Queued.
func (s *ProductionService) CancelQueue(ctx context.Context, orderID uuid.UUID) error {
	receivable, err := s.receivableRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if receivable == nil {
		return apperror.NewNotFoundError("Receivable")
	}
	if receivable.ProductionStatus != enum.ProductionStatusQueued {
		return apperror.NewConflictError(
			fmt.Sprintf("Only queued orders can be cancelled; order is %s", receivable.ProductionStatus))
	}

	if err := s.receivableRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.hub.Publish(notify.TopicReceivables)
	return nil
}

// Card is one entry on the kanban board.
type Card struct {
	OrderID  uuid.UUID `json:"order_id"`
	NotaNo   string    `json:"nota_no"`
	Customer string    `json:"customer"`
	Detail   string    `json:"detail"`
}

// Board is the four-bucket production projection. It is never
// persisted; it is rebuilt from scratch by scanning every non-legacy
// receivable and matching it to its order.
type Board struct {
	Queued    []Card `json:"queued"`
	Printing  []Card `json:"printing"`
	Ready     []Card `json:"ready"`
	Delivered []Card `json:"delivered"`
}

// Board rebuilds the kanban projection. Receivables whose order has
// been deleted are logged and skipped; orders without a receivable do
// not appear here at all (they surface in the unprocessed list).
func (s *ProductionService) Board(ctx context.Context) (*Board, error) {
	receivables, err := s.receivableRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(receivables))
	for _, r := range receivables {
		if r.ProductionStatus.Live() {
			ids = append(ids, r.ID)
		}
	}

	orders := make(map[uuid.UUID]entity.Order, len(ids))
	if len(ids) > 0 {
		list, err := s.orderRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, o := range list {
			orders[o.ID] = o
		}
	}

	board := &Board{
		Queued:    []Card{},
		Printing:  []Card{},
		Ready:     []Card{},
		Delivered: []Card{},
	}
	for _, r := range receivables {
		if !r.ProductionStatus.Live() {
			continue
		}
		order, ok := orders[r.ID]
		if !ok {
			s.log.Warn("receivable has no matching order, skipping board card",
				zap.String("receivable_id", r.ID.String()))
			continue
		}
		card := Card{
			OrderID:  r.ID,
			NotaNo:   order.NotaNo,
			Customer: order.CustomerName,
			Detail:   order.Detail,
		}
		switch r.ProductionStatus {
		case enum.ProductionStatusQueued:
			board.Queued = append(board.Queued, card)
		case enum.ProductionStatusPrinting:
			board.Printing = append(board.Printing, card)
		case enum.ProductionStatusReady:
			board.Ready = append(board.Ready, card)
		case enum.ProductionStatusDelivered:
			board.Delivered = append(board.Delivered, card)
		}
	}
	return board, nil
}
