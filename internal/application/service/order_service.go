package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/application/pricing"
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

// OrderService manages the order lifecycle: creation with sequential
// nota numbers, edits that keep the derived total and any existing
// receivable in sync, and deletion.
type OrderService struct {
	orderRepo      repository.OrderRepository
	receivableRepo repository.ReceivableRepository
	customerRepo   repository.CustomerRepository
	productRepo    repository.ProductRepository
	finishingRepo  repository.FinishingRepository
	sequenceRepo   repository.SequenceRepository
	settings       *SettingsService
	hub            *notify.Hub
	log            *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	receivableRepo repository.ReceivableRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	finishingRepo repository.FinishingRepository,
	sequenceRepo repository.SequenceRepository,
	settings *SettingsService,
	hub *notify.Hub,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		receivableRepo: receivableRepo,
		customerRepo:   customerRepo,
		productRepo:    productRepo,
		finishingRepo:  finishingRepo,
		sequenceRepo:   sequenceRepo,
		settings:       settings,
		hub:            hub,
		log:            log,
	}
}

// OrderItemInput represents one line of an order being created or edited
type OrderItemInput struct {
	LineNo        int
	ProductID     *uuid.UUID
	FinishingName string
	Description   string
	Length        string
	Width         string
	Quantity      int
	PriceOverride *int64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	CustomerID uuid.UUID
	OrderDate  time.Time
	Items      []OrderItemInput
}

// UpdateOrderInput represents the update order input
type UpdateOrderInput struct {
	CustomerID uuid.UUID
	OrderDate  time.Time
	Items      []OrderItemInput
}

func validateItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return apperror.NewBadRequestError("Order must have at least one item")
	}
	var fieldErrors []apperror.FieldError
	for _, item := range items {
		if item.ProductID == nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].product_id", item.LineNo),
				Message: "Product is required",
			})
		}
		if strings.TrimSpace(item.Description) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].description", item.LineNo),
				Message: "Description is required",
			})
		}
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", item.LineNo),
				Message: "Quantity must be positive",
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError("", fieldErrors)
	}
	return nil
}

// buildCatalog assembles the pricing engine's read-only view for the
// products referenced by the given items and rejects items whose
// finishing is restricted to other categories.
func (s *OrderService) buildCatalog(ctx context.Context, items []OrderItemInput) (pricing.Catalog, map[uuid.UUID]entity.Product, error) {
	idSet := make(map[uuid.UUID]struct{})
	for _, item := range items {
		if item.ProductID != nil {
			idSet[*item.ProductID] = struct{}{}
		}
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	catalog := pricing.Catalog{
		Products:   make(map[uuid.UUID]pricing.ProductInfo, len(ids)),
		Finishings: make(map[string]int64),
	}
	productMap := make(map[uuid.UUID]entity.Product, len(ids))

	if len(ids) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return catalog, nil, err
		}
		for _, p := range products {
			prices := make(map[enum.Tier]int64, len(p.Prices))
			for _, pp := range p.Prices {
				prices[pp.Tier] = pp.Price
			}
			catalog.Products[p.ID] = pricing.ProductInfo{
				Prices: prices,
				Policy: p.Category.UnitPolicy,
			}
			productMap[p.ID] = p
		}
		for id := range idSet {
			if _, ok := productMap[id]; !ok {
				return catalog, nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", id))
			}
		}
	}

	finishings, err := s.finishingRepo.List(ctx)
	if err != nil {
		return catalog, nil, err
	}
	for _, f := range finishings {
		catalog.Finishings[f.Name] = f.Surcharge
	}

	if err := validateFinishingUse(items, productMap, finishings); err != nil {
		return catalog, nil, err
	}

	return catalog, productMap, nil
}

// validateFinishingUse checks each item's finishing against its
// product's category. Unknown finishing names stay accepted at zero
// surcharge; a known finishing restricted to other categories is a
// validation error.
func validateFinishingUse(items []OrderItemInput, productMap map[uuid.UUID]entity.Product, finishings []entity.Finishing) error {
	byName := make(map[string]*entity.Finishing, len(finishings))
	for i := range finishings {
		byName[finishings[i].Name] = &finishings[i]
	}

	var fieldErrors []apperror.FieldError
	for _, item := range items {
		if item.ProductID == nil || item.FinishingName == "" || item.FinishingName == pricing.NoFinishing {
			continue
		}
		finishing, ok := byName[item.FinishingName]
		if !ok {
			continue
		}
		product, ok := productMap[*item.ProductID]
		if !ok {
			continue
		}
		if !finishing.AppliesTo(product.CategoryID) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].finishing", item.LineNo),
				Message: fmt.Sprintf("%s is not available for %s", finishing.Name, product.Category.Name),
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError("", fieldErrors)
	}
	return nil
}

// renderDetail builds the informational order summary persisted at save
// time and shown on board cards.
func renderDetail(items []entity.OrderItem, productMap map[uuid.UUID]entity.Product) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ProductName
		if name == "" && item.ProductID != nil {
			if p, ok := productMap[*item.ProductID]; ok {
				name = p.Name
			}
		}
		part := fmt.Sprintf("%dx %s", item.Quantity, name)
		if item.Length != "" && item.Width != "" {
			part += fmt.Sprintf(" %sx%s", item.Length, item.Width)
		}
		if item.FinishingName != "" && item.FinishingName != pricing.NoFinishing {
			part += " + " + item.FinishingName
		}
		if item.Description != "" {
			part += " (" + item.Description + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

func toEntityItems(inputs []OrderItemInput, productMap map[uuid.UUID]entity.Product) []entity.OrderItem {
	items := make([]entity.OrderItem, len(inputs))
	for i, in := range inputs {
		finishing := in.FinishingName
		if finishing == "" {
			finishing = pricing.NoFinishing
		}
		var productName string
		if in.ProductID != nil {
			if p, ok := productMap[*in.ProductID]; ok {
				productName = p.Name
			}
		}
		items[i] = entity.OrderItem{
			LineNo:        in.LineNo,
			ProductID:     in.ProductID,
			ProductName:   productName,
			FinishingName: finishing,
			Description:   in.Description,
			Length:        in.Length,
			Width:         in.Width,
			Quantity:      in.Quantity,
			PriceOverride: in.PriceOverride,
		}
	}
	return items
}

// CreateOrder validates the input, prices the order, claims the next
// nota number and persists the order with its items. The shared counter
// advances by exactly one per successful create.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if input.CustomerID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Customer is required")
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	catalog, productMap, err := s.buildCatalog(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.GetShopConfig(ctx)
	if err != nil {
		return nil, err
	}

	items := toEntityItems(input.Items, productMap)
	total, _ := pricing.Quote(items, customer.Tier, catalog, cfg.RoundingIncrement)

	seq, claimed, err := s.sequenceRepo.Claim(ctx, entity.DefaultNotaSequence)
	if err != nil {
		return nil, fmt.Errorf("failed to claim nota number: %w", err)
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &entity.Order{
		NotaNo:       seq.Format(claimed),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		OrderDate:    orderDate,
		Detail:       renderDetail(items, productMap),
		Total:        total,
		Items:        items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicOrders)
	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// UpdateOrder re-prices the order and persists the new items and total.
// When a receivable already exists for the order, its amount and derived
// payment status are re-synchronized in the same transaction, so the
// ledger can never silently diverge from the order. A raised total can
// flip a Paid receivable back to Unpaid.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error) {
	if input.CustomerID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Customer is required")
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	catalog, productMap, err := s.buildCatalog(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.GetShopConfig(ctx)
	if err != nil {
		return nil, err
	}

	items := toEntityItems(input.Items, productMap)
	total, _ := pricing.Quote(items, customer.Tier, catalog, cfg.RoundingIncrement)

	order.CustomerID = customer.ID
	order.CustomerName = customer.Name
	if !input.OrderDate.IsZero() {
		order.OrderDate = input.OrderDate
	}
	order.Detail = renderDetail(items, productMap)
	order.Total = total
	order.Items = items

	receivable, err := s.receivableRepo.GetWithPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.orderRepo.Update(ctx, tx, order); err != nil {
			return err
		}
		if receivable == nil {
			return nil
		}
		receivable.Amount = total
		receivable.CustomerName = customer.Name
		receivable.PaymentStatus = receivable.DeriveStatus()
		if err := s.receivableRepo.Save(ctx, tx, receivable); err != nil {
			return fmt.Errorf("failed to sync receivable: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicOrders)
	if receivable != nil {
		s.hub.Publish(notify.TopicReceivables)
	}
	return s.orderRepo.GetWithItems(ctx, id)
}

// DeleteOrder removes the order and its items. A receivable for the
// order, if any, is deliberately left in place; the production board
// reports it as orphaned instead.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Publish(notify.TopicOrders)
	return nil
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	list := []entity.Order{*order}
	s.refreshCustomerNames(ctx, list)
	return &list[0], nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	s.refreshCustomerNames(ctx, orders)

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListUnprocessed returns orders that have not entered production.
func (s *OrderService) ListUnprocessed(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.ListUnprocessed(ctx)
	if err != nil {
		return nil, err
	}
	s.refreshCustomerNames(ctx, orders)
	return orders, nil
}

// refreshCustomerNames overwrites the denormalized customer-name cache
// with the current customer record at the read boundary, so a renamed
// customer shows up correctly on orders created before the rename.
func (s *OrderService) refreshCustomerNames(ctx context.Context, orders []entity.Order) {
	seen := make(map[uuid.UUID]string)
	for i := range orders {
		name, ok := seen[orders[i].CustomerID]
		if !ok {
			customer, err := s.customerRepo.GetByID(ctx, orders[i].CustomerID)
			if err != nil || customer == nil {
				continue
			}
			name = customer.Name
			seen[orders[i].CustomerID] = name
		}
		orders[i].CustomerName = name
	}
}
