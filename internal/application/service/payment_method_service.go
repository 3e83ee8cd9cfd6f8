package service

import (
	"context"
	"strings"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
	"github.com/google/uuid"
)

// PaymentMethodService handles payment method business logic
type PaymentMethodService struct {
	methodRepo repository.PaymentMethodRepository
	hub        *notify.Hub
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(methodRepo repository.PaymentMethodRepository, hub *notify.Hub) *PaymentMethodService {
	return &PaymentMethodService{methodRepo: methodRepo, hub: hub}
}

// CreatePaymentMethod creates a new payment method
func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, name string) (*entity.PaymentMethod, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidationError("Payment method name is required", nil)
	}

	method := &entity.PaymentMethod{Name: name}
	if err := s.methodRepo.Create(ctx, method); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return method, nil
}

// GetPaymentMethod retrieves a payment method by ID
func (s *PaymentMethodService) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	method, err := s.methodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}
	return method, nil
}

// UpdatePaymentMethod renames a payment method. Past payments keep the
// method name they were recorded with.
func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, id uuid.UUID, name string) (*entity.PaymentMethod, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidationError("Payment method name is required", nil)
	}

	method, err := s.GetPaymentMethod(ctx, id)
	if err != nil {
		return nil, err
	}

	method.Name = name
	if err := s.methodRepo.Update(ctx, method); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return method, nil
}

// DeletePaymentMethod soft deletes a payment method
func (s *PaymentMethodService) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPaymentMethod(ctx, id); err != nil {
		return err
	}
	if err := s.methodRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(notify.TopicCatalog)
	return nil
}

// ListPaymentMethods retrieves all payment methods
func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	return s.methodRepo.List(ctx)
}
