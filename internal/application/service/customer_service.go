package service

import (
	"context"
	"strings"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
	"github.com/google/uuid"
)

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo repository.CustomerRepository
	hub          *notify.Hub
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, hub *notify.Hub) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, hub: hub}
}

// CustomerInput represents the data needed to create or update a customer
type CustomerInput struct {
	Name     string
	Email    *string
	Phone    *string
	Address  *string
	Tier     enum.Tier
	JoinedAt *time.Time
}

func (input *CustomerInput) validate() error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return apperror.NewValidationError("Customer name is required", nil)
	}
	if !input.Tier.Valid() {
		return apperror.NewValidationError("Invalid customer tier", nil)
	}
	return nil
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input CustomerInput) (*entity.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Tier:    input.Tier,
	}
	if input.JoinedAt != nil {
		customer.JoinedAt = *input.JoinedAt
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer updates an existing customer. Orders keep the snapshot
// name they were created with; reads refresh it from here.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input CustomerInput) (*entity.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.Tier = input.Tier
	if input.JoinedAt != nil {
		customer.JoinedAt = *input.JoinedAt
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return customer, nil
}

// DeleteCustomer soft deletes a customer. Existing orders keep their
// customer_id and cached name.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(notify.TopicCatalog)
	return nil
}

// ListCustomers retrieves all customers
func (s *CustomerService) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return s.customerRepo.List(ctx)
}
