package service

import (
	"context"
	"strings"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/ardiansn/cetakflow-api/pkg/apperror"
	"github.com/google/uuid"
)

// CatalogService handles categories, products and finishings. These are
// the reference data the pricing engine quotes from.
type CatalogService struct {
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	finishingRepo repository.FinishingRepository
	hub           *notify.Hub
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	finishingRepo repository.FinishingRepository,
	hub *notify.Hub,
) *CatalogService {
	return &CatalogService{
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		finishingRepo: finishingRepo,
		hub:           hub,
	}
}

// CategoryInput represents the data needed to create or update a category
type CategoryInput struct {
	Name       string
	UnitPolicy enum.UnitPolicy
}

// CreateCategory creates a new category
func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperror.NewValidationError("Category name is required", nil)
	}

	category := &entity.Category{
		Name:       input.Name,
		UnitPolicy: input.UnitPolicy,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// UpdateCategory updates an existing category. Changing the unit policy
// affects how future orders are priced; existing orders keep their totals.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*entity.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperror.NewValidationError("Category name is required", nil)
	}

	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.UnitPolicy = input.UnitPolicy
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return category, nil
}

// DeleteCategory soft deletes a category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(notify.TopicCatalog)
	return nil
}

// ListCategories retrieves all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// ProductInput represents the data needed to create or update a product
type ProductInput struct {
	Name       string
	CategoryID uuid.UUID
	// Prices maps tier to a whole-currency price. Absent or zero tiers
	// fall back to the EndCustomer price at quote time.
	Prices map[enum.Tier]int64
}

func (input *ProductInput) validate() error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return apperror.NewValidationError("Product name is required", nil)
	}
	if input.CategoryID == uuid.Nil {
		return apperror.NewValidationError("Category is required", nil)
	}
	for tier, price := range input.Prices {
		if !tier.Valid() {
			return apperror.NewValidationError("Invalid price tier", nil)
		}
		if price < 0 {
			return apperror.NewValidationError("Prices must not be negative", nil)
		}
	}
	return nil
}

func (input *ProductInput) priceRows(productID uuid.UUID) []entity.ProductPrice {
	rows := make([]entity.ProductPrice, 0, len(input.Prices))
	for tier, price := range input.Prices {
		rows = append(rows, entity.ProductPrice{
			ProductID: productID,
			Tier:      tier,
			Price:     price,
		})
	}
	return rows
}

// CreateProduct creates a new product with its per-tier price rows
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:       input.Name,
		CategoryID: input.CategoryID,
		Prices:     input.priceRows(uuid.Nil),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return s.GetProduct(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates a product and replaces its price rows
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != product.CategoryID {
		if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	product.Name = input.Name
	product.CategoryID = input.CategoryID
	product.Prices = input.priceRows(id)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return s.GetProduct(ctx, id)
}

// DeleteProduct soft deletes a product. Order items referencing it keep
// their nullable product_id and stored description.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(notify.TopicCatalog)
	return nil
}

// ListProducts retrieves all products with their categories and prices
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}

// FinishingInput represents the data needed to create or update a finishing
type FinishingInput struct {
	Name      string
	Surcharge int64
	// CategoryIDs restricts the finishing to these categories. Empty
	// means unrestricted.
	CategoryIDs []uuid.UUID
}

func (s *CatalogService) finishingFromInput(ctx context.Context, input *FinishingInput) (*entity.Finishing, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperror.NewValidationError("Finishing name is required", nil)
	}
	if input.Surcharge < 0 {
		return nil, apperror.NewValidationError("Surcharge must not be negative", nil)
	}

	categories := make([]entity.Category, 0, len(input.CategoryIDs))
	for _, id := range input.CategoryIDs {
		category, err := s.GetCategory(ctx, id)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}

	return &entity.Finishing{
		Name:       input.Name,
		Surcharge:  input.Surcharge,
		Categories: categories,
	}, nil
}

// CreateFinishing creates a new finishing
func (s *CatalogService) CreateFinishing(ctx context.Context, input FinishingInput) (*entity.Finishing, error) {
	finishing, err := s.finishingFromInput(ctx, &input)
	if err != nil {
		return nil, err
	}
	if err := s.finishingRepo.Create(ctx, finishing); err != nil {
		return nil, err
	}
	s.hub.Publish(notify.TopicCatalog)
	return finishing, nil
}

// GetFinishing retrieves a finishing by ID
func (s *CatalogService) GetFinishing(ctx context.Context, id uuid.UUID) (*entity.Finishing, error) {
	finishing, err := s.finishingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if finishing == nil {
		return nil, apperror.NewNotFoundError("Finishing")
	}
	return finishing, nil
}

// UpdateFinishing updates a finishing and its category restrictions
func (s *CatalogService) UpdateFinishing(ctx context.Context, id uuid.UUID, input FinishingInput) (*entity.Finishing, error) {
	existing, err := s.GetFinishing(ctx, id)
	if err != nil {
		return nil, err
	}

	finishing, err := s.finishingFromInput(ctx, &input)
	if err != nil {
		return nil, err
	}
	finishing.ID = existing.ID
	finishing.CreatedAt = existing.CreatedAt

	if err := s.finishingRepo.Update(ctx, finishing); err != nil {
		return nil, err
	}

	s.hub.Publish(notify.TopicCatalog)
	return finishing, nil
}

// DeleteFinishing soft deletes a finishing. Order items keep the
// finishing name they were created with.
func (s *CatalogService) DeleteFinishing(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetFinishing(ctx, id); err != nil {
		return err
	}
	if err := s.finishingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(notify.TopicCatalog)
	return nil
}

// ListFinishings retrieves all finishings
func (s *CatalogService) ListFinishings(ctx context.Context) ([]entity.Finishing, error) {
	return s.finishingRepo.List(ctx)
}
