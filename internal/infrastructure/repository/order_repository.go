package repository

import (
	"context"
	"errors"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	domainRepo "github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByNotaNo(ctx context.Context, notaNo string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "nota_no = ?", notaNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Preload("Items.Product").
		Preload("Items.Product.Category").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// Update saves the order header and replaces its items. Items are hard
// deleted before re-insert so the (order_id, line_no) unique index never
// collides with stale rows.
func (r *orderRepository) Update(ctx context.Context, tx *gorm.DB, order *entity.Order) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}

	items := order.Items
	order.Items = nil
	if err := db.Omit("Items").Save(order).Error; err != nil {
		order.Items = items
		return err
	}
	order.Items = items

	if err := db.Unscoped().Delete(&entity.OrderItem{}, "order_id = ?", order.ID).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	return db.Create(&items).Error
}

func (r *orderRepository) UpdateTotal(ctx context.Context, id uuid.UUID, total int64) error {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("total", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Order{}, "id = ?", id).Error
	})
}

// Columns the order list may sort by. Anything else falls back to
// created_at instead of reaching the ORDER BY clause raw.
var orderSortColumns = map[string]bool{
	"created_at":    true,
	"order_date":    true,
	"nota_no":       true,
	"customer_name": true,
	"total":         true,
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Search != "" {
		query = query.Where("nota_no ILIKE ? OR customer_name ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if orderSortColumns[params.SortBy] {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&orders).Error
	return orders, err
}

// ListUnprocessed returns orders that have not entered production: no
// receivable exists for them, or the receivable is still queued.
func (r *orderRepository) ListUnprocessed(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	processed := r.db.Model(&entity.Receivable{}).
		Select("id").
		Where("production_status <> ?", enum.ProductionStatusQueued)

	err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", processed).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Order("order_date DESC, created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
