package service

import (
	"context"
	"testing"

	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	domainRepo "github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/infrastructure/database"
	"github.com/ardiansn/cetakflow-api/internal/infrastructure/repository"
	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// testEnv wires every service against a fresh in-memory database.
type testEnv struct {
	db          *gorm.DB
	orders      *OrderService
	receivables *ReceivableService
	production  *ProductionService
	catalog     *CatalogService
	customers   *CustomerService
	methods     *PaymentMethodService
	settings    *SettingsService
	hub         *notify.Hub

	receivableRepo domainRepo.ReceivableRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	log := zaptest.NewLogger(t)
	require.NoError(t, database.SeedDefaultData(db, log))

	hub := notify.NewHub(log)

	orderRepo := repository.NewOrderRepository(db)
	receivableRepo := repository.NewReceivableRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	finishingRepo := repository.NewFinishingRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	settings := NewSettingsService(settingRepo, sequenceRepo, hub)

	return &testEnv{
		db:             db,
		orders:         NewOrderService(orderRepo, receivableRepo, customerRepo, productRepo, finishingRepo, sequenceRepo, settings, hub, log),
		receivables:    NewReceivableService(receivableRepo, orderRepo, methodRepo, settings, hub, log),
		production:     NewProductionService(receivableRepo, orderRepo, settings, hub, log),
		catalog:        NewCatalogService(categoryRepo, productRepo, finishingRepo, hub),
		customers:      NewCustomerService(customerRepo, hub),
		methods:        NewPaymentMethodService(methodRepo, hub),
		settings:       settings,
		hub:            hub,
		receivableRepo: receivableRepo,
	}
}

func (env *testEnv) seedCustomer(t *testing.T, name string, tier enum.Tier) *entity.Customer {
	t.Helper()
	customer, err := env.customers.CreateCustomer(context.Background(), CustomerInput{Name: name, Tier: tier})
	require.NoError(t, err)
	return customer
}

func (env *testEnv) seedCategory(t *testing.T, name string, policy enum.UnitPolicy) *entity.Category {
	t.Helper()
	category, err := env.catalog.CreateCategory(context.Background(), CategoryInput{Name: name, UnitPolicy: policy})
	require.NoError(t, err)
	return category
}

func (env *testEnv) seedProduct(t *testing.T, name string, categoryID uuid.UUID, prices map[enum.Tier]int64) *entity.Product {
	t.Helper()
	product, err := env.catalog.CreateProduct(context.Background(), ProductInput{
		Name:       name,
		CategoryID: categoryID,
		Prices:     prices,
	})
	require.NoError(t, err)
	return product
}

func (env *testEnv) seedFinishing(t *testing.T, name string, surcharge int64) *entity.Finishing {
	t.Helper()
	finishing, err := env.catalog.CreateFinishing(context.Background(), FinishingInput{Name: name, Surcharge: surcharge})
	require.NoError(t, err)
	return finishing
}

// seedBannerOrder creates the standard fixture used across tests: a
// per-area banner at 50000 per square meter, ordered as one 2x3 piece
// with a 5000 finishing. Total prices out at 305000.
func (env *testEnv) seedBannerOrder(t *testing.T) (*entity.Order, *entity.Customer) {
	t.Helper()

	customer := env.seedCustomer(t, "Budi", enum.TierEndCustomer)
	category := env.seedCategory(t, "Outdoor Banner", enum.UnitPolicyPerArea)
	product := env.seedProduct(t, "Flexi 280gsm", category.ID, map[enum.Tier]int64{
		enum.TierEndCustomer: 50000,
	})
	env.seedFinishing(t, "Eyelets", 5000)

	order, err := env.orders.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{{
			LineNo:        1,
			ProductID:     &product.ID,
			FinishingName: "Eyelets",
			Description:   "Storefront banner",
			Length:        "2",
			Width:         "3",
			Quantity:      1,
		}},
	})
	require.NoError(t, err)
	return order, customer
}
