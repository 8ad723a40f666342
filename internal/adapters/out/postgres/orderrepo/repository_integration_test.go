package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"ordersync/internal/adapters/out/postgres/orderrepo"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var createdAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("req-1")

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateIdempotencyKey_ReturnsUniqueViolation() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("req-1")))

	err := suite.repository.Add(ctx, suite.createTestOrder("req-1"))

	suite.Require().ErrorIs(err, ports.ErrUniqueViolation)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ConcurrentDuplicates_OneWinner() {
	ctx := context.Background()
	const writers = 5

	candidates := make([]*order.Order, writers)
	for i := range writers {
		candidates[i] = suite.createTestOrder("req-1")
	}

	results := make([]error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = suite.repository.Add(ctx, candidates[i])
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.Require().ErrorIs(err, ports.ErrUniqueViolation)
	}
	suite.Equal(1, succeeded)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_InvalidOrder_ReturnsError() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()
	original := suite.createTestOrder("req-1")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.IdempotencyKey(), retrieved.IdempotencyKey())
	suite.Equal("sku-1", retrieved.ProductID())
	suite.Equal(int64(1999), retrieved.PriceCents())
	suite.Equal(2, retrieved.Quantity())
	suite.Equal(order.Created, retrieved.Status())
	suite.True(createdAt.Equal(retrieved.CreatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByIdempotencyKey() {
	ctx := context.Background()
	original := suite.createTestOrder("req-1")
	suite.Require().NoError(suite.repository.Add(ctx, original))

	found, err := suite.repository.FindByIdempotencyKey(ctx, original.IdempotencyKey())
	suite.Require().NoError(err)
	suite.Equal(original.ID(), found.ID())

	otherCustomer, err := order.NewIdempotencyKey("seller-1", "req-1", "customer-2")
	suite.Require().NoError(err)
	_, err = suite.repository.FindByIdempotencyKey(ctx, otherCustomer)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_ExpectedStatus_Applies() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("req-1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	later := createdAt.Add(time.Minute)
	suite.Require().NoError(testOrder.ChangeStatus(order.Accepted, later))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, testOrder, order.Created))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, retrieved.Status())
	suite.True(later.Equal(retrieved.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpectedStatus_ReturnsConditionNotMet() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("req-1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.Accepted, createdAt))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, testOrder, order.Created))

	err := suite.repository.UpdateStatus(ctx, testOrder, order.Created)

	suite.Require().ErrorIs(err, ports.ErrConditionNotMet)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_NonExistentOrder_ReturnsConditionNotMet() {
	testOrder := suite.createTestOrder("req-1")

	err := suite.repository.UpdateStatus(context.Background(), testOrder, order.Created)

	suite.Require().ErrorIs(err, ports.ErrConditionNotMet)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(clientOrderID string) *order.Order {
	key, err := order.NewIdempotencyKey("seller-1", clientOrderID, "customer-1")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), key, "sku-1", 1999, 2, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
