package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "cafeteria/internal/adapters/out/postgres"
	"cafeteria/internal/adapters/out/postgres/orderrepo"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockOrderEventPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(orderrepo.Migrate(db))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)

	suite.publisher = new(MockOrderEventPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	price, err := kernel.NewMoneyFromCents(500)
	if err != nil {
		t.Fatal(err)
	}
	item, err := order.NewLineItem(kernel.NewUUID(), "Soup", price, 1)
	if err != nil {
		t.Fatal(err)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) countOrders() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	return count
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndPublishes() {
	ctx := context.Background()
	o := newOrder(suite.T())
	suite.publisher.On("PublishStatusChanged", ctx, mock.MatchedBy(func(e order.StatusChanged) bool {
		return e.OrderID.IsEqual(o.ID()) && e.Status == order.Placed
	})).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.publisher.AssertNotCalled(suite.T(), "PublishStatusChanged", mock.Anything, mock.Anything)
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.countOrders())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, newOrder(suite.T())))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.countOrders())
	suite.publisher.AssertNotCalled(suite.T(), "PublishStatusChanged", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPublishFailure_DoesNotFailCommit() {
	ctx := context.Background()
	suite.publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, newOrder(suite.T())))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.countOrders())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_UncommittedWritesAreInvisible() {
	ctx := context.Background()
	o := newOrder(suite.T())
	suite.publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(nil)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := orderrepo.NewGormOrderRepository(suite.db, nil).Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(uow.Commit(ctx))

	_, err = orderrepo.NewGormOrderRepository(suite.db, nil).Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransition_PublishesNewStatus() {
	ctx := context.Background()
	o := newOrder(suite.T())
	suite.publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	waiter := kernel.NewUUID()
	suite.publisher.On("PublishStatusChanged", ctx, mock.MatchedBy(func(e order.StatusChanged) bool {
		return e.Status == order.Completed && e.WaiterID != nil && e.WaiterID.IsEqual(waiter)
	})).Return(nil).Once()

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Deliver(waiter, time.Now()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
