package cmd

import (
	"log/slog"
	"time"

	apihttp "cafeteria/internal/adapters/in/http"
	"cafeteria/internal/adapters/out/memory"
	"cafeteria/internal/adapters/out/postgres"
	"cafeteria/internal/adapters/out/postgres/orderrepo"
	"cafeteria/internal/adapters/out/postgres/userrepo"
	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderReader
	directory  ports.UserDirectory
	clock      kernel.Clock
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters selected by config. gormDB is only used by the
// postgres backend and may be nil otherwise; publisher may be nil.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		config: config,
		clock:  kernel.SystemClock{},
		logger: logger,
	}

	if config.StorageBackend == StorageMemory {
		store := memory.NewOrderStore(publisher, logger)
		root.uowFactory = store
		root.reader = store
		root.directory = memory.NewUserDirectory()
		return root
	}

	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)
	root.reader = orderrepo.NewGormOrderRepository(gormDB, nil)
	root.directory = userrepo.NewGormUserDirectory(gormDB)
	return root
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	return commands.NewStartOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetMyOrdersQueryHandler() queries.GetMyOrdersQueryHandler {
	return queries.NewGetMyOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.reader, c.directory)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.reader, c.directory)
}

func (c *CompositionRoot) CreateGetMonthlyBillQueryHandler() queries.GetMonthlyBillQueryHandler {
	return queries.NewGetMonthlyBillQueryHandler(c.reader, c.directory, c.clock, c.billingLocation())
}

func (c *CompositionRoot) CreateHTTPRouter() (*echo.Echo, error) {
	server := apihttp.NewServer(apihttp.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		StartOrder:      c.CreateStartOrderCommandHandler(),
		TransitionOrder: c.CreateTransitionOrderCommandHandler(),
		GetMyOrders:     c.CreateGetMyOrdersQueryHandler(),
		GetActiveOrders: c.CreateGetActiveOrdersQueryHandler(),
		GetOrderByID:    c.CreateGetOrderByIDQueryHandler(),
		GetMonthlyBill:  c.CreateGetMonthlyBillQueryHandler(),
	}, services.NewRoleAccessPolicy(), c.logger)

	return apihttp.NewRouter(server, apihttp.RouterConfig{
		RateLimitRPS: c.config.RateLimitRPS,
		Logger:       c.logger,
	})
}

// CreateJobManager returns the scheduled jobs enabled by config.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	manager := jobs.NewJobManager()
	if c.config.BillingSummaryCron != "" {
		manager.Add("billing summary", jobs.NewBillingSummaryJob(
			c.config.BillingSummaryCron,
			c.CreateGetMonthlyBillQueryHandler(),
			c.clock,
			c.billingLocation(),
			c.logger,
		))
	}
	return manager
}

func (c *CompositionRoot) billingLocation() *time.Location {
	if c.config.BillingLocation == nil {
		return time.UTC
	}
	return c.config.BillingLocation
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
