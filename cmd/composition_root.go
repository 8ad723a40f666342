package cmd

import (
	"log/slog"

	"ordersync/internal/adapters/in/http"
	"ordersync/internal/adapters/out/postgres"
	"ordersync/internal/core/application/eventhandlers"
	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/ports"
	"ordersync/internal/jobs"
	"ordersync/internal/pkg/clock"

	"gorm.io/gorm"
)

// Adapters are the outbound adapters that depend on process-specific connections.
// A process leaves empty the ones it does not use.
type Adapters struct {
	StatusEventChannel ports.OrderStatusEventChannel
	InvoiceFileStorage ports.InvoiceFileStorage
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	adapters   Adapters
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, adapters Adapters, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		adapters:   adapters,
		clock:      clock.NewSystem(),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invoiceUoWFactory() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

// Order service.

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateStatusEventPublisher() commands.StatusEventPublisher {
	return commands.NewStatusEventPublisher(c.adapters.StatusEventChannel, c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(
		c.orderUoWFactory(),
		c.CreateStatusEventPublisher(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderServer() *http.OrderServer {
	return http.NewOrderServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
}

// Invoice service.

func (c *CompositionRoot) CreateApplyOrderStatusCommandHandler() commands.ApplyOrderStatusCommandHandler {
	return commands.NewApplyOrderStatusCommandHandler(c.invoiceUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateMarkInvoiceSentCommandHandler() commands.MarkInvoiceSentCommandHandler {
	return commands.NewMarkInvoiceSentCommandHandler(c.invoiceUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateUploadInvoiceCommandHandler() commands.UploadInvoiceCommandHandler {
	return commands.NewUploadInvoiceCommandHandler(
		c.invoiceUoWFactory(),
		c.adapters.InvoiceFileStorage,
		c.CreateMarkInvoiceSentCommandHandler(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListInvoicesQueryHandler() queries.ListInvoicesQueryHandler {
	return queries.NewListInvoicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceDownloadURLQueryHandler() queries.GetInvoiceDownloadURLQueryHandler {
	return queries.NewGetInvoiceDownloadURLQueryHandler(
		c.gormDB,
		c.adapters.InvoiceFileStorage,
		c.cfg.InvoiceURLTTL,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateOrderStatusChangedHandler() *eventhandlers.OrderStatusChangedHandler {
	return eventhandlers.NewOrderStatusChangedHandler(
		c.CreateApplyOrderStatusCommandHandler(),
		c.CreateMarkInvoiceSentCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		queries.NewListUnsentShippedInvoicesQueryHandler(c.gormDB),
		c.CreateMarkInvoiceSentCommandHandler(),
		c.cfg.SentReconcileSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) CreateInvoiceServer() *http.InvoiceServer {
	return http.NewInvoiceServer(
		c.CreateUploadInvoiceCommandHandler(),
		c.CreateGetInvoiceQueryHandler(),
		c.CreateListInvoicesQueryHandler(),
		c.CreateGetInvoiceDownloadURLQueryHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}
