package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/directory"
	"restaurant/internal/adapters/out/kafka"
	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/historyrepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"
	"restaurant/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// directoryPort is both halves of the storefront directory.
type directoryPort interface {
	ports.ProductCatalog
	ports.CustomerDirectory
}

type CompositionRoot struct {
	config  Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	uowFactory ports.UnitOfWorkFactory
	orders     ports.OrderRepository
	history    ports.StatusHistoryRepository
	directory  directoryPort
	notifier   ports.Notifier
	publisher  *kafka.Publisher

	closers []func() error
}

// NewCompositionRoot connects every adapter selected by cfg. Call Close when done.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(registry),
	}

	if err := c.connectStorage(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.connectDirectory(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.connectNotifier(); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) connectStorage() error {
	if c.config.storage() == StorageMemory {
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.orders = store.Orders()
		c.history = store.History()
		c.logger.Warn("using in-memory order storage; orders are lost on restart")
		return nil
	}

	db, err := gorm.Open(gormpostgres.Open(c.config.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect order database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access order database pool: %w", err)
	}
	c.closers = append(c.closers, sqlDB.Close)

	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate order database: %w", err)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	c.orders = orderrepo.NewGormOrderRepository(db)
	c.history = historyrepo.NewGormStatusHistoryRepository(db)
	return nil
}

func (c *CompositionRoot) connectDirectory(ctx context.Context) error {
	if c.config.CatalogDSN == "" {
		c.directory = memory.NewDirectory()
		c.logger.Warn("CATALOG_DSN is empty; using an empty in-memory product catalog and customer directory")
		return nil
	}

	db, err := directory.Open(ctx, c.config.CatalogDSN)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, db.Close)
	c.directory = directory.NewSQLDirectory(db)
	return nil
}

func (c *CompositionRoot) connectNotifier() error {
	brokers := kafka.ParseBrokers(c.config.KafkaBrokers)
	if len(brokers) == 0 {
		c.logger.Info("KAFKA_BROKERS is empty; order notifications are disabled")
		return nil
	}

	writer, err := kafka.NewWriter(brokers, c.config.KafkaOrderEventsTopic)
	if err != nil {
		return err
	}
	c.publisher = kafka.NewPublisher(writer, c.metrics, c.logger, kafka.DefaultMaxPending)
	c.notifier = c.publisher
	c.closers = append(c.closers, c.publisher.Close)
	return nil
}

// Close releases every connection in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.directory, c.directory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.statusUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.statusUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.statusUoWFactory(), c.directory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orders, c.logger)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.orders, c.history)
}

func (c *CompositionRoot) CreateListDeliverableOrdersQueryHandler() queries.ListDeliverableOrdersQueryHandler {
	return queries.NewListDeliverableOrdersQueryHandler(c.orders, c.directory, c.logger)
}

func (c *CompositionRoot) CreateGetDeliveryOrderQueryHandler() queries.GetDeliveryOrderQueryHandler {
	return queries.NewGetDeliveryOrderQueryHandler(c.orders, c.directory)
}

// CreateRouter builds the HTTP API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	auth, err := httpadapter.NewAuthenticator(c.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		ChangeStatus:          c.CreateChangeOrderStatusCommandHandler(),
		ClaimOrder:            c.CreateClaimOrderCommandHandler(),
		ConfirmDelivery:       c.CreateConfirmDeliveryCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetOrderHistory:       c.CreateGetOrderHistoryQueryHandler(),
		ListDeliverableOrders: c.CreateListDeliverableOrdersQueryHandler(),
		GetDeliveryOrder:      c.CreateGetDeliveryOrderQueryHandler(),
	})

	return httpadapter.NewRouter(server, auth, c.metrics, c.logger), nil
}

// CreateJobManager registers the background jobs. Without a broker there is
// nothing to retry and the manager is empty.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	manager := jobs.NewJobManager()
	if c.publisher != nil {
		manager.Register("notification retry",
			jobs.NewNotificationRetryJob(c.publisher, c.config.NotifyRetrySchedule, c.logger))
	}
	return manager
}

func (c *CompositionRoot) statusUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

