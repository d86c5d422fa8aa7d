package cmd

import (
	"log/slog"
	"time"

	"subcontract/internal/adapters/in/http"
	"subcontract/internal/adapters/out/memory"
	"subcontract/internal/adapters/out/postgres"
	"subcontract/internal/adapters/out/postgres/directoryrepo"
	"subcontract/internal/adapters/out/redis"
	"subcontract/internal/core/application/usecases/commands"
	"subcontract/internal/core/application/usecases/queries"
	"subcontract/internal/core/ports"
	"subcontract/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. With STORAGE=memory gormDB
// may be nil; a nil redis client disables the directory cache.
type CompositionRoot struct {
	cfg         Config
	logger      *slog.Logger
	gormDB      *gorm.DB
	memoryStore *memory.Store
	uowFactory  ports.UnitOfWorkFactory
	products    ports.ProductDirectory
	warehouses  ports.WarehouseDirectory
	now         func() time.Time
}

// NewCompositionRoot fails only when the memory seed file cannot be read.
func NewCompositionRoot(
	cfg Config,
	logger *slog.Logger,
	gormDB *gorm.DB,
	redisClient *goredis.Client,
) (CompositionRoot, error) {
	root := CompositionRoot{
		cfg:    cfg,
		logger: logger,
		gormDB: gormDB,
		now:    time.Now,
	}

	if cfg.Storage == StorageMemory {
		seed, err := memory.LoadSeedFile(cfg.MemorySeedFile)
		if err != nil {
			return CompositionRoot{}, err
		}
		root.memoryStore = memory.NewStore()
		root.uowFactory = memory.NewUnitOfWorkFactory(root.memoryStore)
		root.products, root.warehouses = seed.Directories()
		logger.Info("memory storage seeded",
			"products", len(seed.Products),
			"warehouses", len(seed.Warehouses),
		)
	} else {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		root.products = directoryrepo.NewGormProductDirectory(gormDB)
		root.warehouses = directoryrepo.NewGormWarehouseDirectory(gormDB)
	}

	if redisClient != nil {
		root.products = redis.NewCachedProductDirectory(redisClient, root.products, cfg.DirectoryCacheTTL, logger)
		root.warehouses = redis.NewCachedWarehouseDirectory(redisClient, root.warehouses, cfg.DirectoryCacheTTL, logger)
	}

	return root, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.products)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.orderUoWFactory(), c.products)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordShipmentCommandHandler() commands.RecordShipmentCommandHandler {
	return commands.NewRecordShipmentCommandHandler(c.orderUoWFactory(), c.warehouses)
}

func (c *CompositionRoot) CreateCorrectItemTotalsCommandHandler() commands.CorrectItemTotalsCommandHandler {
	return commands.NewCorrectItemTotalsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() http.GetOrderHandler {
	if c.memoryStore != nil {
		return memory.NewGetOrderQueryHandler(c.memoryStore)
	}
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentTotalsQueryHandler() http.GetShipmentTotalsHandler {
	if c.memoryStore != nil {
		return memory.NewGetShipmentTotalsQueryHandler(c.memoryStore)
	}
	return queries.NewGetShipmentTotalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() http.GetOverdueOrdersHandler {
	if c.memoryStore != nil {
		return memory.NewGetOverdueOrdersQueryHandler(c.memoryStore)
	}
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		AddOrderItem:      c.CreateAddOrderItemCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		RecordShipment:    c.CreateRecordShipmentCommandHandler(),
		CorrectItemTotals: c.CreateCorrectItemTotalsCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetShipmentTotals: c.CreateGetShipmentTotalsQueryHandler(),
		GetOverdueOrders:  c.CreateGetOverdueOrdersQueryHandler(),
	}, c.logger, c.now)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	manager := jobs.NewJobManager()
	manager.Register("overdue orders", jobs.NewOverdueOrdersJob(
		c.CreateGetOverdueOrdersQueryHandler(), c.cfg.OverdueScanSchedule, c.now, c.logger,
	))
	return manager
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
