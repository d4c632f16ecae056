package cmd

import (
	"log/slog"
	"os"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/crypto"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	redisout "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/application/usecases/relay"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/auth"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. It is the only
// place that knows concrete adapter types; everything downstream depends on
// ports and the narrowed unit of work interfaces.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   *relay.Notifier
	hasher     ports.PasswordHasher
	tokens     *auth.TokenManager
	logger     *slog.Logger
}

// NewCompositionRoot builds the wiring for the given configuration and
// opened connections.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	publisher, err := redisout.NewPublisher(redisClient)
	if err != nil {
		return CompositionRoot{}, err
	}

	tokens, err := auth.NewTokenManager(config.JWTSecret, config.TokenTTL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   relay.NewNotifier(publisher, logger),
		hasher:     crypto.NewBcryptHasher(),
		tokens:     tokens,
		logger:     logger,
	}, nil
}

// Logger returns the process logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// TokenManager returns the identity gate used by the HTTP layer.
func (c *CompositionRoot) TokenManager() *auth.TokenManager {
	return c.tokens
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderDetailsCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateSubmitProofCommandHandler() commands.SubmitProofCommandHandler {
	var f commands.ProofUoWFactory = FuncProofUoWFactory(func() commands.ProofUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitProofCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.driverUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateChangeDriverStatusCommandHandler() commands.ChangeDriverStatusCommandHandler {
	return commands.NewChangeDriverStatusCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	// The location trail appends outside the unit of work on the shared
	// connection; only the driver row update is transactional.
	history := locationrepo.NewGormLocationHistoryRepository(c.gormDB)
	return commands.NewReportLocationCommandHandler(c.driverUoWFactory(), history, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSweepStaleDriversCommandHandler() commands.SweepStaleDriversCommandHandler {
	return commands.NewSweepStaleDriversCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDriversQueryHandler() queries.ListDriversQueryHandler {
	return queries.NewListDriversQueryHandler(c.gormDB)
}

// CreateServer assembles the HTTP server with every handler wired.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderDetailsCommandHandler(),
		c.CreateAssignDriverCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateSubmitProofCommandHandler(),
		c.CreateRegisterDriverCommandHandler(),
		c.CreateChangeDriverStatusCommandHandler(),
		c.CreateReportLocationCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateListDriversQueryHandler(),
		c.tokens,
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepStaleDriversCommandHandler(),
		c.config.DriverStaleAfter,
		c.logger,
	)
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncProofUoWFactory func() commands.ProofUoW

func (f FuncProofUoWFactory) Create() commands.ProofUoW {
	return f()
}
