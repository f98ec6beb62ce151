package cmd

import (
	"log/slog"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/redis/offerchannel"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/dispatch"
	"dispatch/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires concrete adapters into the application's command
// and query handlers. It owns the singletons a running process needs
// exactly one of: the dispatch controller with its offer registry and
// notifier, the unit of work factory, and the Redis offer channel.
type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   *postgres.GormUnitOfWorkFactory
	offerChannel *offerchannel.RedisOfferChannel
	controller   *dispatch.Controller
	logger       *slog.Logger
}

// NewCompositionRoot builds the object graph from the given configuration
// and shared connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	offerChannel := offerchannel.NewRedisOfferChannel(redisClient, logger)

	controller, err := dispatch.NewController(
		dispatch.NewPendingOfferRegistry(),
		dispatch.NewNotifier(),
		uowFactory,
		offerChannel,
		dispatch.Config{
			OfferTTL:                time.Duration(config.OfferTimeoutSeconds) * time.Second,
			FulfillmentRadiusMeters: config.FulfillmentRadiusMeters,
			CarriageRadiusMeters:    config.CarriageRadiusMeters,
		},
		logger,
	)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   uowFactory,
		offerChannel: offerChannel,
		controller:   controller,
		logger:       logger,
	}, nil
}

// Notifier exposes the terminal notification fan-out for the events stream.
func (c *CompositionRoot) Notifier() *dispatch.Notifier {
	return c.controller.Notifier()
}

// OfferChannel exposes the Redis offer channel so the process can close
// it on shutdown.
func (c *CompositionRoot) OfferChannel() *offerchannel.RedisOfferChannel {
	return c.offerChannel
}

func (c *CompositionRoot) CreateCreateTaskCommandHandler() commands.CreateTaskCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCandidateCommandHandler() commands.CreateCandidateCommandHandler {
	var f commands.CandidateUoWFactory = FuncCandidateUoWFactory(func() commands.CandidateUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCandidateCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseCandidateCommandHandler() commands.ReleaseCandidateCommandHandler {
	var f commands.CandidateUoWFactory = FuncCandidateUoWFactory(func() commands.CandidateUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseCandidateCommandHandler(f)
}

func (c *CompositionRoot) CreateStartDispatchCommandHandler() commands.StartDispatchCommandHandler {
	return commands.NewStartDispatchCommandHandler(c.controller)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.controller)
}

func (c *CompositionRoot) CreateDenyOfferCommandHandler() commands.DenyOfferCommandHandler {
	return commands.NewDenyOfferCommandHandler(c.controller)
}

func (c *CompositionRoot) CreateCancelDispatchCommandHandler() commands.CancelDispatchCommandHandler {
	return commands.NewCancelDispatchCommandHandler(c.controller)
}

func (c *CompositionRoot) CreateGetTaskQueryHandler() queries.GetTaskQueryHandler {
	return queries.NewGetTaskQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedTasksQueryHandler() queries.GetUnassignedTasksQueryHandler {
	return queries.NewGetUnassignedTasksQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs with the configured sweep
// schedule.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(
		config.SweepCronSchedule,
		c.CreateGetUnassignedTasksQueryHandler(),
		c.CreateStartDispatchCommandHandler(),
		c.logger,
	)
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncCandidateUoWFactory func() commands.CandidateUoW

func (f FuncCandidateUoWFactory) Create() commands.CandidateUoW {
	return f()
}
