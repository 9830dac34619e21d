package cmd

import (
	"log/slog"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	memoryjobrepo "dispatch/internal/adapters/out/memory/jobrepo"
	pgjobrepo "dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/whatsapp"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. gormDB is nil when the
// backend runs on the in-memory store; everything downstream only sees the
// ports.JobRepository interface and does not care.
type CompositionRoot struct {
	config    Config
	gormDB    *gorm.DB
	jobRepo   ports.JobRepository
	registry  *ws.Registry
	simulator *whatsapp.Simulator
	generator services.JobGenerator
	logger    *slog.Logger
}

// NewCompositionRoot builds the object graph. The job store is postgres when
// gormDB is non-nil and in-memory otherwise.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	generator, err := services.NewJobGenerator()
	if err != nil {
		return CompositionRoot{}, err
	}

	var jobRepo ports.JobRepository
	if gormDB != nil {
		jobRepo = pgjobrepo.NewGormJobRepository(gormDB)
	} else {
		jobRepo = memoryjobrepo.NewRepository()
	}

	return CompositionRoot{
		config:    config,
		gormDB:    gormDB,
		jobRepo:   jobRepo,
		registry:  ws.NewRegistry(logger),
		simulator: whatsapp.NewSimulator(whatsapp.SimulatorConfig{
			QRDelay:      config.QRDelay,
			ConnectDelay: config.ConnectDelay,
		}, logger),
		generator: generator,
		logger:    logger,
	}, nil
}

// Registry returns the courier registry, which doubles as the notifier.
func (c *CompositionRoot) Registry() *ws.Registry {
	return c.registry
}

// Simulator returns the simulated messaging channel.
func (c *CompositionRoot) Simulator() *whatsapp.Simulator {
	return c.simulator
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.jobRepo, c.generator)
}

func (c *CompositionRoot) CreateClaimJobCommandHandler() commands.ClaimJobCommandHandler {
	return commands.NewClaimJobCommandHandler(c.jobRepo)
}

func (c *CompositionRoot) CreateCompleteJobCommandHandler() commands.CompleteJobCommandHandler {
	return commands.NewCompleteJobCommandHandler(c.jobRepo)
}

func (c *CompositionRoot) CreateRejectJobCommandHandler() commands.RejectJobCommandHandler {
	return commands.NewRejectJobCommandHandler(c.logger)
}

func (c *CompositionRoot) CreateGetOpenJobsQueryHandler() queries.GetOpenJobsQueryHandler {
	return queries.NewGetOpenJobsQueryHandler(c.jobRepo)
}

// CreateSessionGateway builds the websocket gateway over the registry and
// the use case handlers.
func (c *CompositionRoot) CreateSessionGateway() *ws.Gateway {
	return ws.NewGateway(
		c.registry,
		c.CreateGetOpenJobsQueryHandler(),
		c.CreateClaimJobCommandHandler(),
		c.CreateCompleteJobCommandHandler(),
		c.CreateRejectJobCommandHandler(),
		c.simulator,
		c.logger,
	)
}

// CreateHTTPServer builds the liveness and health endpoints.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.simulator, c.gormDB)
}

// CreateJobManager builds the background job schedule.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	creationJob := jobs.NewJobCreationJob(
		c.CreateCreateJobCommandHandler(),
		c.registry,
		c.registry,
		c.config.JobInterval,
		c.logger,
	)
	return jobs.NewJobManager(creationJob)
}
