package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// CourierPresence answers whether any courier has ever connected. Job
// creation stays idle until then.
type CourierPresence interface {
	Size() int
}

// JobCreationJob periodically generates a delivery job and offers it to all
// online couriers. The job is persisted first and broadcast after, so every
// offer a courier sees refers to a row that already exists.
type JobCreationJob struct {
	handler  commands.CreateJobCommandHandler
	presence CourierPresence
	notifier ports.Notifier
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewJobCreationJob creates the job generation schedule. interval is the
// time between offers.
func NewJobCreationJob(
	handler commands.CreateJobCommandHandler,
	presence CourierPresence,
	notifier ports.Notifier,
	interval time.Duration,
	logger *slog.Logger,
) *JobCreationJob {
	return &JobCreationJob{
		handler:  handler,
		presence: presence,
		notifier: notifier,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "job_creation_job"),
	}
}

// Start begins the schedule.
func (j *JobCreationJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Job creation started", "interval", j.interval.String())
	return nil
}

// Stop stops the schedule.
func (j *JobCreationJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Job creation stopped")
}

// tickTimeout bounds the store calls of one tick.
const tickTimeout = 10 * time.Second

// runOnce is a single tick: generate, persist, broadcast.
func (j *JobCreationJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	if j.presence.Size() == 0 {
		j.logger.Debug("No courier has connected yet, skipping job creation")
		return
	}

	created, err := j.handler.Handle(ctx, commands.NewCreateJobCommand())
	if err != nil {
		// Next tick retries; the sequence was consumed so the id is skipped.
		j.logger.ErrorContext(ctx, "Job creation failed", "error", err)
		return
	}

	j.notifier.Broadcast(ports.EventNewJobAvailable, ports.NewJobPayload(created))
	j.logger.InfoContext(ctx, "New job offered",
		"job_id", created.ID(),
		"payment", created.Payment(),
	)
}
