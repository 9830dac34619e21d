package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateJobCommandHandler creates randomized jobs and persists them in New
// status. Persistence strictly precedes any offer to couriers: the handler
// returns the job only after the store write succeeded, so callers can never
// broadcast an unpersisted job.
type CreateJobCommandHandler struct {
	jobRepo   ports.JobRepository
	generator services.JobGenerator
}

// NewCreateJobCommandHandler creates a handler for job creation operations.
func NewCreateJobCommandHandler(jobRepo ports.JobRepository, generator services.JobGenerator) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		jobRepo:   jobRepo,
		generator: generator,
	}
}

// Handle draws the next sequence number, generates a job and persists it.
// A store failure aborts creation and surfaces as a wrapped error; the next
// timer tick simply tries again with a fresh sequence value.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	sequence, err := h.jobRepo.NextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("next job sequence: %w", err)
	}

	created, err := h.generator.Generate(sequence, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = h.jobRepo.Add(ctx, created); err != nil {
		return nil, fmt.Errorf("persist job %s: %w", created.ID(), err)
	}

	return created, nil
}
