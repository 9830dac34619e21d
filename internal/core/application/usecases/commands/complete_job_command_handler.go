package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

// CompleteJobCommandHandler advances a claimed job to its final Completed
// state. The store performs the transition atomically and enforces both the
// OnDelivery precondition and job ownership, so a courier can never complete
// another courier's delivery. Violations surface job.ErrInvalidTransition.
type CompleteJobCommandHandler struct {
	jobRepo ports.JobRepository
}

// NewCompleteJobCommandHandler creates a handler for completion operations.
func NewCompleteJobCommandHandler(jobRepo ports.JobRepository) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{jobRepo: jobRepo}
}

// Handle attempts the completion and returns the updated job on success.
func (h CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.jobRepo.Complete(ctx, cmd.JobID(), cmd.CourierID(), time.Now().UTC())
}
