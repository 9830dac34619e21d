package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

// ClaimJobCommandHandler performs the correctness-critical exclusive claim.
//
// The store's atomic conditional update is the single source of truth: the
// handler delegates to JobRepository.ClaimNew and never decides the race in
// process. Exactly one of any set of concurrent claims for the same job id
// succeeds; the rest surface job.ErrNotClaimable, which is the expected
// common outcome of offering one job to many couriers.
type ClaimJobCommandHandler struct {
	jobRepo ports.JobRepository
}

// NewClaimJobCommandHandler creates a handler for claim operations.
func NewClaimJobCommandHandler(jobRepo ports.JobRepository) ClaimJobCommandHandler {
	return ClaimJobCommandHandler{jobRepo: jobRepo}
}

// Handle attempts the claim and returns the updated job on success.
// Failure to claim (already claimed, cancelled, nonexistent) matches
// job.ErrNotClaimable via errors.Is.
func (h ClaimJobCommandHandler) Handle(ctx context.Context, cmd ClaimJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.jobRepo.ClaimNew(ctx, cmd.JobID(), cmd.CourierID(), time.Now().UTC())
}
