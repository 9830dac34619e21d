package queries

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
)

// GetOpenJobsQueryHandler retrieves claimable jobs for seeding a newly
// connected courier. It reads through the repository so the result reflects
// claims made by any process instance, not just this one.
type GetOpenJobsQueryHandler struct {
	jobRepo ports.JobRepository
}

// NewGetOpenJobsQueryHandler creates a handler for open-job queries.
func NewGetOpenJobsQueryHandler(jobRepo ports.JobRepository) GetOpenJobsQueryHandler {
	return GetOpenJobsQueryHandler{jobRepo: jobRepo}
}

// Handle returns jobs in New status, newest first, at most query.Limit()
// entries. Every returned job is guaranteed to still have been claimable at
// read time.
func (h GetOpenJobsQueryHandler) Handle(ctx context.Context, query GetOpenJobsQuery) ([]*job.Job, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.jobRepo.FindNew(ctx, query.Limit())
}
