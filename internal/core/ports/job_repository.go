// Package ports defines the interfaces between the application core and its
// external collaborators: the persistent job store, the courier notification
// fan-out and the external messaging channel.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/job"
)

// JobRepository is the persistence port for the Job aggregate.
//
// The store is the single arbiter of job-status mutation: ClaimNew and
// Complete must be implemented as atomic conditional updates so that
// concurrent attempts for the same job id are serialized by the store, not
// by in-process locking. Implementations must honor context cancellation
// and deadlines on every call.
type JobRepository interface {
	// Add persists a freshly created job in New status.
	Add(ctx context.Context, j *job.Job) error

	// Get retrieves a job by id. Returns an error matching
	// errs.ErrObjectNotFound when no such job exists.
	Get(ctx context.Context, id string) (*job.Job, error)

	// FindNew returns the most recently created jobs still in New status,
	// newest first, truncated to limit.
	FindNew(ctx context.Context, limit int) ([]*job.Job, error)

	// ClaimNew atomically claims the job for the courier: it succeeds only
	// if the job is currently in New status, setting status to OnDelivery,
	// recording the courier id and the start time, and returns the updated
	// job. Any other outcome (already claimed, cancelled, nonexistent)
	// returns an error matching job.ErrNotClaimable. Exactly one of any set
	// of concurrent claims for the same id succeeds.
	ClaimNew(ctx context.Context, id string, courierID string, at time.Time) (*job.Job, error)

	// Complete atomically completes the job: it succeeds only if the job is
	// OnDelivery and owned by courierID, setting status to Completed and
	// recording the completion time. Any other outcome returns an error
	// matching job.ErrInvalidTransition.
	Complete(ctx context.Context, id string, courierID string, at time.Time) (*job.Job, error)

	// NextSequence returns the next value of the monotonically increasing
	// job id counter. Values are never reused, including across restarts
	// when the store is durable.
	NextSequence(ctx context.Context) (int64, error)
}
