// Package jobrepo provides an in-memory implementation of the job
// repository. It backs unit tests and the degraded mode used when the
// database is unreachable at startup; the claim and complete operations
// give the same linearizable conditional-update guarantees as the
// postgres implementation, enforced under a single mutex.
package jobrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"
)

// sequenceStart is the value the job id counter starts from; the first
// generated job is S1001.
const sequenceStart = 1000

// Repository is a mutex-guarded in-memory job store.
type Repository struct {
	mu       sync.Mutex
	jobs     map[string]*job.Job
	inserted []string
	sequence int64
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		jobs:     make(map[string]*job.Job),
		sequence: sequenceStart,
	}
}

// Add stores a new job. The stored copy is detached from the caller's
// aggregate so later mutations cannot bypass the claim protocol.
func (r *Repository) Add(ctx context.Context, j *job.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := j.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[j.ID()]; exists {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("job %s already exists", j.ID()))
	}

	stored, err := clone(j)
	if err != nil {
		return err
	}

	r.jobs[j.ID()] = stored
	r.inserted = append(r.inserted, j.ID())
	return nil
}

// Get returns a detached copy of the job with the given id.
func (r *Repository) Get(ctx context.Context, id string) (*job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.jobs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("jobId", id)
	}
	return clone(stored)
}

// FindNew returns the most recently created claimable jobs, newest first.
func (r *Repository) FindNew(ctx context.Context, limit int) ([]*job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	open := make([]*job.Job, 0, limit)
	for i := len(r.inserted) - 1; i >= 0 && len(open) < limit; i-- {
		stored := r.jobs[r.inserted[i]]
		if stored.Status() != job.New {
			continue
		}
		copied, err := clone(stored)
		if err != nil {
			return nil, err
		}
		open = append(open, copied)
	}
	return open, nil
}

// ClaimNew atomically claims the job for the courier. The mutex serializes
// all claim attempts, so exactly one concurrent claim per job id succeeds.
func (r *Repository) ClaimNew(ctx context.Context, id string, courierID string, at time.Time) (*job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: job %s does not exist", job.ErrNotClaimable, id)
	}

	if err := stored.Claim(courierID, at); err != nil {
		return nil, err
	}
	return clone(stored)
}

// Complete atomically completes the job when it is on delivery and owned by
// the given courier.
func (r *Repository) Complete(ctx context.Context, id string, courierID string, at time.Time) (*job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: job %s does not exist", job.ErrInvalidTransition, id)
	}

	if err := stored.Complete(courierID, at); err != nil {
		return nil, err
	}
	return clone(stored)
}

// NextSequence returns the next job id counter value. Values survive only
// for the lifetime of the process; durability comes from the postgres
// implementation.
func (r *Repository) NextSequence(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence++
	return r.sequence, nil
}

// clone produces a detached copy of a job via its restore constructor.
func clone(j *job.Job) (*job.Job, error) {
	return job.RestoreJob(
		j.ID(),
		j.Status(),
		j.Courier(),
		j.Pickup(),
		j.Delivery(),
		j.Payment(),
		j.Distance(),
		j.Estimate(),
		j.CreatedAt(),
		j.StartedAt(),
		j.CompletedAt(),
	)
}
