// Package queries contains the read operations of the dispatch engine.
// Queries always reflect the job store, never an in-process cache, because
// jobs may be claimed by another process instance at any time.
package queries

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Bounds for the open-jobs limit. DefaultOpenJobsLimit matches the number of
// jobs used to seed a newly connected courier.
const (
	OpenJobsLimitMin     = 1
	OpenJobsLimitMax     = 50
	DefaultOpenJobsLimit = 5
)

var ErrGetOpenJobsQueryIsNotConstructed = errors.New(
	"GetOpenJobsQuery must be created via NewGetOpenJobsQuery constructor",
)

// GetOpenJobsQuery requests the most recently created jobs still open for
// claiming, newest first, truncated to the limit.
type GetOpenJobsQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetOpenJobsQuery creates an open-jobs query with the given limit.
// The limit must be within [OpenJobsLimitMin, OpenJobsLimitMax].
func NewGetOpenJobsQuery(limit int) (GetOpenJobsQuery, error) {
	if limit < OpenJobsLimitMin || limit > OpenJobsLimitMax {
		return GetOpenJobsQuery{}, errs.NewValueIsOutOfRangeError(
			"limit", limit, OpenJobsLimitMin, OpenJobsLimitMax)
	}

	return GetOpenJobsQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenJobsQueryIsNotConstructed)
}

// Limit returns the maximum number of jobs to return.
func (q GetOpenJobsQuery) Limit() int {
	return q.limit
}
