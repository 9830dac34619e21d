package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRejectJobCommandIsNotConstructed = errors.New(
	"RejectJobCommand must be created via NewRejectJobCommand constructor",
)

// RejectJobCommand represents a courier declining an offered job.
// Rejection does not mutate job state; it is recorded as the extension point
// for a future re-offer policy.
type RejectJobCommand struct { //nolint:recvcheck //using for validation
	jobID     string
	courierID string

	guard guard.ConstructorGuard
}

// NewRejectJobCommand creates a rejection command for the given job and
// courier. Both identifiers are required.
func NewRejectJobCommand(jobID string, courierID string) (RejectJobCommand, error) {
	cmd := RejectJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setJobID(jobID), cmd.setCourierID(courierID)); err != nil {
		return RejectJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectJobCommand) Validate() error {
	return c.guard.Validate(ErrRejectJobCommandIsNotConstructed)
}

// JobID returns the id of the rejected job.
func (c RejectJobCommand) JobID() string {
	return c.jobID
}

// CourierID returns the id of the rejecting courier.
func (c RejectJobCommand) CourierID() string {
	return c.courierID
}

func (c *RejectJobCommand) setJobID(jobID string) error {
	if jobID == "" {
		return errs.NewValueIsRequiredError("jobId")
	}
	c.jobID = jobID
	return nil
}

func (c *RejectJobCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierId")
	}
	c.courierID = courierID
	return nil
}
