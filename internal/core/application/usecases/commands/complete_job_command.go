package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

// CompleteJobCommand represents a courier reporting a finished delivery.
// Only the courier that claimed the job may complete it.
type CompleteJobCommand struct { //nolint:recvcheck //using for validation
	jobID     string
	courierID string

	guard guard.ConstructorGuard
}

// NewCompleteJobCommand creates a completion command for the given job and
// courier. Both identifiers are required.
func NewCompleteJobCommand(jobID string, courierID string) (CompleteJobCommand, error) {
	cmd := CompleteJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setJobID(jobID), cmd.setCourierID(courierID)); err != nil {
		return CompleteJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

// JobID returns the id of the job being completed.
func (c CompleteJobCommand) JobID() string {
	return c.jobID
}

// CourierID returns the id of the reporting courier.
func (c CompleteJobCommand) CourierID() string {
	return c.courierID
}

func (c *CompleteJobCommand) setJobID(jobID string) error {
	if jobID == "" {
		return errs.NewValueIsRequiredError("jobId")
	}
	c.jobID = jobID
	return nil
}

func (c *CompleteJobCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierId")
	}
	c.courierID = courierID
	return nil
}
