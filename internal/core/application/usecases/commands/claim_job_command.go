package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrClaimJobCommandIsNotConstructed = errors.New(
	"ClaimJobCommand must be created via NewClaimJobCommand constructor",
)

// ClaimJobCommand represents a courier's attempt to take exclusive ownership
// of a broadcast job.
//
// Example:
//
//	cmd, err := NewClaimJobCommand("S1001", "courier_001")
//	if err != nil {
//	    return err
//	}
//	claimed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, job.ErrNotClaimable) {
//	    // lost the race; informational, not an error condition
//	}
type ClaimJobCommand struct { //nolint:recvcheck //using for validation
	jobID     string
	courierID string

	guard guard.ConstructorGuard
}

// NewClaimJobCommand creates a claim command for the given job and courier.
// Both identifiers are required.
func NewClaimJobCommand(jobID string, courierID string) (ClaimJobCommand, error) {
	cmd := ClaimJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setJobID(jobID), cmd.setCourierID(courierID)); err != nil {
		return ClaimJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimJobCommand) Validate() error {
	return c.guard.Validate(ErrClaimJobCommandIsNotConstructed)
}

// JobID returns the id of the job being claimed.
func (c ClaimJobCommand) JobID() string {
	return c.jobID
}

// CourierID returns the id of the claiming courier.
func (c ClaimJobCommand) CourierID() string {
	return c.courierID
}

func (c *ClaimJobCommand) setJobID(jobID string) error {
	if jobID == "" {
		return errs.NewValueIsRequiredError("jobId")
	}
	c.jobID = jobID
	return nil
}

func (c *ClaimJobCommand) setCourierID(courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierId")
	}
	c.courierID = courierID
	return nil
}
