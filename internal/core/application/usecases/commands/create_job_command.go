// Package commands contains the write operations of the dispatch engine:
// job creation, exclusive claim, completion and rejection. Each operation
// follows the same pattern: a validated command object plus a handler that
// talks to the job store through its port.
package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand triggers the creation of one randomized delivery job.
// This is a parameterless command: every job attribute is drawn by the
// domain JobGenerator at handling time.
//
// Example:
//
//	cmd := NewCreateJobCommand()
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // store write failed; the job must not be broadcast
//	}
type CreateJobCommand struct {
	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a new command to trigger job creation.
func NewCreateJobCommand() CreateJobCommand {
	return CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}
