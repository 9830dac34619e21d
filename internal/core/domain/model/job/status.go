package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery job.
// It implements a state machine with strictly forward transitions so that
// a job can never regress to an earlier state.
//
// State transitions:
//
//	New ──> OnDelivery ──> Completed
//	 │          │
//	 └──────────┴──> Cancelled
//
// The string forms of the statuses are part of the wire contract with
// courier clients and must stay exactly "new", "on_delivery", "completed"
// and "cancelled".
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of a freshly created job. Jobs in this
	// status are offered to couriers and are the only claimable jobs.
	New

	// OnDelivery indicates the job has been exclusively claimed by one
	// courier and is being delivered.
	OnDelivery

	// Completed indicates the delivery finished successfully.
	// This is a final state.
	Completed

	// Cancelled is a reserved terminal state. The enum carries it for
	// forward compatibility; no gateway operation drives a job into it yet.
	Cancelled
)

// getStatusStrings returns the wire-format string for every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "new",
		OnDelivery: "on_delivery",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns only the statuses a persisted job may hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "new",
		OnDelivery: "on_delivery",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// StatusFromString maps a wire/database string back to its Status value.
// Returns an error for anything that is not a valid persisted status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are New, OnDelivery, Completed and Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateCanHaveCourier validates the consistency between job status and
// courier assignment: a courier is set if and only if the job has been
// claimed (OnDelivery or Completed).
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != OnDelivery && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", s))
	}

	if !courier && (s == OnDelivery || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", s))
	}

	return nil
}

// Claim transitions the status to OnDelivery.
//
// The only valid transition is New -> OnDelivery; every other starting
// state returns ErrNotClaimable. Losing a claim race is the expected common
// case, so callers should treat this error as informational, not fatal.
func (s Status) Claim() (Status, error) {
	if s != New {
		return 0, fmt.Errorf("%w: status is %s", ErrNotClaimable, s)
	}
	return OnDelivery, nil
}

// Complete transitions the status to Completed.
//
// The only valid transition is OnDelivery -> Completed.
func (s Status) Complete() (Status, error) {
	if s != OnDelivery {
		return 0, fmt.Errorf("%w: cannot complete job in status %s", ErrInvalidTransition, s)
	}
	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid from New and OnDelivery; terminal states cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != New && s != OnDelivery {
		return 0, fmt.Errorf("%w: cannot cancel job in status %s", ErrInvalidTransition, s)
	}
	return Cancelled, nil
}
