package job

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through the NewJob or RestoreJob factory methods.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")

	// ErrNotClaimable is returned when a claim attempt targets a job that is
	// no longer in New status (already claimed, cancelled or missing).
	// Concurrent claims on the same broadcast job are the expected common
	// case, so this error is informational rather than exceptional.
	ErrNotClaimable = errors.New("job is not claimable")

	// ErrInvalidTransition is returned when an operation would move a job
	// backwards in its lifecycle or is issued by a courier that does not
	// own the job.
	ErrInvalidTransition = errors.New("invalid job status transition")
)

// Job represents a single delivery task from creation to completion.
// It is the aggregate root owning the job lifecycle and enforces these
// invariants:
//   - The identifier is immutable after creation.
//   - Status only moves forward (New -> OnDelivery -> Completed, with
//     Cancelled as a reserved terminal branch).
//   - The courier id is set exactly once, at the moment of claim, and is
//     present if and only if the job has been claimed.
//   - StartedAt and CompletedAt are set exactly once, at the corresponding
//     transition.
//
// Payment, pickup, delivery, distance and estimate are fixed at creation.
type Job struct {
	// id is the human-readable unique identifier, e.g. "S1001"
	id string

	// status is the current lifecycle state
	status Status

	// courierID references the claiming courier (nil while New)
	courierID *string

	// payment is the amount in minor monetary units, fixed at creation
	payment int

	// pickup and delivery are the endpoints of the run
	pickup   kernel.Location
	delivery kernel.Location

	// distance is informational, formatted with one decimal (e.g. "4.2")
	distance string

	// estimate is the informational time estimate in minutes
	estimate int

	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewJob creates a Job in New status with all creation-time attributes fixed.
//
// Parameters:
//   - id: unique human-readable identifier (required)
//   - pickup, delivery: validated locations (may coincide)
//   - payment: amount in minor units (must be positive)
//   - distance: informational distance string (required)
//   - estimate: informational minutes estimate (must be positive)
//   - createdAt: creation timestamp
func NewJob(
	id string,
	pickup kernel.Location,
	delivery kernel.Location,
	payment int,
	distance string,
	estimate int,
	createdAt time.Time,
) (*Job, error) {
	j := &Job{
		status: New,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setPickup(pickup),
		j.setDelivery(delivery),
		j.setPayment(payment),
		j.setDistance(distance),
		j.setEstimate(estimate),
	); err != nil {
		return nil, err
	}

	j.createdAt = createdAt
	return j, nil
}

// RestoreJob reconstructs a Job from persistence without replaying its
// lifecycle. It checks cross-field consistency: the status must be valid,
// the courier must be present exactly when the status requires one, and
// CompletedAt must be set exactly when the job is Completed.
func RestoreJob(
	id string,
	status Status,
	courierID *string,
	pickup kernel.Location,
	delivery kernel.Location,
	payment int,
	distance string,
	estimate int,
	createdAt time.Time,
	startedAt *time.Time,
	completedAt *time.Time,
) (*Job, error) {
	j := &Job{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setPickup(pickup),
		j.setDelivery(delivery),
		j.setPayment(payment),
		j.setDistance(distance),
		j.setEstimate(estimate),
		status.Validate(),
		status.ValidateCanHaveCourier(courierID != nil),
	); err != nil {
		return nil, err
	}

	if (completedAt != nil) != (status == Completed) {
		return nil, errs.NewValueIsInvalidErrorWithCause("completedAt",
			fmt.Errorf("completedAt must be set if and only if status is %s", Completed))
	}

	j.status = status
	j.courierID = courierID
	j.createdAt = createdAt
	j.startedAt = startedAt
	j.completedAt = completedAt
	return j, nil
}

// Validate ensures the Job was constructed through a factory method.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// IsEqual compares two jobs by their unique identifiers.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id == other.id
}

// ID returns the job's unique identifier.
func (j *Job) ID() string {
	return j.id
}

// Status returns the current lifecycle state of the job.
func (j *Job) Status() Status {
	return j.status
}

// Courier returns the id of the claiming courier, or nil while the job
// has not been claimed.
func (j *Job) Courier() *string {
	return j.courierID
}

// Payment returns the payment amount in minor monetary units.
func (j *Job) Payment() int {
	return j.payment
}

// Pickup returns the pickup location.
func (j *Job) Pickup() kernel.Location {
	return j.pickup
}

// Delivery returns the delivery location.
func (j *Job) Delivery() kernel.Location {
	return j.delivery
}

// Distance returns the informational distance string.
func (j *Job) Distance() string {
	return j.distance
}

// Estimate returns the informational time estimate in minutes.
func (j *Job) Estimate() int {
	return j.estimate
}

// CreatedAt returns the creation timestamp.
func (j *Job) CreatedAt() time.Time {
	return j.createdAt
}

// StartedAt returns the claim timestamp, or nil while the job is New.
func (j *Job) StartedAt() *time.Time {
	return j.startedAt
}

// CompletedAt returns the completion timestamp, or nil unless Completed.
func (j *Job) CompletedAt() *time.Time {
	return j.completedAt
}

// Claim takes exclusive ownership of the job for the given courier.
//
// Only a job in New status can be claimed; any other state returns
// ErrNotClaimable. On success the status becomes OnDelivery, the courier id
// is recorded and StartedAt is set to the supplied time.
//
// This method enforces the claim rules for a single in-memory aggregate.
// Under concurrent access the persistent store's conditional update is the
// arbiter; see ports.JobRepository.ClaimNew.
func (j *Job) Claim(courierID string, at time.Time) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierID")
	}

	newStatus, err := j.status.Claim()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.courierID = &courierID
	j.startedAt = &at
	return nil
}

// Complete marks the job as delivered by the given courier.
//
// The job must be OnDelivery and owned by courierID; otherwise
// ErrInvalidTransition is returned. On success CompletedAt is set to the
// supplied time. Completed is final.
func (j *Job) Complete(courierID string, at time.Time) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courierID")
	}

	if j.courierID == nil || *j.courierID != courierID {
		return fmt.Errorf("%w: job %s is not owned by courier %s", ErrInvalidTransition, j.id, courierID)
	}

	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.completedAt = &at
	return nil
}

// Cancel moves the job to the reserved Cancelled terminal state.
// Valid from New and OnDelivery only.
func (j *Job) Cancel() error {
	newStatus, err := j.status.Cancel()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

func (j *Job) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}
	j.id = id
	return nil
}

func (j *Job) setPickup(pickup kernel.Location) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	j.pickup = pickup
	return nil
}

func (j *Job) setDelivery(delivery kernel.Location) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	j.delivery = delivery
	return nil
}

func (j *Job) setPayment(payment int) error {
	if payment <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("%d is not greater than 0", payment))
	}
	j.payment = payment
	return nil
}

func (j *Job) setDistance(distance string) error {
	if distance == "" {
		return errs.NewValueIsRequiredError("distance")
	}
	j.distance = distance
	return nil
}

func (j *Job) setEstimate(estimate int) error {
	if estimate <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimate",
			fmt.Errorf("%d is not greater than 0", estimate))
	}
	j.estimate = estimate
	return nil
}
