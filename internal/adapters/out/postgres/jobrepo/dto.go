// Package jobrepo provides the GORM-based postgres implementation of the job
// repository, including the atomic conditional updates that arbitrate
// concurrent claim and complete attempts.
package jobrepo

import (
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobDTO represents the database structure for persisting job aggregates.
// Status is stored in its wire form so the rows stay readable and the
// conditional updates can match on it directly.
type JobDTO struct {
	ID          string      `gorm:"primaryKey"`
	Status      string      `gorm:"index;not null"`
	CourierID   *string     `gorm:"index"`
	Payment     int         `gorm:"not null"`
	Pickup      LocationDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery    LocationDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Distance    string      `gorm:"not null"`
	Estimate    int         `gorm:"not null"`
	CreatedAt   time.Time   `gorm:"index;not null"`
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// TableName specifies the database table name for job entities.
func (JobDTO) TableName() string {
	return "jobs"
}

// LocationDTO represents an embedded pickup or delivery point.
type LocationDTO struct {
	Name    string `gorm:"not null"`
	Address string `gorm:"not null"`
}

// SequenceDTO is the persisted job id counter. A single named row survives
// restarts so job ids are never reused.
type SequenceDTO struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

// TableName specifies the database table name for id sequences.
func (SequenceDTO) TableName() string {
	return "job_sequences"
}

// fromDomain converts a job aggregate to its database representation.
func fromDomain(j *job.Job) JobDTO {
	return JobDTO{
		ID:        j.ID(),
		Status:    j.Status().String(),
		CourierID: j.Courier(),
		Payment:   j.Payment(),
		Pickup: LocationDTO{
			Name:    j.Pickup().Name(),
			Address: j.Pickup().Address(),
		},
		Delivery: LocationDTO{
			Name:    j.Delivery().Name(),
			Address: j.Delivery().Address(),
		},
		Distance:    j.Distance(),
		Estimate:    j.Estimate(),
		CreatedAt:   j.CreatedAt(),
		StartedAt:   j.StartedAt(),
		CompletedAt: j.CompletedAt(),
	}
}

// toDomain converts a database DTO back to a job aggregate, revalidating
// the cross-field invariants on the way in.
func toDomain(dto JobDTO) (*job.Job, error) {
	status, err := job.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewLocation(dto.Pickup.Name, dto.Pickup.Address)
	if err != nil {
		return nil, err
	}

	delivery, err := kernel.NewLocation(dto.Delivery.Name, dto.Delivery.Address)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		dto.ID,
		status,
		dto.CourierID,
		pickup,
		delivery,
		dto.Payment,
		dto.Distance,
		dto.Estimate,
		dto.CreatedAt,
		dto.StartedAt,
		dto.CompletedAt,
	)
}
