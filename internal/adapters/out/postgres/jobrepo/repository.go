package jobrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// jobSequenceName is the row key of the persisted job id counter.
const jobSequenceName = "job_id"

// sequenceStart is the initial counter value; the first generated job id is
// S1001.
const sequenceStart = 1000

// GormJobRepository implements ports.JobRepository using GORM on postgres.
//
// Claim and complete are single-statement conditional updates: the WHERE
// clause carries the expected current state and the row count decides the
// outcome. The database serializes these updates, so the repository needs
// no in-process locking and stays correct across multiple process
// instances.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Migrate creates the jobs and sequence tables and seeds the id counter.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&JobDTO{}, &SequenceDTO{}); err != nil {
		return fmt.Errorf("migrate job tables: %w", err)
	}

	seed := SequenceDTO{Name: jobSequenceName, Value: sequenceStart}
	if err := db.Where(SequenceDTO{Name: jobSequenceName}).FirstOrCreate(&seed).Error; err != nil {
		return fmt.Errorf("seed job sequence: %w", err)
	}
	return nil
}

// Add saves a new job to the database.
func (r *GormJobRepository) Add(ctx context.Context, j *job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}

	dto := fromDomain(j)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	return nil
}

// Get retrieves a job by id.
func (r *GormJobRepository) Get(ctx context.Context, id string) (*job.Job, error) {
	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("jobId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindNew retrieves the most recently created jobs in New status, newest
// first, truncated to limit.
func (r *GormJobRepository) FindNew(ctx context.Context, limit int) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", job.New.String()).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

// ClaimNew atomically claims the job for the courier. The conditional
// update succeeds only while the row is still in New status; a zero row
// count means the claim lost the race (or the job never existed) and maps
// to job.ErrNotClaimable.
func (r *GormJobRepository) ClaimNew(ctx context.Context, id string, courierID string, at time.Time) (*job.Job, error) {
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND status = ?", id, job.New.String()).
		Updates(map[string]any{
			"status":     job.OnDelivery.String(),
			"courier_id": courierID,
			"started_at": at,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: job %s is not in %s status", job.ErrNotClaimable, id, job.New)
	}

	return r.Get(ctx, id)
}

// Complete atomically completes the job. The conditional update requires
// both the OnDelivery status and the owning courier; anything else maps to
// job.ErrInvalidTransition.
func (r *GormJobRepository) Complete(ctx context.Context, id string, courierID string, at time.Time) (*job.Job, error) {
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND status = ? AND courier_id = ?", id, job.OnDelivery.String(), courierID).
		Updates(map[string]any{
			"status":       job.Completed.String(),
			"completed_at": at,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: job %s is not on delivery for courier %s",
			job.ErrInvalidTransition, id, courierID)
	}

	return r.Get(ctx, id)
}

// NextSequence increments and returns the persisted job id counter in a
// single statement, so concurrent creators never draw the same value.
func (r *GormJobRepository) NextSequence(ctx context.Context) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).
		Raw(`UPDATE job_sequences SET value = value + 1 WHERE name = ? RETURNING value`, jobSequenceName).
		Scan(&value).Error
	if err != nil {
		return 0, err
	}

	if value == 0 {
		return 0, errs.NewObjectNotFoundError("sequence", jobSequenceName)
	}

	return value, nil
}
