package job_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLocations(t *testing.T) (kernel.Location, kernel.Location) {
	t.Helper()
	pickup, err := kernel.NewLocation("Central Warehouse", "Jl. Raya Bekasi KM 20, Jakarta Timur")
	require.NoError(t, err)
	delivery, err := kernel.NewLocation("Main Office", "Jl. HR Rasuna Said Kav. X-2 No. 5")
	require.NoError(t, err)
	return pickup, delivery
}

func newTestJob(t *testing.T) *job.Job {
	t.Helper()
	pickup, delivery := validLocations(t)
	j, err := job.NewJob("S1001", pickup, delivery, 45000, "4.2", 20, time.Now())
	require.NoError(t, err)
	return j
}

func TestNewJob(t *testing.T) {
	pickup, delivery := validLocations(t)
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("should create valid job with all valid parameters", func(t *testing.T) {
		j, err := job.NewJob("S1001", pickup, delivery, 45000, "4.2", 20, createdAt)

		require.NoError(t, err)
		require.NoError(t, j.Validate())
		assert.Equal(t, "S1001", j.ID())
		assert.Equal(t, job.New, j.Status())
		assert.Nil(t, j.Courier())
		assert.Equal(t, 45000, j.Payment())
		assert.True(t, j.Pickup().IsEqual(pickup))
		assert.True(t, j.Delivery().IsEqual(delivery))
		assert.Equal(t, "4.2", j.Distance())
		assert.Equal(t, 20, j.Estimate())
		assert.Equal(t, createdAt, j.CreatedAt())
		assert.Nil(t, j.StartedAt())
		assert.Nil(t, j.CompletedAt())
	})

	t.Run("pickup and delivery may coincide", func(t *testing.T) {
		j, err := job.NewJob("S1002", pickup, pickup, 30000, "2.0", 15, createdAt)

		require.NoError(t, err)
		assert.True(t, j.Pickup().IsEqual(j.Delivery()))
	})

	t.Run("should fail with empty id", func(t *testing.T) {
		j, err := job.NewJob("", pickup, delivery, 45000, "4.2", 20, createdAt)

		require.Error(t, err)
		assert.Nil(t, j)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unconstructed pickup", func(t *testing.T) {
		var invalid kernel.Location

		j, err := job.NewJob("S1003", invalid, delivery, 45000, "4.2", 20, createdAt)

		require.Error(t, err)
		assert.Nil(t, j)
		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})

	t.Run("should fail with non-positive payment", func(t *testing.T) {
		j, err := job.NewJob("S1004", pickup, delivery, 0, "4.2", 20, createdAt)

		require.Error(t, err)
		assert.Nil(t, j)
		assert.Contains(t, err.Error(), "payment")
	})

	t.Run("should fail with empty distance", func(t *testing.T) {
		_, err := job.NewJob("S1005", pickup, delivery, 45000, "", 20, createdAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "distance")
	})

	t.Run("should fail with non-positive estimate", func(t *testing.T) {
		_, err := job.NewJob("S1006", pickup, delivery, 45000, "4.2", -1, createdAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "estimate")
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		var invalid kernel.Location

		_, err := job.NewJob("", invalid, invalid, -1, "", 0, createdAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "id")
		assert.Contains(t, err.Error(), "payment")
		assert.Contains(t, err.Error(), "estimate")
	})
}

func TestJob_Validate(t *testing.T) {
	t.Run("constructed job is valid", func(t *testing.T) {
		require.NoError(t, newTestJob(t).Validate())
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var j job.Job
		require.ErrorIs(t, j.Validate(), job.ErrJobIsNotConstructed)
	})

	t.Run("nil job is invalid", func(t *testing.T) {
		var j *job.Job
		require.ErrorIs(t, j.Validate(), job.ErrJobIsNotConstructed)
	})
}

func TestJob_Claim(t *testing.T) {
	now := time.Now()

	t.Run("claims a new job exactly once", func(t *testing.T) {
		j := newTestJob(t)

		require.NoError(t, j.Claim("courier_001", now))

		assert.Equal(t, job.OnDelivery, j.Status())
		require.NotNil(t, j.Courier())
		assert.Equal(t, "courier_001", *j.Courier())
		require.NotNil(t, j.StartedAt())
		assert.Equal(t, now, *j.StartedAt())
	})

	t.Run("second claim is rejected and state is unchanged", func(t *testing.T) {
		j := newTestJob(t)
		require.NoError(t, j.Claim("courier_001", now))

		err := j.Claim("courier_002", now)

		require.ErrorIs(t, err, job.ErrNotClaimable)
		assert.Equal(t, "courier_001", *j.Courier())
		assert.Equal(t, job.OnDelivery, j.Status())
	})

	t.Run("requires a courier id", func(t *testing.T) {
		j := newTestJob(t)

		err := j.Claim("", now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, job.New, j.Status())
	})

	t.Run("cancelled job cannot be claimed", func(t *testing.T) {
		j := newTestJob(t)
		require.NoError(t, j.Cancel())

		require.ErrorIs(t, j.Claim("courier_001", now), job.ErrNotClaimable)
	})
}

func TestJob_Complete(t *testing.T) {
	now := time.Now()

	t.Run("owner completes an on_delivery job", func(t *testing.T) {
		j := newTestJob(t)
		require.NoError(t, j.Claim("courier_001", now))

		completedAt := now.Add(20 * time.Minute)
		require.NoError(t, j.Complete("courier_001", completedAt))

		assert.Equal(t, job.Completed, j.Status())
		require.NotNil(t, j.CompletedAt())
		assert.Equal(t, completedAt, *j.CompletedAt())
		assert.Equal(t, "courier_001", *j.Courier())
	})

	t.Run("a different courier cannot complete the job", func(t *testing.T) {
		j := newTestJob(t)
		require.NoError(t, j.Claim("courier_001", now))

		err := j.Complete("courier_002", now)

		require.ErrorIs(t, err, job.ErrInvalidTransition)
		assert.Equal(t, job.OnDelivery, j.Status())
		assert.Nil(t, j.CompletedAt())
	})

	t.Run("unclaimed job cannot be completed", func(t *testing.T) {
		j := newTestJob(t)

		require.ErrorIs(t, j.Complete("courier_001", now), job.ErrInvalidTransition)
	})

	t.Run("double complete is an invalid transition", func(t *testing.T) {
		j := newTestJob(t)
		require.NoError(t, j.Claim("courier_001", now))
		require.NoError(t, j.Complete("courier_001", now))

		require.ErrorIs(t, j.Complete("courier_001", now), job.ErrInvalidTransition)
		assert.Equal(t, job.Completed, j.Status())
	})
}

func TestJob_Cancel(t *testing.T) {
	t.Run("new job can be cancelled", func(t *testing.T) {
		j := newTestJob(t)

		require.NoError(t, j.Cancel())
		assert.Equal(t, job.Cancelled, j.Status())
	})

	t.Run("completed job cannot be cancelled", func(t *testing.T) {
		j := newTestJob(t)
		require.NoError(t, j.Claim("courier_001", time.Now()))
		require.NoError(t, j.Complete("courier_001", time.Now()))

		require.ErrorIs(t, j.Cancel(), job.ErrInvalidTransition)
	})
}

func TestRestoreJob(t *testing.T) {
	pickup, delivery := validLocations(t)
	createdAt := time.Now().Add(-time.Hour)
	startedAt := createdAt.Add(5 * time.Minute)
	completedAt := startedAt.Add(25 * time.Minute)
	courier := "courier_001"

	t.Run("restores a new job", func(t *testing.T) {
		j, err := job.RestoreJob("S1001", job.New, nil, pickup, delivery, 45000, "4.2", 20,
			createdAt, nil, nil)

		require.NoError(t, err)
		require.NoError(t, j.Validate())
		assert.Equal(t, job.New, j.Status())
	})

	t.Run("restores a completed job with courier and timestamps", func(t *testing.T) {
		j, err := job.RestoreJob("S1001", job.Completed, &courier, pickup, delivery, 45000, "4.2", 20,
			createdAt, &startedAt, &completedAt)

		require.NoError(t, err)
		assert.Equal(t, job.Completed, j.Status())
		assert.Equal(t, courier, *j.Courier())
		assert.Equal(t, completedAt, *j.CompletedAt())
	})

	t.Run("rejects a new job carrying a courier", func(t *testing.T) {
		_, err := job.RestoreJob("S1001", job.New, &courier, pickup, delivery, 45000, "4.2", 20,
			createdAt, nil, nil)

		require.Error(t, err)
	})

	t.Run("rejects an on_delivery job without courier", func(t *testing.T) {
		_, err := job.RestoreJob("S1001", job.OnDelivery, nil, pickup, delivery, 45000, "4.2", 20,
			createdAt, &startedAt, nil)

		require.Error(t, err)
	})

	t.Run("rejects completed job without completedAt", func(t *testing.T) {
		_, err := job.RestoreJob("S1001", job.Completed, &courier, pickup, delivery, 45000, "4.2", 20,
			createdAt, &startedAt, nil)

		require.Error(t, err)
	})

	t.Run("rejects completedAt on a non-completed job", func(t *testing.T) {
		_, err := job.RestoreJob("S1001", job.OnDelivery, &courier, pickup, delivery, 45000, "4.2", 20,
			createdAt, &startedAt, &completedAt)

		require.Error(t, err)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := job.RestoreJob("S1001", job.Unknown, nil, pickup, delivery, 45000, "4.2", 20,
			createdAt, nil, nil)

		require.Error(t, err)
	})
}

func TestJob_IsEqual(t *testing.T) {
	a := newTestJob(t)
	b := newTestJob(t)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
