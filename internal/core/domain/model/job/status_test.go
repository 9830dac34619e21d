package job_test

import (
	"testing"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := map[job.Status]string{
		job.Unknown:    "unknown",
		job.New:        "new",
		job.OnDelivery: "on_delivery",
		job.Completed:  "completed",
		job.Cancelled:  "cancelled",
		job.Status(42): "unknown",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range []job.Status{job.New, job.OnDelivery, job.Completed, job.Cancelled} {
			got, err := job.StatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, got)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		_, err := job.StatusFromString("in_flight")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects the unknown placeholder", func(t *testing.T) {
		_, err := job.StatusFromString("unknown")

		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		for _, s := range []job.Status{job.New, job.OnDelivery, job.Completed, job.Cancelled} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("unknown and out-of-range fail", func(t *testing.T) {
		require.Error(t, job.Unknown.Validate())
		require.Error(t, job.Status(99).Validate())
	})
}

func TestStatus_Claim(t *testing.T) {
	t.Run("new can be claimed", func(t *testing.T) {
		got, err := job.New.Claim()

		require.NoError(t, err)
		assert.Equal(t, job.OnDelivery, got)
	})

	t.Run("every other status is rejected", func(t *testing.T) {
		for _, s := range []job.Status{job.OnDelivery, job.Completed, job.Cancelled, job.Unknown} {
			_, err := s.Claim()

			require.ErrorIs(t, err, job.ErrNotClaimable, "status %s", s)
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("on_delivery can be completed", func(t *testing.T) {
		got, err := job.OnDelivery.Complete()

		require.NoError(t, err)
		assert.Equal(t, job.Completed, got)
	})

	t.Run("every other status is an invalid transition", func(t *testing.T) {
		for _, s := range []job.Status{job.New, job.Completed, job.Cancelled, job.Unknown} {
			_, err := s.Complete()

			require.ErrorIs(t, err, job.ErrInvalidTransition, "status %s", s)
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("new and on_delivery can be cancelled", func(t *testing.T) {
		for _, s := range []job.Status{job.New, job.OnDelivery} {
			got, err := s.Cancel()

			require.NoError(t, err)
			assert.Equal(t, job.Cancelled, got)
		}
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		for _, s := range []job.Status{job.Completed, job.Cancelled} {
			_, err := s.Cancel()

			require.ErrorIs(t, err, job.ErrInvalidTransition, "status %s", s)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, job.New.IsTerminal())
	assert.False(t, job.OnDelivery.IsTerminal())
	assert.True(t, job.Completed.IsTerminal())
	assert.True(t, job.Cancelled.IsTerminal())
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	t.Run("courier is set iff claimed", func(t *testing.T) {
		require.NoError(t, job.New.ValidateCanHaveCourier(false))
		require.NoError(t, job.Cancelled.ValidateCanHaveCourier(false))
		require.NoError(t, job.OnDelivery.ValidateCanHaveCourier(true))
		require.NoError(t, job.Completed.ValidateCanHaveCourier(true))
	})

	t.Run("inconsistent combinations fail", func(t *testing.T) {
		require.Error(t, job.New.ValidateCanHaveCourier(true))
		require.Error(t, job.Cancelled.ValidateCanHaveCourier(true))
		require.Error(t, job.OnDelivery.ValidateCanHaveCourier(false))
		require.Error(t, job.Completed.ValidateCanHaveCourier(false))
	})
}
