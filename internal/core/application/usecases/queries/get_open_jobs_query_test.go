package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOpenJobsQuery_ValidInput(t *testing.T) {
	testCases := []struct {
		name  string
		limit int
	}{
		{name: "minimum limit", limit: queries.OpenJobsLimitMin},
		{name: "default limit", limit: queries.DefaultOpenJobsLimit},
		{name: "maximum limit", limit: queries.OpenJobsLimitMax},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := queries.NewGetOpenJobsQuery(tc.limit)

			require.NoError(t, err)
			assert.Equal(t, tc.limit, query.Limit())
			assert.NoError(t, query.Validate())
		})
	}
}

func TestNewGetOpenJobsQuery_OutOfRange(t *testing.T) {
	testCases := []struct {
		name  string
		limit int
	}{
		{name: "zero", limit: 0},
		{name: "negative", limit: -5},
		{name: "above maximum", limit: queries.OpenJobsLimitMax + 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := queries.NewGetOpenJobsQuery(tc.limit)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}

func TestGetOpenJobsQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetOpenJobsQuery

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOpenJobsQueryIsNotConstructed)
}
