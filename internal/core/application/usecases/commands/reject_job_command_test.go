package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectJobCommand_ValidInput(t *testing.T) {
	// Act
	cmd, err := commands.NewRejectJobCommand("S1001", "courier_001")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "S1001", cmd.JobID())
	assert.Equal(t, "courier_001", cmd.CourierID())
	assert.NoError(t, cmd.Validate())
}

func TestNewRejectJobCommand_MissingIdentifiers(t *testing.T) {
	_, err := commands.NewRejectJobCommand("", "courier_001")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRejectJobCommand("S1001", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRejectJobCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.RejectJobCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRejectJobCommandIsNotConstructed)
}
