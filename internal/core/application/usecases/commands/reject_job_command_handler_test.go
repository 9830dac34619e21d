package commands_test

import (
	"log/slog"
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRejectJobCommand("S1001", "courier_001")
	require.NoError(t, err)

	h := commands.NewRejectJobCommandHandler(slog.Default())
	err = h.Handle(ctx, cmd)

	assert.NoError(t, err)
}

func TestRejectJobCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.RejectJobCommand // not constructed properly

	h := commands.NewRejectJobCommandHandler(slog.Default())
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRejectJobCommandIsNotConstructed)
}
