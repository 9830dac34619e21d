package commands

import (
	"context"
	"log/slog"
)

// RejectJobCommandHandler records job rejections. The job itself stays New
// and remains claimable by other couriers; re-offering logic would hook in
// here if it is ever added.
type RejectJobCommandHandler struct {
	logger *slog.Logger
}

// NewRejectJobCommandHandler creates a handler for rejection operations.
func NewRejectJobCommandHandler(logger *slog.Logger) RejectJobCommandHandler {
	return RejectJobCommandHandler{
		logger: logger.With("component", "reject_job_handler"),
	}
}

// Handle logs the rejection without mutating any state.
func (h RejectJobCommandHandler) Handle(ctx context.Context, cmd RejectJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Job rejected by courier",
		"job_id", cmd.JobID(),
		"courier_id", cmd.CourierID(),
	)
	return nil
}
