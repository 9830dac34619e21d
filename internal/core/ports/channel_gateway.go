package ports

import (
	"context"

	"dispatch/internal/core/domain/model/channel"
)

// ChannelGateway is the adapter interface for the external messaging channel
// (the customer-facing WhatsApp link). The simulated QR/connect flow is one
// implementation; a real provider is another.
type ChannelGateway interface {
	// State returns a snapshot of the current channel state.
	State() channel.State

	// SendMessage relays a courier's message for a job to the customer side.
	// The payload is passed through unmodified; delivery semantics are
	// provider-specific.
	SendMessage(ctx context.Context, sender string, jobID string, message string) error
}

// ChannelListener receives channel state changes. The session gateway uses
// it to broadcast whatsapp_status events to all couriers.
type ChannelListener func(state channel.State)
