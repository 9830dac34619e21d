// Package channel models the state of the external messaging link used to
// reach customers (the WhatsApp channel). The process owns a single instance
// of this state; it is mutated by the channel adapter and broadcast to every
// connected courier on change and on request.
package channel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the connection state of the external messaging channel.
type Status string

const (
	// Connecting is the initial state while the link is being established.
	Connecting Status = "connecting"

	// QRPending means the channel is waiting for a QR code scan; State.QR
	// carries the pending code while in this status.
	QRPending Status = "qr_pending"

	// Connected means the channel is linked and messages can be relayed.
	Connected Status = "connected"

	// Disconnected means the link was lost.
	Disconnected Status = "disconnected"
)

// Validate checks that the status is one of the defined channel states.
func (s Status) Validate() error {
	switch s {
	case Connecting, QRPending, Connected, Disconnected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid channel status", string(s)))
	}
}

// State is a snapshot of the dispatch channel: its status plus the opaque
// QR token, which is present exactly while the status is QRPending.
type State struct {
	Status Status
	QR     string
}

// NewState creates a validated channel state snapshot.
func NewState(status Status, qr string) (State, error) {
	if err := status.Validate(); err != nil {
		return State{}, err
	}

	if (qr != "") != (status == QRPending) {
		return State{}, errs.NewValueIsInvalidErrorWithCause("qr",
			fmt.Errorf("qr code must be present if and only if status is %s", QRPending))
	}

	return State{Status: status, QR: qr}, nil
}
