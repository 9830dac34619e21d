// Package whatsapp contains adapters for the customer-facing messaging
// channel. Simulator fakes the provider's QR pairing flow; a real
// provider integration would implement the same ports.ChannelGateway
// interface.
package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/channel"
	"dispatch/internal/core/ports"
)

// SimulatorConfig controls the timing of the simulated pairing flow.
type SimulatorConfig struct {
	// QRDelay is how long after Start the QR code appears.
	QRDelay time.Duration

	// ConnectDelay is how long after Start the channel reports connected.
	// Must be greater than QRDelay.
	ConnectDelay time.Duration
}

// Simulator is a ports.ChannelGateway that replays the provider pairing
// sequence: connecting, then qr_pending with a generated code, then
// connected. Every transition is pushed to the registered listener so the
// gateway can broadcast it to couriers.
type Simulator struct {
	cfg      SimulatorConfig
	logger   *slog.Logger
	listener ports.ChannelListener

	mu     sync.Mutex
	state  channel.State
	timers []*time.Timer
}

// NewSimulator creates a simulator in connecting state. The listener may be
// nil; set it via Notify before calling Start.
func NewSimulator(cfg SimulatorConfig, logger *slog.Logger) *Simulator {
	return &Simulator{
		cfg:    cfg,
		logger: logger.With("component", "whatsapp_simulator"),
		state:  channel.State{Status: channel.Connecting},
	}
}

// Notify registers the listener receiving every state change.
func (s *Simulator) Notify(listener ports.ChannelListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = listener
}

// Start schedules the simulated QR and connect transitions.
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers = append(s.timers,
		time.AfterFunc(s.cfg.QRDelay, s.showQR),
		time.AfterFunc(s.cfg.ConnectDelay, s.connect),
	)
	s.logger.Info("WhatsApp channel simulation started",
		"qr_delay", s.cfg.QRDelay.String(),
		"connect_delay", s.cfg.ConnectDelay.String(),
	)
}

// Stop cancels any pending transitions.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

// State returns a snapshot of the current channel state.
func (s *Simulator) State() channel.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SendMessage relays a courier message to the customer side. The simulation
// logs and drops it; a real provider would deliver it over the channel.
func (s *Simulator) SendMessage(ctx context.Context, sender string, jobID string, message string) error {
	if s.State().Status != channel.Connected {
		s.logger.WarnContext(ctx, "Dropping message while channel is not connected",
			"sender", sender, "job_id", jobID)
		return nil
	}

	s.logger.InfoContext(ctx, "Relaying courier message",
		"sender", sender,
		"job_id", jobID,
		"message_len", len(message),
	)
	return nil
}

func (s *Simulator) showQR() {
	code := fmt.Sprintf("https://quickchart.io/qr?text=COURIER_APP_QR_SIMULATION%d", time.Now().UnixMilli())
	state, err := channel.NewState(channel.QRPending, code)
	if err != nil {
		s.logger.Error("Failed to build qr_pending state", "error", err)
		return
	}

	s.transition(state)
}

func (s *Simulator) connect() {
	state, err := channel.NewState(channel.Connected, "")
	if err != nil {
		s.logger.Error("Failed to build connected state", "error", err)
		return
	}

	s.transition(state)
}

// transition stores the new state and notifies the listener outside the
// lock so listeners may call back into State.
func (s *Simulator) transition(state channel.State) {
	s.mu.Lock()
	s.state = state
	listener := s.listener
	s.mu.Unlock()

	s.logger.Info("WhatsApp channel state changed", "status", string(state.Status))
	if listener != nil {
		listener(state)
	}
}
