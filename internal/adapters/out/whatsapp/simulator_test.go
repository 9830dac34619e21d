package whatsapp_test

import (
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/adapters/out/whatsapp"
	"dispatch/internal/core/domain/model/channel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_PairingFlow(t *testing.T) {
	sim := whatsapp.NewSimulator(whatsapp.SimulatorConfig{
		QRDelay:      10 * time.Millisecond,
		ConnectDelay: 40 * time.Millisecond,
	}, slog.Default())
	t.Cleanup(sim.Stop)

	transitions := make(chan channel.State, 4)
	sim.Notify(func(state channel.State) {
		transitions <- state
	})

	assert.Equal(t, channel.Connecting, sim.State().Status)
	sim.Start()

	waitState := func() channel.State {
		select {
		case state := <-transitions:
			return state
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for channel transition")
			return channel.State{}
		}
	}

	qr := waitState()
	assert.Equal(t, channel.QRPending, qr.Status)
	assert.Contains(t, qr.QR, "COURIER_APP_QR_SIMULATION")

	connected := waitState()
	assert.Equal(t, channel.Connected, connected.Status)
	assert.Empty(t, connected.QR, "qr code is cleared once connected")

	assert.Equal(t, channel.Connected, sim.State().Status)
}

func TestSimulator_StopCancelsTransitions(t *testing.T) {
	sim := whatsapp.NewSimulator(whatsapp.SimulatorConfig{
		QRDelay:      50 * time.Millisecond,
		ConnectDelay: 100 * time.Millisecond,
	}, slog.Default())

	fired := make(chan channel.State, 4)
	sim.Notify(func(state channel.State) {
		fired <- state
	})

	sim.Start()
	sim.Stop()

	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, fired)
	assert.Equal(t, channel.Connecting, sim.State().Status)
}

func TestSimulator_SendMessage(t *testing.T) {
	ctx := t.Context()

	t.Run("drops messages before the channel connects", func(t *testing.T) {
		sim := whatsapp.NewSimulator(whatsapp.SimulatorConfig{
			QRDelay:      time.Hour,
			ConnectDelay: 2 * time.Hour,
		}, slog.Default())
		t.Cleanup(sim.Stop)

		require.NoError(t, sim.SendMessage(ctx, "courier_001", "S1001", "on my way"))
	})

	t.Run("relays once connected", func(t *testing.T) {
		sim := whatsapp.NewSimulator(whatsapp.SimulatorConfig{
			QRDelay:      time.Millisecond,
			ConnectDelay: 5 * time.Millisecond,
		}, slog.Default())
		t.Cleanup(sim.Stop)

		connected := make(chan struct{})
		sim.Notify(func(state channel.State) {
			if state.Status == channel.Connected {
				close(connected)
			}
		})
		sim.Start()

		select {
		case <-connected:
		case <-time.After(2 * time.Second):
			t.Fatal("simulator never connected")
		}

		require.NoError(t, sim.SendMessage(ctx, "courier_001", "S1001", "on my way"))
	})
}
