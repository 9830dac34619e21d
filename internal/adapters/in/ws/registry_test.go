package ws_test

import (
	"log/slog"
	"sync"
	"testing"

	"dispatch/internal/adapters/in/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePeer struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePeer) Emit(event string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePeer) received() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("first registration creates the presence record", func(t *testing.T) {
		registry := ws.NewRegistry(slog.Default())

		replaced, err := registry.Register("courier_001", &fakePeer{})

		require.NoError(t, err)
		assert.Nil(t, replaced)
		assert.True(t, registry.IsOnline("courier_001"))
		assert.Equal(t, 1, registry.Size())
		assert.Equal(t, 1, registry.Online())
	})

	t.Run("re-registration replaces the previous session", func(t *testing.T) {
		registry := ws.NewRegistry(slog.Default())
		first := &fakePeer{}
		second := &fakePeer{}

		_, err := registry.Register("courier_001", first)
		require.NoError(t, err)

		replaced, err := registry.Register("courier_001", second)
		require.NoError(t, err)

		assert.Same(t, first, replaced)
		assert.Equal(t, 1, registry.Size(), "same courier id stays one entry")

		registry.Broadcast("new_job_available", nil)
		assert.Empty(t, first.received(), "replaced session no longer receives events")
		assert.Equal(t, []string{"new_job_available"}, second.received())
	})

	t.Run("empty courier id is rejected", func(t *testing.T) {
		registry := ws.NewRegistry(slog.Default())

		_, err := registry.Register("", &fakePeer{})

		require.Error(t, err)
	})
}

func TestRegistry_MarkOffline(t *testing.T) {
	t.Run("disconnect flips the courier offline but keeps the record", func(t *testing.T) {
		registry := ws.NewRegistry(slog.Default())
		peer := &fakePeer{}
		_, err := registry.Register("courier_001", peer)
		require.NoError(t, err)

		registry.MarkOffline("courier_001", peer)

		assert.False(t, registry.IsOnline("courier_001"))
		assert.Equal(t, 1, registry.Size())
		assert.Equal(t, 0, registry.Online())
	})

	t.Run("stale disconnect of a replaced session is a no-op", func(t *testing.T) {
		registry := ws.NewRegistry(slog.Default())
		old := &fakePeer{}
		current := &fakePeer{}

		_, err := registry.Register("courier_001", old)
		require.NoError(t, err)
		_, err = registry.Register("courier_001", current)
		require.NoError(t, err)

		// The old connection finally notices it is dead and cleans up.
		registry.MarkOffline("courier_001", old)

		assert.True(t, registry.IsOnline("courier_001"),
			"new session survives the old session's disconnect")
	})

	t.Run("unknown courier is a no-op", func(t *testing.T) {
		registry := ws.NewRegistry(slog.Default())
		registry.MarkOffline("courier_404", &fakePeer{})
		assert.Equal(t, 0, registry.Size())
	})
}

func TestRegistry_Broadcast(t *testing.T) {
	registry := ws.NewRegistry(slog.Default())
	online := &fakePeer{}
	offline := &fakePeer{}

	_, err := registry.Register("courier_001", online)
	require.NoError(t, err)
	_, err = registry.Register("courier_002", offline)
	require.NoError(t, err)
	registry.MarkOffline("courier_002", offline)

	registry.Broadcast("new_job_available", map[string]string{"id": "S1001"})
	registry.Broadcast("whatsapp_status", nil)

	assert.Equal(t, []string{"new_job_available", "whatsapp_status"}, online.received(),
		"online courier receives events in publish order")
	assert.Empty(t, offline.received(), "offline courier misses events entirely")
}

func TestRegistry_Unicast(t *testing.T) {
	registry := ws.NewRegistry(slog.Default())
	peer := &fakePeer{}
	_, err := registry.Register("courier_001", peer)
	require.NoError(t, err)

	registry.Unicast("courier_001", "initial_jobs", nil)
	registry.Unicast("courier_404", "initial_jobs", nil)

	assert.Equal(t, []string{"initial_jobs"}, peer.received())
}
