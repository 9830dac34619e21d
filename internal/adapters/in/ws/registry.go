package ws

import (
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/courier"
)

// Registry tracks courier presence and the one live session handle per
// courier id. It implements ports.Notifier for the fan-out path.
//
// Registration is last-wins: a second connection with the same courier id
// replaces the stored handle, so events always reach the most recent
// session. Disconnect of a replaced session must not flip the courier
// offline, which is why MarkOffline requires the caller's own handle.
type Registry struct {
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry

	// emitMu serializes the emit phase of Broadcast and Unicast so events
	// reach any single session in publish order. It is never held together
	// with mu: writes happen after the state lock is released, so a peer
	// that stalls mid-write cannot wedge registration or presence queries.
	emitMu sync.Mutex
}

type registryEntry struct {
	courier *courier.Courier
	peer    Peer
}

// onlinePeer is one element of a fan-out snapshot.
type onlinePeer struct {
	courierID string
	peer      Peer
}

// NewRegistry creates an empty courier registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:  logger.With("component", "courier_registry"),
		entries: make(map[string]*registryEntry),
	}
}

// Register attaches the session handle for the courier, creating the
// presence record on first sight. Returns the replaced handle when the
// courier was already online, so the caller can close it.
func (r *Registry) Register(courierID string, peer Peer) (Peer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	entry, ok := r.entries[courierID]
	if !ok {
		c, err := courier.NewCourier(courierID, now)
		if err != nil {
			return nil, err
		}
		r.entries[courierID] = &registryEntry{courier: c, peer: peer}
		r.logger.Info("Courier connected", "courier_id", courierID)
		return nil, nil
	}

	var replaced Peer
	if entry.courier.Online() {
		replaced = entry.peer
		r.logger.Info("Courier reconnected, replacing previous session", "courier_id", courierID)
	} else {
		r.logger.Info("Courier reconnected", "courier_id", courierID)
	}

	entry.courier.MarkOnline(now)
	entry.peer = peer
	return replaced, nil
}

// MarkOffline records the disconnect of the given session. If the courier
// has since re-registered with a newer session the call is a no-op, so a
// slow close of the old connection cannot knock the new one offline.
func (r *Registry) MarkOffline(courierID string, peer Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[courierID]
	if !ok || entry.peer != peer {
		return
	}

	entry.courier.MarkOffline(time.Now().UTC())
	entry.peer = nil
	r.logger.Info("Courier disconnected", "courier_id", courierID)
}

// Broadcast delivers the event to every online courier. Fire-and-forget:
// write failures and deadline misses are logged and the session is left for
// its read loop to reap. The online set is snapshotted under the state lock
// and written to outside it; a stalled client delays other deliveries by at
// most its write deadline and never blocks registry state operations.
func (r *Registry) Broadcast(event string, payload any) {
	r.mu.Lock()
	peers := make([]onlinePeer, 0, len(r.entries))
	for id, entry := range r.entries {
		if entry.courier.Online() {
			peers = append(peers, onlinePeer{courierID: id, peer: entry.peer})
		}
	}
	r.mu.Unlock()

	r.emitMu.Lock()
	defer r.emitMu.Unlock()

	for _, p := range peers {
		if err := p.peer.Emit(event, payload); err != nil {
			r.logger.Debug("Broadcast write failed",
				"event", event, "courier_id", p.courierID, "error", err)
		}
	}
}

// Unicast delivers the event to one courier if it is online.
func (r *Registry) Unicast(courierID string, event string, payload any) {
	r.mu.Lock()
	entry, ok := r.entries[courierID]
	if !ok || !entry.courier.Online() {
		r.mu.Unlock()
		return
	}
	peer := entry.peer
	r.mu.Unlock()

	r.emitMu.Lock()
	defer r.emitMu.Unlock()

	if err := peer.Emit(event, payload); err != nil {
		r.logger.Debug("Unicast write failed",
			"event", event, "courier_id", courierID, "error", err)
	}
}

// Size returns the number of couriers ever registered, online or not.
// Job creation stays idle until this becomes non-zero.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Online returns the number of couriers with a live session.
func (r *Registry) Online() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, entry := range r.entries {
		if entry.courier.Online() {
			n++
		}
	}
	return n
}

// IsOnline reports whether the courier currently has a live session.
func (r *Registry) IsOnline(courierID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[courierID]
	return ok && entry.courier.Online()
}
