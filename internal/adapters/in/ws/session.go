package ws

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
)

// Peer is a live courier session the registry can push events to.
type Peer interface {
	// Emit sends one event frame to the client.
	Emit(event string, payload any) error
}

// defaultWriteTimeout bounds a single frame write. A client that stops
// reading misses the event instead of stalling the writer; its read loop
// reaps the session afterwards.
const defaultWriteTimeout = 5 * time.Second

// Session wraps a single websocket connection. Writes are serialized by a
// mutex so concurrent broadcasts never interleave frames; within one session
// events go out in the order Emit was called.
type Session struct {
	id           string
	courierID    string
	conn         net.Conn
	writeTimeout time.Duration

	writeMu sync.Mutex
}

// newSession wraps an upgraded connection. courierID is empty for
// non-courier (observer) connections.
func newSession(conn net.Conn, courierID string) *Session {
	return &Session{
		id:           uuid.NewString(),
		courierID:    courierID,
		conn:         conn,
		writeTimeout: defaultWriteTimeout,
	}
}

// ID returns the unique id of this session, distinct from the courier id.
// A courier that reconnects gets a new session id.
func (s *Session) ID() string {
	return s.id
}

// CourierID returns the courier this session belongs to, or empty.
func (s *Session) CourierID() string {
	return s.courierID
}

// Emit marshals the event envelope and writes it as a single text frame.
func (s *Session) Emit(event string, payload any) error {
	env := outboundEnvelope{Event: event, Data: payload}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline for %s event: %w", event, err)
	}
	if err := wsutil.WriteServerText(s.conn, data); err != nil {
		return fmt.Errorf("write %s event: %w", event, err)
	}
	return nil
}

// Close closes the underlying connection, unblocking the read loop.
func (s *Session) Close() error {
	return s.conn.Close()
}
