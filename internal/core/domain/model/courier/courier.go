// Package courier contains the courier presence record: an external actor
// identified by a stable id that connects over the session gateway, receives
// job offers and acts on them. The record is created on first connection and
// survives disconnects as presence history.
package courier

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCourierIsNotConstructed is returned when using an improperly initialized
// Courier.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")

// Courier tracks the liveness of a connected courier.
//
// Lifecycle: created on first connection with the given id; Online flips to
// false on disconnect but the record persists; a later reconnection with the
// same id flips Online back to true. The session handle itself is owned by
// the gateway registry, never by this record.
type Courier struct {
	// id is the stable external identifier supplied by the client
	id string

	// online is true while a session is attached
	online bool

	// firstSeenAt is the time of the first connection with this id
	firstSeenAt time.Time

	// lastSeenAt tracks the most recent connect or disconnect
	lastSeenAt time.Time

	guard guard.ConstructorGuard
}

// NewCourier creates an online courier record for a first connection.
func NewCourier(id string, at time.Time) (*Courier, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}

	return &Courier{
		id:          id,
		online:      true,
		firstSeenAt: at,
		lastSeenAt:  at,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Courier was created through NewCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's stable external identifier.
func (c *Courier) ID() string {
	return c.id
}

// Online reports whether a session is currently attached.
func (c *Courier) Online() bool {
	return c.online
}

// FirstSeenAt returns the time of the first connection.
func (c *Courier) FirstSeenAt() time.Time {
	return c.firstSeenAt
}

// LastSeenAt returns the time of the most recent connect or disconnect.
func (c *Courier) LastSeenAt() time.Time {
	return c.lastSeenAt
}

// MarkOnline records a (re)connection. Idempotent.
func (c *Courier) MarkOnline(at time.Time) {
	c.online = true
	c.lastSeenAt = at
}

// MarkOffline records a disconnect. The record is kept for presence history.
func (c *Courier) MarkOffline(at time.Time) {
	c.online = false
	c.lastSeenAt = at
}
