package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventReservationCreated = "reservation.created"
	EventReservationUpdated = "reservation.updated"
	EventKeepAlive          = "ping"
)

// Event is an ephemeral domain notification. Seq is assigned by the hub at
// publish time and is strictly increasing for the lifetime of the process.
// Patch carries only the fields that changed.
type Event struct {
	Seq       uint64         `json:"seq"`
	Type      string         `json:"type"`
	SubjectID uuid.UUID      `json:"subject_id,omitempty"`
	Patch     map[string]any `json:"patch,omitempty"`
	Timestamp time.Time      `json:"ts"`
}

// Publisher is what mutating services see: fan-out with no error to handle.
type Publisher interface {
	Publish(event Event) uint64
}
