package types

import "github.com/openalpha/lob-core/pkg/id"

// EventData is the closed tagged union {Data | Order | Trade} an Event
// carries. Go has no sum types, so dispatch is a type switch on the
// interface value rather than a match on a variant tag; downstream
// consumers are expected to do the same.
type EventData interface {
	GetID() id.Id
}

// Data is a generic payload for events that are neither an Order nor a
// Trade (heartbeats, halts, and other session-level signals).
type Data struct {
	ID      id.Id
	Payload any
}

// GetID implements EventData.
func (d Data) GetID() id.Id { return d.ID }

// Event pairs an EventType tag with its payload. Equality is id-based on
// the carried target, matching the source's Event::eq.
type Event struct {
	Type   EventType
	Target EventData
}

// Equal compares two events by the id of their target, not by value.
func (e Event) Equal(other Event) bool {
	return e.Target.GetID() == other.Target.GetID()
}
