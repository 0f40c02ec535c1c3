package types

import "testing"

func TestEventEqualityIsByTargetID(t *testing.T) {
	a := Event{Type: EventTypeData, Target: Data{ID: 1}}
	b := Event{Type: EventTypeHeartbeat, Target: Data{ID: 1}}
	c := Event{Type: EventTypeData, Target: Data{ID: 2}}

	if !a.Equal(b) {
		t.Error("events with the same target id should be equal regardless of type")
	}
	if a.Equal(c) {
		t.Error("events with different target ids should not be equal")
	}
}
