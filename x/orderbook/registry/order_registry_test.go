package registry

import (
	"errors"
	"testing"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

func TestOrderRegistryRejectsInvalidOrderWithoutConsumingID(t *testing.T) {
	r := NewOrderRegistry()

	_, err := r.Create(types.NewOrderParams{
		InstrumentID: 1,
		Volume:       fixedpoint.FromInt(10),
		Side:         types.SideBuy,
		Type:         types.OrderTypeLimit, // no price: invalid
	})
	if !errors.Is(err, types.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}

	if next := r.Next(); next != 1 {
		t.Fatalf("a rejected order must not consume a sequence number, Next() = %v, want 1", next)
	}
}

func TestOrderRegistryNewLimitAssignsID(t *testing.T) {
	r := NewOrderRegistry()
	o, err := r.NewLimit(1, "TEST", fixedpoint.FromInt(10), fixedpoint.FromInt(5), types.SideBuy, id.None[types.OrderFlag]())
	if err != nil {
		t.Fatalf("NewLimit: %v", err)
	}
	if o.ID != 1 {
		t.Errorf("order ID = %v, want 1", o.ID)
	}
	stored, err := r.Get(o.ID)
	if err != nil || stored.ID != o.ID {
		t.Fatalf("Get(%v) = (%v, %v)", o.ID, stored, err)
	}
}

func TestSetFilledAccumulates(t *testing.T) {
	r := NewOrderRegistry()
	o, _ := r.NewLimit(1, "TEST", fixedpoint.FromInt(10), fixedpoint.FromInt(5), types.SideBuy, id.None[types.OrderFlag]())

	updated, err := r.SetFilled(o.ID, fixedpoint.FromInt(4))
	if err != nil {
		t.Fatalf("SetFilled: %v", err)
	}
	if !updated.Filled.Equal(fixedpoint.FromInt(4)) {
		t.Errorf("Filled = %v, want 4", updated.Filled)
	}

	if _, err := r.SetFilled(o.ID, fixedpoint.FromInt(4)); err != nil {
		t.Fatalf("second SetFilled: %v", err)
	}
}

func TestSetFilledPastVolumeIsCorruption(t *testing.T) {
	r := NewOrderRegistry()
	o, _ := r.NewLimit(1, "TEST", fixedpoint.FromInt(10), fixedpoint.FromInt(5), types.SideBuy, id.None[types.OrderFlag]())

	_, err := r.SetFilled(o.ID, fixedpoint.FromInt(11))
	if !errors.Is(err, types.ErrCorruption) {
		t.Fatalf("expected ErrCorruption, got %v", err)
	}
}
