package types

import (
	"errors"
	"testing"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
)

func TestNewLimitOrderRequiresPrice(t *testing.T) {
	_, err := NewOrder(NewOrderParams{
		ID:           1,
		InstrumentID: 1,
		Volume:       fixedpoint.FromInt(10),
		Side:         SideBuy,
		Type:         OrderTypeLimit,
	})
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestNewMarketOrderRejectsPrice(t *testing.T) {
	_, err := NewOrder(NewOrderParams{
		ID:           1,
		InstrumentID: 1,
		Volume:       fixedpoint.FromInt(10),
		Price:        id.Some(fixedpoint.FromInt(10)),
		Side:         SideBuy,
		Type:         OrderTypeMarket,
	})
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestNewMarketOrderRejectsImmediateOrCancel(t *testing.T) {
	_, err := NewOrder(NewOrderParams{
		ID:           1,
		InstrumentID: 1,
		Volume:       fixedpoint.FromInt(10),
		Side:         SideBuy,
		Type:         OrderTypeMarket,
		Flag:         id.Some(OrderFlagImmediateOrCancel),
	})
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestVolumeLeft(t *testing.T) {
	o, err := NewLimitOrder(1, 1, "TEST", fixedpoint.FromInt(10), fixedpoint.FromInt(5), SideBuy, id.None[OrderFlag]())
	if err != nil {
		t.Fatalf("NewLimitOrder: %v", err)
	}
	o.Filled = fixedpoint.FromInt(4)
	if got := o.VolumeLeft(); !got.Equal(fixedpoint.FromInt(6)) {
		t.Errorf("VolumeLeft() = %v, want 6", got)
	}
}

func TestSideOpposite(t *testing.T) {
	if SideBuy.Opposite() != SideSell {
		t.Error("SideBuy.Opposite() should be SideSell")
	}
	if SideSell.Opposite() != SideBuy {
		t.Error("SideSell.Opposite() should be SideBuy")
	}
}
