package types

import (
	"time"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
)

// Trade records one crossing's outcome: the FIFO of makers it consumed (in
// participation order, partial maker last if present) and the single taker
// that crossed into them.
type Trade struct {
	ID           id.Id
	InstrumentID id.Id
	Exchange     ExchangeTag
	Timestamp    time.Time

	Volume fixedpoint.Price
	Price  fixedpoint.Price // volume-weighted average across the matched makers

	MakerOrders []id.Id
	TakerOrder  id.Id
}

// GetID implements EventData.
func (t Trade) GetID() id.Id { return t.ID }

// VWAP computes the volume-weighted average price across a set of fills.
// Returns ZERO if the weights sum to zero, matching the spec's explicit
// tie-break for an empty or zero-volume fill set. Returns ErrOverflow if the
// float64 round-trip produces a value outside the scaled int64 range.
func VWAP(fills []Fill) (fixedpoint.Price, error) {
	var totalValue, totalVolume fixedpoint.Price
	for _, f := range fills {
		pv, err := priceTimesVolume(f.Price, f.Volume)
		if err != nil {
			return fixedpoint.ZERO, err
		}
		totalValue = totalValue.Add(pv)
		totalVolume = totalVolume.Add(f.Volume)
	}
	if totalVolume.IsZero() {
		return fixedpoint.ZERO, nil
	}
	return divide(totalValue, totalVolume)
}

// Fill is one maker's contribution to a trade: the price at its resting
// level and the volume matched there.
type Fill struct {
	Price  fixedpoint.Price
	Volume fixedpoint.Price
}

// priceTimesVolume and divide exist because fixedpoint.Price deliberately
// exposes no multiply/divide (the spec forbids compounding the scale by
// multiplying two scaled scalars together). VWAP needs exactly one
// multiply-then-divide through an unscaled intermediate, so it is computed
// here in float64 and re-scaled, rather than adding general-purpose
// multiplication to the scalar type.
func priceTimesVolume(p, v fixedpoint.Price) (fixedpoint.Price, error) {
	return fixedpoint.FromFloat(p.ToFloat() * v.ToFloat())
}

func divide(value, volume fixedpoint.Price) (fixedpoint.Price, error) {
	return fixedpoint.FromFloat(value.ToFloat() / volume.ToFloat())
}
