package engine

import (
	"fmt"
	"time"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

// fill records one maker's contribution to a crossing: its id, the volume
// taken from it, and the price of the level it rested at (needed for VWAP
// since a taker can walk through more than one price level).
type fill struct {
	orderID id.Id
	price   fixedpoint.Price
	volume  fixedpoint.Price
}

// Add runs taker_order_id through the crossing loop against the opposite
// side of the book, then, if it is not fully filled, applies this book's
// residual-handling rule for its type and flag. It returns the events the
// mutation produced — at most one TRADE event, since every fill in a single
// Add is folded into one VWAP-priced trade.
//
// Add rejects a flag this book was not configured to accept with
// ErrUnsupportedFlag, recoverably. A flag the book accepts but the crossing
// loop does not yet implement is a fatal ErrUnimplemented instead — the
// caller already committed to supporting it.
func (b *LimitOrderBook) Add(orderID id.Id) ([]types.Event, error) {
	taker, err := b.orders.Get(orderID)
	if err != nil {
		b.fatal(err)
	}
	if _, accepted := b.orderFlags[taker.Flag]; !accepted {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFlag, taker.Flag)
	}

	price := taker.Price
	side := taker.Side
	if taker.Type == types.OrderTypeMarket {
		// A market order carries no price: it crosses whatever the opposite
		// side currently offers.
		price = fixedpoint.INFINITY
		if side == types.SideSell {
			price = fixedpoint.ZERO
		}
	}
	volumeLeftToFill := taker.VolumeLeft()
	crossLadder := b.oppositeLadderFor(side)

	var filled []fill
	var partial *fill

	filledSoFarInTxn := fixedpoint.ZERO

	for !filledSoFarInTxn.Equal(volumeLeftToFill) {
		topOfBuys := b.buys.TopPrice(fixedpoint.ZERO)
		bottomOfSells := b.sells.TopPrice(fixedpoint.INFINITY)

		var crossing bool
		switch side {
		case types.SideBuy:
			crossing = price.GTE(bottomOfSells) && crossLadder.Len() > 0
		case types.SideSell:
			crossing = price.LTE(topOfBuys) && crossLadder.Len() > 0
		}
		if !crossing {
			break
		}

		lvl := crossLadder.Top()
		makerID, ok := lvl.PopFront()
		if !ok {
			b.fatal(fmt.Errorf("%w: top price level has no resting order", types.ErrCorruption))
		}
		maker, err := b.orders.Get(makerID)
		if err != nil {
			b.fatal(err)
		}
		b.requireNone(maker.Flag)

		makerVolume := maker.VolumeLeft()
		remainingToFill := volumeLeftToFill.Sub(filledSoFarInTxn)
		if remainingToFill.Cmp(fixedpoint.ZERO) < 0 {
			b.fatal(fmt.Errorf("%w: remaining-to-fill went negative", types.ErrCorruption))
		}

		if makerVolume.GT(remainingToFill) {
			partial = &fill{orderID: makerID, price: lvl.price, volume: remainingToFill}
			filledSoFarInTxn = filledSoFarInTxn.Add(remainingToFill)
		} else {
			filled = append(filled, fill{orderID: makerID, price: lvl.price, volume: makerVolume})
			filledSoFarInTxn = filledSoFarInTxn.Add(makerVolume)
		}

		if lvl.IsEmpty() {
			crossLadder.Remove(lvl.price)
		}
	}

	if filledSoFarInTxn.LT(volumeLeftToFill) {
		b.handleResidual(taker, filledSoFarInTxn)
	}

	var events []types.Event
	if filledSoFarInTxn.IsPositive() {
		trade, err := b.settle(taker, filled, partial, filledSoFarInTxn, side)
		if err != nil {
			b.fatal(err)
		}
		events = append(events, types.Event{Type: types.EventTypeTrade, Target: trade})
		if b.metrics != nil {
			b.metrics.IncEvent(types.EventTypeTrade)
			b.metrics.ObserveTrade(trade.Volume, trade.Price)
		}
	}
	b.reportDepth()
	b.notifyDepthSink()
	return events, nil
}

// handleResidual applies the book's rule for a taker that was not fully
// filled by the crossing loop. Only LIMIT+NONE (rest on the book) and
// MARKET+NONE (silently drop the remainder) are implemented; every other
// type/flag combination is deferred.
func (b *LimitOrderBook) handleResidual(taker types.Order, filledSoFarInTxn fixedpoint.Price) {
	switch taker.Type {
	case types.OrderTypeLimit:
		b.requireNone(taker.Flag)
		if _, err := b.orders.SetFilled(taker.ID, filledSoFarInTxn); err != nil {
			b.fatal(err)
		}
		b.ladderFor(taker.Side).GetOrCreate(taker.Price).PushBack(taker.ID)
	case types.OrderTypeMarket:
		switch taker.Flag {
		case types.OrderFlagNone:
			// remainder evaporates: a market order never rests
		default:
			b.fatal(fmt.Errorf("%w: market order flag %s", types.ErrUnimplemented, taker.Flag))
		}
	default:
		b.fatal(fmt.Errorf("%w: order type %s", types.ErrUnimplemented, taker.Type))
	}
}

// settle applies every fill/partial produced by the crossing loop — writing
// the filled quantities back to the registry, restoring the partially
// consumed maker's priority at the front of its level, and folding the
// whole set into one VWAP trade against the taker.
func (b *LimitOrderBook) settle(taker types.Order, filled []fill, partial *fill, totalFilled fixedpoint.Price, side types.Side) (types.Trade, error) {
	makerOrders := make([]id.Id, 0, len(filled)+1)
	vwapFills := make([]types.Fill, 0, len(filled)+1)

	for _, f := range filled {
		if _, err := b.orders.SetFilled(f.orderID, f.volume); err != nil {
			b.fatal(err)
		}
		makerOrders = append(makerOrders, f.orderID)
		vwapFills = append(vwapFills, types.Fill{Price: f.price, Volume: f.volume})
	}

	if partial != nil {
		if _, err := b.orders.SetFilled(partial.orderID, partial.volume); err != nil {
			b.fatal(err)
		}
		makerOrders = append(makerOrders, partial.orderID)
		vwapFills = append(vwapFills, types.Fill{Price: partial.price, Volume: partial.volume})

		crossLadder := b.oppositeLadderFor(side)
		crossLadder.GetOrCreate(partial.price).PushFront(partial.orderID)
	}

	price, err := types.VWAP(vwapFills)
	if err != nil {
		return types.Trade{}, err
	}

	return types.Trade{
		InstrumentID: taker.InstrumentID,
		Exchange:     taker.Exchange,
		Timestamp:    time.Now().UTC(),
		Volume:       totalFilled,
		Price:        price,
		MakerOrders:  makerOrders,
		TakerOrder:   taker.ID,
	}, nil
}
