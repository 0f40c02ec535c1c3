package engine

import (
	"fmt"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

// Modify changes a resting order's volume and moves the order to the back
// of its price level's queue. Price cannot be modified this way — a price
// change is a Cancel followed by an Add, which Replace performs as two
// separate book mutations.
func (b *LimitOrderBook) Modify(orderID id.Id, volume fixedpoint.Price) []types.Event {
	existing, err := b.orders.Get(orderID)
	if err != nil {
		b.fatal(err)
	}

	replacement := existing
	replacement.Volume = volume
	b.orders.Replace(orderID, replacement)

	lvl := b.ladderFor(existing.Side).Get(existing.Price)
	if lvl == nil {
		b.fatal(fmt.Errorf("%w: no resting level at price %s for order %s", types.ErrCorruption, existing.Price, orderID))
	}
	if !lvl.Remove(orderID) {
		b.fatal(fmt.Errorf("%w: order %s not resting at its stored price %s", types.ErrCorruption, orderID, existing.Price))
	}
	lvl.PushBack(orderID)

	if b.metrics != nil {
		b.metrics.IncEvent(types.EventTypeChange)
	}
	b.reportDepth()
	b.notifyDepthSink()
	return []types.Event{{Type: types.EventTypeChange, Target: replacement}}
}

// Replace cancels existingOrderID and adds replacementOrderID in its place,
// as two book mutations rather than one. Both orders must already exist in
// the registry.
func (b *LimitOrderBook) Replace(existingOrderID, replacementOrderID id.Id) ([]types.Event, error) {
	events := b.Cancel(existingOrderID)
	more, err := b.Add(replacementOrderID)
	if err != nil {
		return events, err
	}
	return append(events, more...), nil
}

// Cancel removes a resting order from its level, dropping the level itself
// if it was the last order there.
func (b *LimitOrderBook) Cancel(orderID id.Id) []types.Event {
	order, err := b.orders.Get(orderID)
	if err != nil {
		b.fatal(err)
	}

	lad := b.ladderFor(order.Side)
	lvl := lad.Get(order.Price)
	if lvl == nil {
		b.fatal(fmt.Errorf("%w: no resting level at price %s for order %s", types.ErrCorruption, order.Price, orderID))
	}
	lvl.Remove(orderID)
	if lvl.IsEmpty() {
		lad.Remove(order.Price)
	}

	if b.metrics != nil {
		b.metrics.IncEvent(types.EventTypeCancel)
	}
	b.reportDepth()
	b.notifyDepthSink()
	return []types.Event{{Type: types.EventTypeCancel, Target: order}}
}
