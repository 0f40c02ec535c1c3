package types

import (
	"fmt"
	"time"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
)

// Order describes a resting or incoming order. Every field is immutable
// after construction except Filled, which the registry updates via
// SetFilled, and forceDone, which WithForceDone sets on a copy.
type Order struct {
	ID           id.Id
	InstrumentID id.Id
	Exchange     ExchangeTag
	Timestamp    time.Time

	Side  Side
	Type  OrderType
	Flag  OrderFlag

	Volume   fixedpoint.Price // always set
	Price    fixedpoint.Price // LIMIT only
	Notional fixedpoint.Price // MARKET-by-notional only

	Filled     fixedpoint.Price
	forceDone  bool

	// Linkage fields, carried opaquely by the core.
	ParticipantID        id.Optional[id.Id]
	ExchangeOrderID       id.Optional[id.Id]
	ConditionalTargetID  id.Optional[id.Id]
	ReceivedTimestamp    id.Optional[time.Time]
	UpdateTimestamp      id.Optional[time.Time]
	DispatchTimestamp    id.Optional[time.Time]

	ClientOrderID string
}

// NewOrderParams bundles the full constructor parameter list, mirroring the
// source's explicit Order::new signature.
type NewOrderParams struct {
	ID           id.Id
	Timestamp    id.Optional[time.Time]
	InstrumentID id.Id
	Exchange     ExchangeTag

	Volume   fixedpoint.Price
	Price    id.Optional[fixedpoint.Price]
	Notional id.Optional[fixedpoint.Price]

	Side Side
	Type OrderType
	Flag id.Optional[OrderFlag]

	ParticipantID       id.Optional[id.Id]
	ExchangeOrderID     id.Optional[id.Id]
	ReceivedTimestamp   id.Optional[time.Time]
	UpdateTimestamp     id.Optional[time.Time]
	DispatchTimestamp   id.Optional[time.Time]
	ConditionalTargetID id.Optional[id.Id]

	ClientOrderID string
}

// NewOrder validates and constructs an Order. Construction-time validation
// failures are reported as ErrInvalidOrder:
//   - MARKET must not carry a price.
//   - MARKET with IMMEDIATE_OR_CANCEL is rejected as redundant (market
//     orders are IOC-by-residual-discard by definition).
//   - LIMIT must carry a price.
func NewOrder(p NewOrderParams) (Order, error) {
	flag := p.Flag.OrElse(OrderFlagNone)

	switch p.Type {
	case OrderTypeMarket:
		if _, hasPrice := p.Price.Get(); hasPrice {
			return Order{}, fmt.Errorf("%w: market order must not carry a price", ErrInvalidOrder)
		}
		if flag == OrderFlagImmediateOrCancel {
			return Order{}, fmt.Errorf("%w: market orders are immediate-or-cancel by default", ErrInvalidOrder)
		}
	case OrderTypeLimit:
		if _, hasPrice := p.Price.Get(); !hasPrice {
			return Order{}, fmt.Errorf("%w: limit order must carry a price", ErrInvalidOrder)
		}
	}

	timestamp := p.Timestamp.OrElse(time.Now().UTC())
	price := p.Price.OrElse(fixedpoint.ZERO)
	notional := p.Notional.OrElse(fixedpoint.ZERO)

	return Order{
		ID:                  p.ID,
		InstrumentID:        p.InstrumentID,
		Exchange:            p.Exchange,
		Timestamp:           timestamp,
		Side:                p.Side,
		Type:                p.Type,
		Flag:                flag,
		Volume:              p.Volume,
		Price:               price,
		Notional:            notional,
		Filled:              fixedpoint.ZERO,
		ParticipantID:       p.ParticipantID,
		ExchangeOrderID:     p.ExchangeOrderID,
		ConditionalTargetID: p.ConditionalTargetID,
		ReceivedTimestamp:   p.ReceivedTimestamp,
		UpdateTimestamp:     p.UpdateTimestamp,
		DispatchTimestamp:   p.DispatchTimestamp,
		ClientOrderID:       p.ClientOrderID,
	}, nil
}

// NewLimitOrder builds a validated LIMIT order, mirroring the registry's
// new_limit convenience.
func NewLimitOrder(orderID, instrumentID id.Id, exchange ExchangeTag, volume, price fixedpoint.Price, side Side, flag id.Optional[OrderFlag]) (Order, error) {
	return NewOrder(NewOrderParams{
		ID:           orderID,
		InstrumentID: instrumentID,
		Exchange:     exchange,
		Volume:       volume,
		Price:        id.Some(price),
		Side:         side,
		Type:         OrderTypeLimit,
		Flag:         flag,
	})
}

// NewMarketOrder builds a validated MARKET order, mirroring the registry's
// new_market convenience.
func NewMarketOrder(orderID, instrumentID id.Id, exchange ExchangeTag, volume, notional fixedpoint.Price, side Side) (Order, error) {
	return NewOrder(NewOrderParams{
		ID:           orderID,
		InstrumentID: instrumentID,
		Exchange:     exchange,
		Volume:       volume,
		Notional:     id.Some(notional),
		Side:         side,
		Type:         OrderTypeMarket,
	})
}

// VolumeLeft is Volume - Filled, the quantity still available to match.
func (o Order) VolumeLeft() fixedpoint.Price {
	return o.Volume.Sub(o.Filled)
}

// ForceDone reports whether the order has been marked done independent of
// its fill state (e.g. a cancel that raced a fill).
func (o Order) ForceDone() bool { return o.forceDone }

// WithForceDone returns a copy of o with forceDone set.
func (o Order) WithForceDone(v bool) Order {
	o.forceDone = v
	return o
}

// GetID implements EventData so an Order can be carried directly as an
// event target.
func (o Order) GetID() id.Id { return o.ID }

func (o Order) String() string {
	return fmt.Sprintf("O(%s@%s)", o.VolumeLeft(), o.Price)
}
