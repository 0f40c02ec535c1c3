package registry

import (
	"fmt"
	"time"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

// OrderRegistry owns the authoritative Order values the book references by
// id. The book itself never holds an Order, only the Id — see the engine
// package for the weak-reference discipline that implies.
type OrderRegistry struct {
	*Registry[types.Order]
}

// NewOrderRegistry constructs an empty order registry.
func NewOrderRegistry() *OrderRegistry {
	return &OrderRegistry{Registry: New[types.Order]()}
}

// Create builds and stores an Order from the full parameter list, assigning
// the id atomically with construction. Validation runs before any id is
// consumed, so a rejected order never burns a sequence number.
func (r *OrderRegistry) Create(params types.NewOrderParams) (types.Order, error) {
	if _, err := types.NewOrder(params); err != nil {
		return types.Order{}, err
	}
	_, order := r.Registry.Create(func(assigned id.Id) types.Order {
		params.ID = assigned
		o, _ := types.NewOrder(params) // already validated above
		return o
	})
	return order, nil
}

// NewLimit creates and stores a validated LIMIT order.
func (r *OrderRegistry) NewLimit(instrumentID id.Id, exchange types.ExchangeTag, volume, price fixedpoint.Price, side types.Side, flag id.Optional[types.OrderFlag]) (types.Order, error) {
	return r.Create(types.NewOrderParams{
		Timestamp:    id.Some(time.Now().UTC()),
		InstrumentID: instrumentID,
		Exchange:     exchange,
		Volume:       volume,
		Price:        id.Some(price),
		Side:         side,
		Type:         types.OrderTypeLimit,
		Flag:         flag,
	})
}

// NewMarket creates and stores a validated MARKET order.
func (r *OrderRegistry) NewMarket(instrumentID id.Id, exchange types.ExchangeTag, volume, notional fixedpoint.Price, side types.Side) (types.Order, error) {
	return r.Create(types.NewOrderParams{
		Timestamp:    id.Some(time.Now().UTC()),
		InstrumentID: instrumentID,
		Exchange:     exchange,
		Volume:       volume,
		Notional:     id.Some(notional),
		Side:         side,
		Type:         types.OrderTypeMarket,
	})
}

// SetFilled adds delta to the order's filled quantity and writes the result
// back. It returns ErrCorruption if the post-state would violate
// 0 <= filled <= volume; callers at the matching layer treat that as fatal.
func (r *OrderRegistry) SetFilled(orderID id.Id, delta fixedpoint.Price) (types.Order, error) {
	return r.Registry.Mutate(orderID, func(o types.Order) (types.Order, error) {
		o.Filled = o.Filled.Add(delta)
		if o.Filled.LT(fixedpoint.ZERO) || o.Filled.GT(o.Volume) {
			return types.Order{}, fmt.Errorf("%w: order %s filled %s outside [0, %s]", types.ErrCorruption, orderID, o.Filled, o.Volume)
		}
		return o, nil
	})
}
