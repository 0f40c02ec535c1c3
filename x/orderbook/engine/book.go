// Package engine implements the matching core: the price-ordered,
// double-sided order book and its crossing algorithm. It is the only
// package in this module that is not safe for concurrent use by itself —
// per spec, a LimitOrderBook must be driven from a single scheduling
// context at a time; all shared mutable state lives in the registries it
// references, which are safe for concurrent use.
package engine

import (
	"cosmossdk.io/log"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/registry"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

// MetricsSink receives matching-engine observations. metrics.Collector
// implements this; engine does not import metrics directly so the core can
// be used without pulling in Prometheus.
type MetricsSink interface {
	ObserveTrade(volume, price fixedpoint.Price)
	ObserveDepth(side types.Side, levels int)
	IncEvent(t types.EventType)
}

// DepthSink receives a snapshot of the book after every mutation, for a
// downstream market-data cache to mirror without touching engine internals.
type DepthSink interface {
	Apply(book *LimitOrderBook)
}

// LimitOrderBook is the matching engine and order book state for a single
// (instrument, exchange) pair.
type LimitOrderBook struct {
	instrumentID id.Id
	exchange     types.ExchangeTag
	orderFlags   map[types.OrderFlag]struct{}

	orders *registry.OrderRegistry

	buys  *ladder // descending: highest bid first
	sells *ladder // ascending: lowest ask first

	logger  log.Logger
	metrics MetricsSink
	depth   DepthSink
}

// Option configures optional collaborators on New.
type Option func(*LimitOrderBook)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(b *LimitOrderBook) { b.logger = logger.With("component", "orderbook") }
}

// WithMetrics attaches a metrics sink invoked as events are produced.
func WithMetrics(sink MetricsSink) Option {
	return func(b *LimitOrderBook) { b.metrics = sink }
}

// WithDepthSink attaches a downstream depth cache updated after every
// mutation.
func WithDepthSink(sink DepthSink) Option {
	return func(b *LimitOrderBook) { b.depth = sink }
}

// New constructs an empty book. allowedFlags may be nil, meaning "NONE
// only". Add rejects an order whose flag is outside this set with
// ErrUnsupportedFlag, returned as an ordinary error; that rejection does
// not carry ErrUnimplemented.
func New(instrumentID id.Id, exchange types.ExchangeTag, allowedFlags []types.OrderFlag, orders *registry.OrderRegistry, opts ...Option) *LimitOrderBook {
	flagSet := make(map[types.OrderFlag]struct{}, len(allowedFlags)+1)
	flagSet[types.OrderFlagNone] = struct{}{}
	for _, f := range allowedFlags {
		flagSet[f] = struct{}{}
	}

	b := &LimitOrderBook{
		instrumentID: instrumentID,
		exchange:     exchange,
		orderFlags:   flagSet,
		orders:       orders,
		buys:         newLadder(true),
		sells:        newLadder(false),
		logger:       log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetInstrument returns the instrument this book serves (alias of
// GetInstrumentID, kept for parity with the source's two accessors).
func (b *LimitOrderBook) GetInstrument() id.Id { return b.instrumentID }

// GetInstrumentID returns the instrument this book serves.
func (b *LimitOrderBook) GetInstrumentID() id.Id { return b.instrumentID }

// GetExchange returns the venue tag this book was configured with.
func (b *LimitOrderBook) GetExchange() types.ExchangeTag { return b.exchange }

// GetOrderFlags returns the set of flags this book accepts on submission.
func (b *LimitOrderBook) GetOrderFlags() map[types.OrderFlag]struct{} {
	out := make(map[types.OrderFlag]struct{}, len(b.orderFlags))
	for f := range b.orderFlags {
		out[f] = struct{}{}
	}
	return out
}

// PriceLevelView is one side's k-th level: price, aggregate remaining
// volume, and order count.
type PriceLevelView struct {
	Price  fixedpoint.Price
	Volume fixedpoint.Price
	Count  int
}

// GetLevel returns the k-th level from the top on each side. A side with
// fewer than k+1 levels reports (ZERO, ZERO, 0) on that side.
func (b *LimitOrderBook) GetLevel(k int) (bid PriceLevelView, ask PriceLevelView) {
	bid = b.viewAt(b.buys, k)
	ask = b.viewAt(b.sells, k)
	return bid, ask
}

func (b *LimitOrderBook) viewAt(lad *ladder, k int) PriceLevelView {
	lvl := lad.NthFromTop(k)
	if lvl == nil {
		return PriceLevelView{Price: fixedpoint.ZERO, Volume: fixedpoint.ZERO, Count: 0}
	}
	return PriceLevelView{
		Price:  lvl.price,
		Volume: b.volumeAtLevel(lvl),
		Count:  lvl.Len(),
	}
}

func (b *LimitOrderBook) volumeAtLevel(lvl *level) fixedpoint.Price {
	total := fixedpoint.ZERO
	lvl.Each(func(orderID id.Id) {
		o, err := b.orders.Get(orderID)
		if err != nil {
			b.fatal(err)
		}
		total = total.Add(o.VolumeLeft())
	})
	return total
}

// Depth returns the number of distinct price levels on each side.
func (b *LimitOrderBook) Depth() (bidLevels, askLevels int) {
	return b.buys.Len(), b.sells.Len()
}

// Levels returns every resting level on one side, best price first, for a
// downstream cache to mirror. The book itself never needs a full-side
// listing — only DepthSink consumers do.
func (b *LimitOrderBook) Levels(side types.Side) []PriceLevelView {
	lad := b.ladderFor(side)
	out := make([]PriceLevelView, 0, lad.Len())
	lad.Each(func(lvl *level) bool {
		out = append(out, PriceLevelView{
			Price:  lvl.price,
			Volume: b.volumeAtLevel(lvl),
			Count:  lvl.Len(),
		})
		return true
	})
	return out
}

func (b *LimitOrderBook) ladderFor(side types.Side) *ladder {
	if side == types.SideBuy {
		return b.buys
	}
	return b.sells
}

func (b *LimitOrderBook) oppositeLadderFor(side types.Side) *ladder {
	if side == types.SideBuy {
		return b.sells
	}
	return b.buys
}

func (b *LimitOrderBook) reportDepth() {
	if b.metrics == nil {
		return
	}
	b.metrics.ObserveDepth(types.SideBuy, b.buys.Len())
	b.metrics.ObserveDepth(types.SideSell, b.sells.Len())
}

func (b *LimitOrderBook) notifyDepthSink() {
	if b.depth != nil {
		b.depth.Apply(b)
	}
}
