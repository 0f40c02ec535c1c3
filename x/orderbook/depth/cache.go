// Package depth maintains a read-optimized market-data view of a book,
// separate from the matching core's own btree/FIFO storage. It exists so a
// consumer asking "what does the top of book look like right now" does not
// have to walk the engine's internal ladder structures directly.
package depth

import (
	"sync"

	"github.com/huandu/skiplist"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/x/orderbook/engine"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

// priceAsc orders ascending by scaled price, for the ask side.
type priceAsc struct{}

func (priceAsc) Compare(lhs, rhs interface{}) int {
	return lhs.(fixedpoint.Price).Cmp(rhs.(fixedpoint.Price))
}

func (priceAsc) CalcScore(key interface{}) float64 {
	return key.(fixedpoint.Price).ToFloat()
}

// priceDesc orders descending by scaled price, for the bid side.
type priceDesc struct{}

func (priceDesc) Compare(lhs, rhs interface{}) int {
	return -lhs.(fixedpoint.Price).Cmp(rhs.(fixedpoint.Price))
}

func (priceDesc) CalcScore(key interface{}) float64 {
	return -key.(fixedpoint.Price).ToFloat()
}

// Cache mirrors a book's resting levels in a pair of skip lists, rebuilt
// wholesale on every Apply. A book may have many depth consumers (a
// websocket fan-out, a REST snapshot handler) reading concurrently while
// the engine mutates on its own goroutine; Cache's own lock is what makes
// that safe, not the engine's (the engine has none).
type Cache struct {
	mu   sync.RWMutex
	bids *skiplist.SkipList
	asks *skiplist.SkipList
}

// NewCache constructs an empty depth cache.
func NewCache() *Cache {
	return &Cache{
		bids: skiplist.New(priceDesc{}),
		asks: skiplist.New(priceAsc{}),
	}
}

// Apply implements engine.DepthSink: it rebuilds both sides from the book's
// current state. Called after every Add/Modify/Cancel.
func (c *Cache) Apply(book *engine.LimitOrderBook) {
	bids := skiplist.New(priceDesc{})
	for _, lvl := range book.Levels(types.SideBuy) {
		bids.Set(lvl.Price, lvl)
	}
	asks := skiplist.New(priceAsc{})
	for _, lvl := range book.Levels(types.SideSell) {
		asks.Set(lvl.Price, lvl)
	}

	c.mu.Lock()
	c.bids, c.asks = bids, asks
	c.mu.Unlock()
}

// BestBid returns the top bid level, and whether one exists.
func (c *Cache) BestBid() (engine.PriceLevelView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	front := c.bids.Front()
	if front == nil {
		return engine.PriceLevelView{}, false
	}
	return front.Value.(engine.PriceLevelView), true
}

// BestAsk returns the top ask level, and whether one exists.
func (c *Cache) BestAsk() (engine.PriceLevelView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	front := c.asks.Front()
	if front == nil {
		return engine.PriceLevelView{}, false
	}
	return front.Value.(engine.PriceLevelView), true
}

// Spread returns BestAsk - BestBid, or ZERO if either side is empty.
func (c *Cache) Spread() fixedpoint.Price {
	bid, hasBid := c.BestBid()
	ask, hasAsk := c.BestAsk()
	if !hasBid || !hasAsk {
		return fixedpoint.ZERO
	}
	return ask.Price.Sub(bid.Price)
}

// TopN returns up to n levels from the given side, best price first.
func (c *Cache) TopN(side types.Side, n int) []engine.PriceLevelView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := c.asks
	if side == types.SideBuy {
		list = c.bids
	}

	out := make([]engine.PriceLevelView, 0, n)
	for e := list.Front(); e != nil && len(out) < n; e = e.Next() {
		out = append(out, e.Value.(engine.PriceLevelView))
	}
	return out
}
