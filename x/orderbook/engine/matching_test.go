package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/registry"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

const testInstrument id.Id = 1
const testExchange types.ExchangeTag = "TEST"

// buildBasicBook lays down three bids (10@10, 10@9, 10@8) and three asks
// (10@11, 10@12, 10@13), mirroring the reference scenarios this crossing
// loop is checked against.
func buildBasicBook(t *testing.T) (*LimitOrderBook, *registry.OrderRegistry) {
	t.Helper()
	orders := registry.NewOrderRegistry()
	book := New(testInstrument, testExchange, nil, orders)

	rest := func(side types.Side, volume, price int64) {
		o, err := orders.NewLimit(testInstrument, testExchange, fixedpoint.FromInt(volume), fixedpoint.FromInt(price), side, id.None[types.OrderFlag]())
		if err != nil {
			t.Fatalf("NewLimit: %v", err)
		}
		if _, err := book.Add(o.ID); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	rest(types.SideBuy, 10, 10)
	rest(types.SideBuy, 10, 9)
	rest(types.SideBuy, 10, 8)
	rest(types.SideSell, 10, 11)
	rest(types.SideSell, 10, 12)
	rest(types.SideSell, 10, 13)

	return book, orders
}

func checkTop(t *testing.T, book *LimitOrderBook, level int, bidPrice, bidVolume float64, bidCount int, askPrice, askVolume float64, askCount int) {
	t.Helper()
	bid, ask := book.GetLevel(level)
	if bid.Price.ToFloat() != bidPrice || bid.Volume.ToFloat() != bidVolume || bid.Count != bidCount {
		t.Errorf("bid level %d = (%v, %v, %d), want (%v, %v, %d)", level, bid.Price.ToFloat(), bid.Volume.ToFloat(), bid.Count, bidPrice, bidVolume, bidCount)
	}
	if ask.Price.ToFloat() != askPrice || ask.Volume.ToFloat() != askVolume || ask.Count != askCount {
		t.Errorf("ask level %d = (%v, %v, %d), want (%v, %v, %d)", level, ask.Price.ToFloat(), ask.Volume.ToFloat(), ask.Count, askPrice, askVolume, askCount)
	}
}

func addLimit(t *testing.T, book *LimitOrderBook, orders *registry.OrderRegistry, side types.Side, volume, price int64) types.Order {
	t.Helper()
	o, err := orders.NewLimit(testInstrument, testExchange, fixedpoint.FromInt(volume), fixedpoint.FromInt(price), side, id.None[types.OrderFlag]())
	if err != nil {
		t.Fatalf("NewLimit: %v", err)
	}
	if _, err := book.Add(o.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return o
}

func TestSimpleCrossBuy(t *testing.T) {
	book, orders := buildBasicBook(t)

	addLimit(t, book, orders, types.SideSell, 5, 10)
	checkTop(t, book, 0, 10.0, 5.0, 1, 11.0, 10.0, 1)

	addLimit(t, book, orders, types.SideSell, 5, 10)
	checkTop(t, book, 0, 9.0, 10.0, 1, 11.0, 10.0, 1)
}

func TestSimpleCrossSell(t *testing.T) {
	book, orders := buildBasicBook(t)

	addLimit(t, book, orders, types.SideBuy, 5, 11)
	checkTop(t, book, 0, 10.0, 10.0, 1, 11.0, 5.0, 1)

	addLimit(t, book, orders, types.SideBuy, 5, 11)
	checkTop(t, book, 0, 10.0, 10.0, 1, 12.0, 10.0, 1)
}

func TestSimpleClearBuy(t *testing.T) {
	book, orders := buildBasicBook(t)

	addLimit(t, book, orders, types.SideSell, 15, 10)
	checkTop(t, book, 0, 9.0, 10.0, 1, 10.0, 5.0, 1)
}

func TestSimpleClearSell(t *testing.T) {
	book, orders := buildBasicBook(t)

	addLimit(t, book, orders, types.SideBuy, 15, 12)
	checkTop(t, book, 0, 10.0, 10.0, 1, 12.0, 5.0, 1)
}

func TestSimpleExhaustBuy(t *testing.T) {
	book, orders := buildBasicBook(t)

	// A sell walks through every bid and rests the remainder at 5.
	addLimit(t, book, orders, types.SideSell, 50, 5)
	checkTop(t, book, 0, 0.0, 0.0, 0, 5.0, 20.0, 1)
}

func TestSimpleExhaustSell(t *testing.T) {
	book, orders := buildBasicBook(t)

	// A buy walks through every ask and rests the remainder at 15.
	addLimit(t, book, orders, types.SideBuy, 50, 15)
	checkTop(t, book, 0, 15.0, 20.0, 1, 0.0, 0.0, 0)
}

func TestAddProducesVWAPTrade(t *testing.T) {
	orders := registry.NewOrderRegistry()
	book := New(testInstrument, testExchange, nil, orders)

	addLimit(t, book, orders, types.SideSell, 5, 10)
	addLimit(t, book, orders, types.SideSell, 5, 11)

	taker, err := orders.NewLimit(testInstrument, testExchange, fixedpoint.FromInt(10), fixedpoint.FromInt(11), types.SideBuy, id.None[types.OrderFlag]())
	if err != nil {
		t.Fatalf("NewLimit: %v", err)
	}
	events, err := book.Add(taker.ID)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(events) != 1 || events[0].Type != types.EventTypeTrade {
		t.Fatalf("expected a single trade event, got %+v", events)
	}
	trade := events[0].Target.(types.Trade)
	if !trade.Volume.Equal(fixedpoint.FromInt(10)) {
		t.Errorf("trade volume = %v, want 10", trade.Volume)
	}
	wantVWAP := 10.5 // (5*10 + 5*11) / 10
	if got := trade.Price.ToFloat(); got != wantVWAP {
		t.Errorf("trade VWAP = %v, want %v", got, wantVWAP)
	}
	if len(trade.MakerOrders) != 2 {
		t.Errorf("expected 2 maker orders, got %d", len(trade.MakerOrders))
	}
}

func TestMarketOrderResidualIsDropped(t *testing.T) {
	orders := registry.NewOrderRegistry()
	book := New(testInstrument, testExchange, nil, orders)

	addLimit(t, book, orders, types.SideSell, 5, 10)

	taker, err := orders.NewMarket(testInstrument, testExchange, fixedpoint.FromInt(10), fixedpoint.ZERO, types.SideBuy)
	if err != nil {
		t.Fatalf("NewMarket: %v", err)
	}
	events, err := book.Add(taker.ID)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected a trade event, got %+v", events)
	}

	bidLevels, _ := book.Depth()
	if bidLevels != 0 {
		t.Errorf("market order residual must not rest on the book, found %d bid levels", bidLevels)
	}
}

func TestAddRejectsUnsupportedFlag(t *testing.T) {
	orders := registry.NewOrderRegistry()
	book := New(testInstrument, testExchange, nil, orders)

	flag := id.Some(types.OrderFlagFillOrKill)
	taker, err := orders.NewLimit(testInstrument, testExchange, fixedpoint.FromInt(10), fixedpoint.FromInt(10), types.SideBuy, flag)
	if err != nil {
		t.Fatalf("NewLimit: %v", err)
	}
	if _, err := book.Add(taker.ID); err == nil {
		t.Fatal("expected ErrUnsupportedFlag, got nil")
	}
}

// TestStressRandomOrders submits 100,000 random LIMIT orders, alternating
// sides, with price and volume uniform over [10, 100], and checks the book
// is still invariant-consistent afterward. Mirrors the reference stress
// scenario; it logs elapsed time rather than asserting a fixed budget, since
// that budget is implementation- and hardware-specific.
func TestStressRandomOrders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in -short mode")
	}

	const count = 100_000
	orders := registry.NewOrderRegistry()
	book := New(testInstrument, testExchange, nil, orders)
	rng := rand.New(rand.NewSource(1))

	start := time.Now()
	for i := 0; i < count; i++ {
		side := types.SideBuy
		if i%2 == 0 {
			side = types.SideSell
		}
		price := int64(10 + rng.Intn(91))
		volume := int64(10 + rng.Intn(91))

		o, err := orders.NewLimit(testInstrument, testExchange, fixedpoint.FromInt(volume), fixedpoint.FromInt(price), side, id.None[types.OrderFlag]())
		if err != nil {
			t.Fatalf("NewLimit: %v", err)
		}
		if _, err := book.Add(o.ID); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	t.Logf("%d random orders in %s", count, time.Since(start))

	assertBookInvariants(t, book, orders)
}

// assertBookInvariants walks both ladders and checks the invariants spec.md
// §8 demands hold at quiescence: distinct prices per side, no crossed top-of-book, every resting order's fill state within
// bounds and consistent with the level it rests at, and level volume equal
// to the sum of its orders' remaining volume.
func assertBookInvariants(t *testing.T, book *LimitOrderBook, orders *registry.OrderRegistry) {
	t.Helper()

	bid, ask := book.GetLevel(0)
	if bid.Count > 0 && ask.Count > 0 && bid.Price.GTE(ask.Price) {
		t.Fatalf("book is crossed at quiescence: best bid %v >= best ask %v", bid.Price, ask.Price)
	}

	checkSide := func(side types.Side, lad *ladder) {
		seen := make(map[fixedpoint.Price]bool)
		lad.Each(func(lvl *level) bool {
			if seen[lvl.price] {
				t.Fatalf("duplicate price %v in %s ladder", lvl.price, side)
			}
			seen[lvl.price] = true

			total := fixedpoint.ZERO
			lvl.Each(func(orderID id.Id) {
				o, err := orders.Get(orderID)
				if err != nil {
					t.Fatalf("Get(%v): %v", orderID, err)
				}
				if o.Filled.Cmp(fixedpoint.ZERO) < 0 || o.Filled.Cmp(o.Volume) > 0 {
					t.Fatalf("order %v filled %v out of bounds [0, %v]", orderID, o.Filled, o.Volume)
				}
				if !o.Price.Equal(lvl.price) || o.Side != side {
					t.Fatalf("order %v rests at %s level %v but carries (price=%v, side=%v)", orderID, side, lvl.price, o.Price, o.Side)
				}
				total = total.Add(o.VolumeLeft())
			})
			if !total.Equal(book.volumeAtLevel(lvl)) {
				t.Fatalf("level %v volume %v does not match summed order volume %v", lvl.price, book.volumeAtLevel(lvl), total)
			}
			return true
		})
	}
	checkSide(types.SideBuy, book.buys)
	checkSide(types.SideSell, book.sells)
}
