package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

// Metrics Collector for the matching core.
// Scoped to what a book actually produces: event counts, trade volume and
// price, and per-side depth. There is no position, funding, liquidation, or
// transport layer in this module, so those families are not carried here.

var (
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds order book metrics.
type Collector struct {
	EventsTotal    *prometheus.CounterVec
	TradesTotal    prometheus.Counter
	TradeVolume    prometheus.Counter
	TradePrice     prometheus.Histogram
	OrderbookDepth *prometheus.GaugeVec
}

// GetCollector returns the singleton metrics collector, constructing and
// registering it with the default registry on first use.
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
		collector.registerAll()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{}

	c.EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lob",
			Subsystem: "orderbook",
			Name:      "events_total",
			Help:      "Total number of events emitted by the matching core, by event type",
		},
		[]string{"event_type"},
	)

	c.TradesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lob",
			Subsystem: "orderbook",
			Name:      "trades_total",
			Help:      "Total number of trades produced by the crossing loop",
		},
	)

	c.TradeVolume = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lob",
			Subsystem: "orderbook",
			Name:      "trade_volume_total",
			Help:      "Cumulative volume traded",
		},
	)

	c.TradePrice = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lob",
			Subsystem: "orderbook",
			Name:      "trade_price",
			Help:      "Distribution of VWAP trade prices",
			Buckets:   prometheus.DefBuckets,
		},
	)

	c.OrderbookDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lob",
			Subsystem: "orderbook",
			Name:      "depth_levels",
			Help:      "Number of distinct price levels resting on one side of the book",
		},
		[]string{"side"},
	)

	return c
}

func (c *Collector) registerAll() {
	prometheus.MustRegister(c.EventsTotal)
	prometheus.MustRegister(c.TradesTotal)
	prometheus.MustRegister(c.TradeVolume)
	prometheus.MustRegister(c.TradePrice)
	prometheus.MustRegister(c.OrderbookDepth)
}

// IncEvent implements engine.MetricsSink.
func (c *Collector) IncEvent(t types.EventType) {
	c.EventsTotal.WithLabelValues(t.String()).Inc()
}

// ObserveTrade implements engine.MetricsSink.
func (c *Collector) ObserveTrade(volume, price fixedpoint.Price) {
	c.TradesTotal.Inc()
	c.TradeVolume.Add(volume.ToFloat())
	c.TradePrice.Observe(price.ToFloat())
}

// ObserveDepth implements engine.MetricsSink.
func (c *Collector) ObserveDepth(side types.Side, levels int) {
	c.OrderbookDepth.WithLabelValues(side.String()).Set(float64(levels))
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures elapsed wall time for a latency observation.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds.
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
