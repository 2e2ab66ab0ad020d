// Package metrics wires the engine's observable counters to
// Prometheus via github.com/prometheus/client_golang.
package metrics

import (
	"matchcore/domain/event"
	"matchcore/domain/intent"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors implements engine.Metrics against real Prometheus
// collectors, registered on construction.
type Collectors struct {
	intentsProcessed *prometheus.CounterVec
	tradesExecuted   prometheus.Counter
	tradedQuantity   prometheus.Counter
	bidDepth         prometheus.Gauge
	askDepth         prometheus.Gauge
}

// New constructs and registers the engine's collectors against reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		intentsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchcore",
			Name:      "intents_processed_total",
			Help:      "Intents processed by the engine, by kind.",
		}, []string{"kind"}),
		tradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore",
			Name:      "trades_executed_total",
			Help:      "TradeEvents emitted by the matcher.",
		}),
		tradedQuantity: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore",
			Name:      "traded_quantity_total",
			Help:      "Cumulative quantity across all TradeEvents.",
		}),
		bidDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matchcore",
			Name:      "bid_depth",
			Help:      "Number of resting orders on the buy side.",
		}),
		askDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matchcore",
			Name:      "ask_depth",
			Help:      "Number of resting orders on the sell side.",
		}),
	}
	reg.MustRegister(c.intentsProcessed, c.tradesExecuted, c.tradedQuantity, c.bidDepth, c.askDepth)
	return c
}

func (c *Collectors) IntentProcessed(kind intent.Kind) {
	c.intentsProcessed.WithLabelValues(kindLabel(kind)).Inc()
}

func (c *Collectors) TradeExecuted(qty uint32) {
	c.tradesExecuted.Inc()
	c.tradedQuantity.Add(float64(qty))
}

func (c *Collectors) BookDepth(bids, asks int) {
	c.bidDepth.Set(float64(bids))
	c.askDepth.Set(float64(asks))
}

// InstrumentedSink wraps an event.Sink to count TradeEvents as they
// pass through, without the engine's dispatch/matcher code needing to
// know Prometheus exists.
type InstrumentedSink struct {
	Inner      event.Sink
	Collectors *Collectors
}

func (s InstrumentedSink) Publish(e event.Event) {
	if t, ok := e.(event.Trade); ok {
		s.Collectors.TradeExecuted(t.Qty)
	}
	s.Inner.Publish(e)
}

func kindLabel(k intent.Kind) string {
	switch k {
	case intent.KindAddLimit:
		return "add_limit"
	case intent.KindCancel:
		return "cancel"
	case intent.KindMarket:
		return "market"
	case intent.KindStopLoss:
		return "stop_loss"
	default:
		return "unknown"
	}
}
