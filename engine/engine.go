// Package engine wires the price-time index, the matcher, and the
// intent dispatcher behind a single public entry point: accept one
// intent, fully process it, return. There are no asynchronous
// completions — when Process returns, every event the intent is going
// to cause has already reached the sink and every book mutation has
// been committed.
package engine

import (
	"matchcore/domain/event"
	"matchcore/domain/intent"
	"matchcore/domain/orderbook"
	"matchcore/errs"
	"matchcore/orderpool"

	"go.uber.org/zap"
)

// Metrics is the narrow slice of instrumentation the engine drives.
// A no-op implementation is used when the caller doesn't wire real
// Prometheus collectors (see the metrics package).
type Metrics interface {
	IntentProcessed(kind intent.Kind)
	TradeExecuted(qty uint32)
	BookDepth(bids, asks int)
}

type noopMetrics struct{}

func (noopMetrics) IntentProcessed(intent.Kind) {}
func (noopMetrics) TradeExecuted(uint32)        {}
func (noopMetrics) BookDepth(int, int)          {}

// Engine is the single-threaded matching engine facade.
type Engine struct {
	book *orderbook.Book
	pool *orderpool.Pool
	sink event.Sink
	log  *zap.Logger
	met  Metrics

	inspector *Inspector
}

// Option configures an Engine at construction time.
type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithMetrics(m Metrics) Option {
	return func(e *Engine) { e.met = m }
}

func WithInspector(i *Inspector) Option {
	return func(e *Engine) { e.inspector = i }
}

// New constructs an Engine over a fresh, empty book.
func New(sink event.Sink, opts ...Option) *Engine {
	e := &Engine{
		book: orderbook.NewBook(),
		pool: orderpool.New(),
		sink: sink,
		log:  zap.NewNop(),
		met:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Book exposes the underlying Price-Time Index for read-only
// inspection (tests, the Book Inspector). Callers must not mutate it.
func (e *Engine) Book() *orderbook.Book {
	return e.book
}

// Process dispatches intent to the matching logic for its kind, then
// triggers the debug book dump. It returns a non-nil error only for
// internal invariant violations; every other outcome, including a
// silently-dropped cancel or an unrecognised intent kind, returns nil.
func (e *Engine) Process(in intent.Intent) error {
	var err error
	switch v := in.(type) {
	case intent.AddLimit:
		err = e.dispatchAddLimit(v)
	case intent.Cancel:
		err = e.dispatchCancel(v)
	case intent.Market:
		err = e.dispatchMarket(v)
	case intent.StopLoss:
		err = e.dispatchStopLoss(v)
	default:
		e.log.Warn("unknown intent kind, ignoring", zap.Any("intent", in))
		return nil
	}
	if err != nil {
		e.log.Error("internal invariant violation", zap.Error(err))
		return err
	}

	e.met.IntentProcessed(in.Kind())
	e.met.BookDepth(e.book.SideDepth(orderbook.Buy), e.book.SideDepth(orderbook.Sell))

	if e.inspector != nil {
		e.inspector.OnProcessed(e.book)
	}
	return nil
}

func dupOrderErr(id uint32) error {
	return errs.DuplicateOrderID(id)
}
