package engine_test

import (
	"testing"

	"matchcore/domain/event"
	"matchcore/domain/intent"
	"matchcore/domain/orderbook"
	"matchcore/engine"
	"matchcore/eventsink"

	"github.com/stretchr/testify/require"
)

// TestCanonicalScenario feeds the reference intent sequence and
// asserts the exact, ordered event stream it produces, including the
// maker/taker trade-price asymmetry and the Case A double TradeEvent
// on maker exhaustion.
func TestCanonicalScenario(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	intents := []intent.Intent{
		intent.AddLimit{OrderID: 100000, Side: orderbook.Sell, Qty: 1, Price: 1075},
		intent.AddLimit{OrderID: 100001, Side: orderbook.Buy, Qty: 9, Price: 1000},
		intent.AddLimit{OrderID: 100002, Side: orderbook.Buy, Qty: 30, Price: 975},
		intent.AddLimit{OrderID: 100003, Side: orderbook.Sell, Qty: 10, Price: 1050},
		intent.AddLimit{OrderID: 100004, Side: orderbook.Buy, Qty: 10, Price: 950},
		intent.AddLimit{OrderID: 100005, Side: orderbook.Sell, Qty: 2, Price: 1025},
		intent.AddLimit{OrderID: 100006, Side: orderbook.Buy, Qty: 1, Price: 1000},
		intent.Cancel{OrderID: 100004},
		intent.AddLimit{OrderID: 100007, Side: orderbook.Sell, Qty: 5, Price: 1025},
		intent.AddLimit{OrderID: 100008, Side: orderbook.Buy, Qty: 3, Price: 1050},
		intent.Market{OrderID: 100009, Side: orderbook.Sell, Qty: 3},
		intent.Market{OrderID: 100010, Side: orderbook.Buy, Qty: 10},
		intent.StopLoss{OrderID: 100011, Side: orderbook.Sell, Qty: 30, StopPrice: 1000},
	}

	for _, in := range intents {
		require.NoError(t, eng.Process(in))
	}

	want := []event.Event{
		event.CancelAck{OrderID: 100004},

		event.OrderFullyFilled{OrderID: 100005},
		event.Trade{Qty: 2, Price: 1025.0},
		event.OrderPartiallyFilled{OrderID: 100008, FilledQty: 2, RemainingQty: 1},

		event.OrderPartiallyFilled{OrderID: 100007, FilledQty: 1, RemainingQty: 4},
		event.Trade{Qty: 1, Price: 1050.0},

		event.OrderPartiallyFilled{OrderID: 100002, FilledQty: 3, RemainingQty: 27},
		event.Trade{Qty: 3, Price: 975.0},

		event.OrderFullyFilled{OrderID: 100007},
		event.Trade{Qty: 4, Price: 1025.0},
		event.OrderPartiallyFilled{OrderID: 100010, FilledQty: 4, RemainingQty: 6},

		event.OrderPartiallyFilled{OrderID: 100003, FilledQty: 6, RemainingQty: 4},
		event.Trade{Qty: 6, Price: 1025.0},

		event.OrderFullyFilled{OrderID: 100002},
		event.Trade{Qty: 27, Price: 975.0},
		event.OrderPartiallyFilled{OrderID: 100011, FilledQty: 27, RemainingQty: 3},

		event.OrderPartiallyFilled{OrderID: 100001, FilledQty: 3, RemainingQty: 6},
		event.Trade{Qty: 3, Price: 975.0},
	}

	require.Equal(t, want, sink.Events())
}

// TestSingleAddLimitProducesNoEvents covers micro-scenario (a).
func TestSingleAddLimitProducesNoEvents(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.AddLimit{OrderID: 1, Side: orderbook.Buy, Qty: 5, Price: 100}))
	require.Empty(t, sink.Events())
}

// TestEqualPriceCrossesInArrivalOrder covers micro-scenario (b).
func TestEqualPriceCrossesInArrivalOrder(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.AddLimit{OrderID: 1, Side: orderbook.Sell, Qty: 5, Price: 100}))
	require.NoError(t, eng.Process(intent.AddLimit{OrderID: 2, Side: orderbook.Sell, Qty: 5, Price: 100}))
	require.NoError(t, eng.Process(intent.AddLimit{OrderID: 3, Side: orderbook.Buy, Qty: 6, Price: 100}))

	events := sink.Events()
	require.Equal(t, event.OrderFullyFilled{OrderID: 1}, events[0])
	require.Equal(t, event.Trade{Qty: 5, Price: 100}, events[1])
}

// TestMarketBuyAgainstEmptyAskRestsAtZero covers micro-scenario (c).
func TestMarketBuyAgainstEmptyAskRestsAtZero(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.Market{OrderID: 1, Side: orderbook.Buy, Qty: 10}))
	require.Empty(t, sink.Events())

	o, ok := eng.Book().GetByID(1)
	require.True(t, ok)
	require.Equal(t, float64(0), o.Price)
	require.Equal(t, uint32(10), o.RemainingQuantity)
}
