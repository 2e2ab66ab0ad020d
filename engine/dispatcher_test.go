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

func TestDuplicateOrderIDReturnsError(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.AddLimit{OrderID: 1, Side: orderbook.Buy, Qty: 5, Price: 100}))
	err := eng.Process(intent.AddLimit{OrderID: 1, Side: orderbook.Sell, Qty: 5, Price: 100})
	require.Error(t, err)
}

func TestCancelOfUnknownOrderIsSilentlyIgnored(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.Cancel{OrderID: 999}))
	require.Empty(t, sink.Events())
}

func TestCancelEmitsAck(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.AddLimit{OrderID: 1, Side: orderbook.Buy, Qty: 5, Price: 100}))
	require.NoError(t, eng.Process(intent.Cancel{OrderID: 1}))

	require.Equal(t, []event.Event{event.CancelAck{OrderID: 1}}, sink.Events())
	_, ok := eng.Book().GetByID(1)
	require.False(t, ok)
}

// TestStopLossTriggersImmediatelyWhenAlreadyMarketable covers a resting
// bid at 100 and a StopLoss Sell whose stop price is already at or
// above that bid: it must fire as a Market order on arrival.
func TestStopLossTriggersImmediatelyWhenAlreadyMarketable(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.AddLimit{OrderID: 1, Side: orderbook.Buy, Qty: 10, Price: 100}))
	require.NoError(t, eng.Process(intent.StopLoss{OrderID: 2, Side: orderbook.Sell, Qty: 5, StopPrice: 100}))

	events := sink.Events()
	require.NotEmpty(t, events)
	require.Contains(t, events, event.Trade{Qty: 5, Price: 100})
}

// TestStopLossRestsWhenNotTriggered covers the branch where the stop
// price has not yet been reached: a Buy stop at 100 against an empty
// ask side (reference price 0) does not trigger, so the order rests on
// the book like a LIMIT order priced at the stop price.
func TestStopLossRestsWhenNotTriggered(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.StopLoss{OrderID: 1, Side: orderbook.Buy, Qty: 5, StopPrice: 100}))
	require.Empty(t, sink.Events())

	o, ok := eng.Book().GetByID(1)
	require.True(t, ok)
	require.Equal(t, orderbook.StopLoss, o.Kind)
	require.Equal(t, float64(100), o.Price)
}

func TestMarketRestsOnOwnSideAtReferencePriceWhenOppositeExhausted(t *testing.T) {
	sink := eventsink.NewMemorySink()
	eng := engine.New(sink)

	require.NoError(t, eng.Process(intent.AddLimit{OrderID: 1, Side: orderbook.Sell, Qty: 3, Price: 50}))
	require.NoError(t, eng.Process(intent.Market{OrderID: 2, Side: orderbook.Buy, Qty: 10}))

	o, ok := eng.Book().GetByID(2)
	require.True(t, ok)
	require.Equal(t, float64(50), o.Price)
	require.Equal(t, uint32(7), o.RemainingQuantity)
}
