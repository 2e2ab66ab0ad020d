package engine

import (
	"matchcore/domain/event"
	"matchcore/domain/intent"
	"matchcore/domain/orderbook"
)

// dispatchAddLimit inserts a resting limit order and attempts to match
// it immediately against the opposite side.
func (e *Engine) dispatchAddLimit(in intent.AddLimit) error {
	if _, exists := e.book.GetByID(in.OrderID); exists {
		return dupOrderErr(in.OrderID)
	}
	o := e.pool.Get()
	o.ID = in.OrderID
	o.Side = in.Side
	o.Kind = orderbook.Limit
	o.Price = in.Price
	o.RemainingQuantity = in.Qty

	e.book.Insert(o)
	match(e.book, e.pool, o, false, e.sink)
	return nil
}

// dispatchCancel removes a resting order by orderId. A cancel for an
// orderId that isn't resting is silently ignored: no event, no error.
func (e *Engine) dispatchCancel(in intent.Cancel) error {
	removed, ok := e.book.RemoveByID(in.OrderID)
	if !ok {
		return nil
	}
	e.pool.Put(removed)
	e.sink.Publish(event.CancelAck{OrderID: in.OrderID})
	return nil
}

// dispatchMarket inserts a taker priced at the opposite side's current
// best (0 if that side is empty) and matches unconditionally. The
// reference price is recorded on the order but never restricts
// matching; if the opposite side runs dry while quantity remains, the
// residual rests on the taker's own side at that reference price.
func (e *Engine) dispatchMarket(in intent.Market) error {
	if _, exists := e.book.GetByID(in.OrderID); exists {
		return dupOrderErr(in.OrderID)
	}
	refPrice, _ := e.book.BestPrice(oppositeOf(in.Side))

	o := e.pool.Get()
	o.ID = in.OrderID
	o.Side = in.Side
	o.Kind = orderbook.Market
	o.Price = refPrice
	o.RemainingQuantity = in.Qty

	e.book.Insert(o)
	match(e.book, e.pool, o, true, e.sink)
	return nil
}

// dispatchStopLoss checks the stop price against the opposite side's
// current best. On trigger it is redispatched as a Market intent with
// the same fields; otherwise it rests on the book like a LIMIT order
// priced at the stop price.
func (e *Engine) dispatchStopLoss(in intent.StopLoss) error {
	refPrice, _ := e.book.BestPrice(oppositeOf(in.Side))

	var triggered bool
	switch in.Side {
	case orderbook.Buy:
		triggered = in.StopPrice <= refPrice || orderbook.PriceEqual(in.StopPrice, refPrice)
	case orderbook.Sell:
		triggered = in.StopPrice >= refPrice || orderbook.PriceEqual(in.StopPrice, refPrice)
	}

	if triggered {
		return e.dispatchMarket(intent.Market{OrderID: in.OrderID, Side: in.Side, Qty: in.Qty})
	}

	if _, exists := e.book.GetByID(in.OrderID); exists {
		return dupOrderErr(in.OrderID)
	}
	o := e.pool.Get()
	o.ID = in.OrderID
	o.Side = in.Side
	o.Kind = orderbook.StopLoss
	o.Price = in.StopPrice
	o.RemainingQuantity = in.Qty

	e.book.Insert(o)
	match(e.book, e.pool, o, false, e.sink)
	return nil
}
