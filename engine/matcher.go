package engine

import (
	"matchcore/domain/event"
	"matchcore/domain/orderbook"
	"matchcore/orderpool"
)

// crosses reports whether a maker resting at makerPrice on the
// opposite side may be consumed by a taker on takerSide priced at
// takerPrice. unconditional is set for MARKET takers, for which the
// price condition is always satisfied.
func crosses(unconditional bool, takerSide orderbook.Side, takerPrice, makerPrice float64) bool {
	if unconditional {
		return true
	}
	if orderbook.PriceEqual(takerPrice, makerPrice) {
		return true
	}
	if takerSide == orderbook.Buy {
		return makerPrice < takerPrice
	}
	return makerPrice > takerPrice
}

// oppositeOf returns the side a taker on s draws liquidity from.
func oppositeOf(s orderbook.Side) orderbook.Side {
	if s == orderbook.Buy {
		return orderbook.Sell
	}
	return orderbook.Buy
}

// match walks the opposite side's best quotes against taker, which
// must already be resting in book on its own side, emitting events to
// sink in the exact order and with the maker/taker price asymmetry a
// trade always carries. unconditional selects MARKET semantics (price
// condition always true) versus LIMIT/STOP_LOSS semantics (price must
// cross).
//
// The duplicated TradeEvent in Case A (once at the maker's price for
// the maker's exhaustion, once at the taker's price for the taker's
// own completion) is not a bug; it is part of the observable contract
// and reproduced here verbatim.
func match(book *orderbook.Book, pool *orderpool.Pool, taker *orderbook.Order, unconditional bool, sink event.Sink) {
	opposite := oppositeOf(taker.Side)

	for taker.RemainingQuantity > 0 {
		maker := book.PeekBest(opposite)
		if maker == nil {
			return
		}
		if !crosses(unconditional, taker.Side, taker.Price, maker.Price) {
			return
		}

		if maker.RemainingQuantity <= taker.RemainingQuantity {
			// Case A: maker fully consumed.
			book.PopBest(opposite)
			makerQty := maker.RemainingQuantity
			makerPrice := maker.Price
			makerID := maker.ID
			pool.Put(maker)

			sink.Publish(event.OrderFullyFilled{OrderID: makerID})
			sink.Publish(event.Trade{Qty: makerQty, Price: makerPrice})

			taker.RemainingQuantity -= makerQty

			if taker.RemainingQuantity == 0 {
				sink.Publish(event.OrderFullyFilled{OrderID: taker.ID})
				sink.Publish(event.Trade{Qty: makerQty, Price: taker.Price})
				if removed, ok := book.RemoveByID(taker.ID); ok {
					pool.Put(removed)
				}
				return
			}
			sink.Publish(event.OrderPartiallyFilled{
				OrderID:      taker.ID,
				FilledQty:    makerQty,
				RemainingQty: taker.RemainingQuantity,
			})
			continue
		}

		// Case B: taker fully consumed, maker trimmed.
		tradeQty := taker.RemainingQuantity
		maker.RemainingQuantity -= tradeQty
		book.AdjustMakerFill(maker, tradeQty)

		sink.Publish(event.OrderPartiallyFilled{
			OrderID:      maker.ID,
			FilledQty:    tradeQty,
			RemainingQty: maker.RemainingQuantity,
		})
		sink.Publish(event.Trade{Qty: tradeQty, Price: taker.Price})

		taker.RemainingQuantity = 0
		if removed, ok := book.RemoveByID(taker.ID); ok {
			pool.Put(removed)
		}
		return
	}
}
