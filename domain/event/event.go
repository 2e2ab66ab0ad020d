// Package event defines the engine's outbound message types.
package event

type Kind int

const (
	KindCancelAck Kind = iota
	KindTrade
	KindOrderFullyFilled
	KindOrderPartiallyFilled
)

// Event is the closed interface every outbound message satisfies.
type Event interface {
	Kind() Kind
}

// CancelAck reports a successful cancel.
type CancelAck struct {
	OrderID uint32
}

func (CancelAck) Kind() Kind { return KindCancelAck }

// Trade reports a fill at the stated price and quantity. Which side's
// price is reported is part of the matcher's contract and is not
// encoded in the event itself — it is whatever price the matcher
// passed at emission time.
type Trade struct {
	Qty   uint32
	Price float64
}

func (Trade) Kind() Kind { return KindTrade }

// OrderFullyFilled reports that an order's remaining quantity reached
// zero.
type OrderFullyFilled struct {
	OrderID uint32
}

func (OrderFullyFilled) Kind() Kind { return KindOrderFullyFilled }

// OrderPartiallyFilled reports that an order absorbed FilledQty and
// has RemainingQty left.
type OrderPartiallyFilled struct {
	OrderID      uint32
	FilledQty    uint32
	RemainingQty uint32
}

func (OrderPartiallyFilled) Kind() Kind { return KindOrderPartiallyFilled }
