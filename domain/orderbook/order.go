// Package orderbook implements the two-sided price-time priority book:
// the resting order record, the per-price FIFO queue, the red-black
// tree that indexes price levels, and the identity-indexed book that
// ties the two together.
package orderbook

// Side is which side of the book an order rests on.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Kind is the resting order's kind.
type Kind int

const (
	Limit Kind = iota
	Market
	StopLoss
)

func (k Kind) String() string {
	switch k {
	case Limit:
		return "LIMIT"
	case Market:
		return "MARKET"
	case StopLoss:
		return "STOP_LOSS"
	default:
		return "UNKNOWN"
	}
}

// PriceTolerance is the absolute tolerance under which two prices are
// considered equal.
const PriceTolerance = 1e-8

// PriceEqual reports whether a and b are equal within PriceTolerance.
func PriceEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= PriceTolerance
}

// Order is the mutable resting-order entity.
//
// Price for a MARKET order is the reference price recorded at
// acceptance time; it is informational only and is never used to
// restrict matching. Price for an untriggered STOP_LOSS is the stop
// price, and it rests on the book exactly like a LIMIT at that price.
type Order struct {
	ID                uint32
	Side              Side
	Kind              Kind
	Price             float64
	RemainingQuantity uint32

	// next/prev thread this order into its PriceLevel's FIFO queue.
	next *Order
	prev *Order
}

// Reset clears an Order back to its zero value so it is safe to hand
// back to a pool and reuse.
func (o *Order) Reset() {
	*o = Order{}
}
