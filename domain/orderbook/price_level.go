package orderbook

// PriceLevel is a FIFO queue of resting orders at a single price.
// Arrival order within a level is the time-priority tiebreak: ties at
// equal price are broken by arrival, i.e. by ascending orderId under
// the caller's monotonically increasing IDs.
type PriceLevel struct {
	Price float64

	head *Order
	tail *Order

	TotalQuantity uint64
	OrderCount    int
}

// Enqueue appends o to the tail of the level.
func (p *PriceLevel) Enqueue(o *Order) {
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	p.TotalQuantity += uint64(o.RemainingQuantity)
	p.OrderCount++
}

// Remove splices o out of the level's queue. o must currently be a
// member of this level.
func (p *PriceLevel) Remove(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	p.TotalQuantity -= uint64(o.RemainingQuantity)
	p.OrderCount--
}

// Front returns the earliest-arrived order in the level, or nil.
func (p *PriceLevel) Front() *Order {
	return p.head
}

// Empty reports whether the level currently holds no orders.
func (p *PriceLevel) Empty() bool {
	return p.head == nil
}

// AdjustQuantity updates the level's running total after an order's
// remaining quantity changes without the order leaving the level (a
// maker's partial fill).
func (p *PriceLevel) AdjustQuantity(delta int64) {
	if delta < 0 {
		p.TotalQuantity -= uint64(-delta)
	} else {
		p.TotalQuantity += uint64(delta)
	}
}
