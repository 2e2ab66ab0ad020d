package orderbook

// Book is the price-time index: two side-specific red-black trees of
// PriceLevels plus one identity map from orderId to the resting
// Order. The record reachable via the identity map is always the same
// object reachable through the tree; the two structures are never
// allowed to diverge.
//
// "Best" on both sides resolves to the lowest resting price, ties
// broken by lowest orderId. For the sell side this is the standard
// rule. For the buy side this deliberately does NOT give priority to
// the highest bidder: the reference matching behavior this module
// reproduces never gave the buy side a comparator favoring the highest
// bidder, so the cheapest resting bid is the one matched, quoted as
// the reference price, and listed first, and this book follows that
// rule on both sides rather than the higher-price-first rule a fresh
// design would use.
type Book struct {
	bids *RBTree
	asks *RBTree

	byID map[uint32]*Order
}

func NewBook() *Book {
	return &Book{
		bids: NewRBTree(),
		asks: NewRBTree(),
		byID: make(map[uint32]*Order),
	}
}

func (b *Book) sideTree(s Side) *RBTree {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// Insert adds o to the appropriate side and to the identity map.
// Precondition: o.ID is not already present; callers must check
// GetByID first if duplicate insertion is a possibility they need to
// distinguish from a programmer error.
func (b *Book) Insert(o *Order) {
	lvl := b.sideTree(o.Side).GetOrCreate(o.Price)
	lvl.Enqueue(o)
	b.byID[o.ID] = o
}

// PeekBest returns the front resting order of the best price level on
// side, without removing it.
func (b *Book) PeekBest(s Side) *Order {
	lvl := b.bestLevel(s)
	if lvl == nil {
		return nil
	}
	return lvl.Front()
}

func (b *Book) bestLevel(s Side) *PriceLevel {
	return b.sideTree(s).BestMin()
}

// PopBest removes and returns the front resting order of the best
// price level on side. It also erases the order from the identity map
// and, if the level is now empty, removes the level from the tree.
func (b *Book) PopBest(s Side) *Order {
	tree := b.sideTree(s)
	lvl := b.bestLevel(s)
	if lvl == nil {
		return nil
	}
	o := lvl.Front()
	lvl.Remove(o)
	delete(b.byID, o.ID)
	if lvl.Empty() {
		tree.Delete(lvl.Price)
	}
	return o
}

// GetByID looks up a resting order without removing it.
func (b *Book) GetByID(id uint32) (*Order, bool) {
	o, ok := b.byID[id]
	return o, ok
}

// RemoveByID removes an order from both the identity map and its
// side's tree, returning the removed record. The second return value
// reports whether a removal occurred; absence is not an error (Cancel
// of an unknown orderId is a normal-path outcome).
func (b *Book) RemoveByID(id uint32) (*Order, bool) {
	o, ok := b.byID[id]
	if !ok {
		return nil, false
	}
	tree := b.sideTree(o.Side)
	lvl := tree.Find(o.Price)
	if lvl != nil {
		lvl.Remove(o)
		if lvl.Empty() {
			tree.Delete(lvl.Price)
		}
	}
	delete(b.byID, id)
	return o, true
}

// AdjustMakerFill records a maker's partial fill: its remaining
// quantity has already been decremented by the caller (the matcher),
// this only keeps the level's running total in sync.
func (b *Book) AdjustMakerFill(o *Order, tradedQty uint32) {
	lvl := b.sideTree(o.Side).Find(o.Price)
	if lvl != nil {
		lvl.AdjustQuantity(-int64(tradedQty))
	}
}

// BestPrice returns the best resting price on side and whether the
// side is non-empty. Used for Market/StopLoss reference-price lookup.
func (b *Book) BestPrice(s Side) (float64, bool) {
	lvl := b.bestLevel(s)
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// WalkSide visits every resting order on side, best-first (ascending
// price on both sides, per the Book doc comment above), level by
// level and FIFO within a level. It is the inspector's read path and
// must never mutate the book.
func (b *Book) WalkSide(s Side, fn func(*Order)) {
	b.sideTree(s).WalkAsc(func(lvl *PriceLevel) {
		for o := lvl.Front(); o != nil; o = o.next {
			fn(o)
		}
	})
}

// Len returns the number of resting orders across both sides.
func (b *Book) Len() int {
	return len(b.byID)
}

// SideDepth returns the number of resting orders on side.
func (b *Book) SideDepth(s Side) int {
	depth := 0
	b.WalkSide(s, func(*Order) { depth++ })
	return depth
}
