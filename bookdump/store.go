// Package bookdump implements the inspector's periodic,
// non-authoritative snapshot channel. It is strictly write-only:
// nothing in this module ever reads a dump back to reconstruct engine
// state, since the core carries no recovery or replay semantics across
// process restarts.
package bookdump

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"matchcore/domain/orderbook"

	"github.com/cockroachdb/pebble"
)

// Entry is one resting order as captured in a dump.
type Entry struct {
	OrderID           uint32  `json:"orderId"`
	Side              string  `json:"side"`
	Kind              string  `json:"kind"`
	Price             float64 `json:"price"`
	RemainingQuantity uint32  `json:"remainingQuantity"`
}

// Snapshot is one full-book capture, keyed by the audit sequence
// number active when it was taken.
type Snapshot struct {
	Sequence uint64  `json:"sequence"`
	Bids     []Entry `json:"bids"`
	Asks     []Entry `json:"asks"`
}

// Store persists Snapshots to an embedded pebble KV store, one key
// per sequence number. It is a debug aid, not part of the engine's
// observable contract.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if absent) a pebble store rooted at dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("bookdump: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Write captures book's current state under sequence and persists it.
func (s *Store) Write(sequence uint64, book *orderbook.Book) error {
	snap := Snapshot{Sequence: sequence}
	book.WalkSide(orderbook.Buy, func(o *orderbook.Order) {
		snap.Bids = append(snap.Bids, toEntry(o))
	})
	book.WalkSide(orderbook.Sell, func(o *orderbook.Order) {
		snap.Asks = append(snap.Asks, toEntry(o))
	})

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("bookdump: marshal snapshot %d: %w", sequence, err)
	}
	return s.db.Set(sequenceKey(sequence), payload, pebble.Sync)
}

func toEntry(o *orderbook.Order) Entry {
	return Entry{
		OrderID:           o.ID,
		Side:              o.Side.String(),
		Kind:              o.Kind.String(),
		Price:             o.Price,
		RemainingQuantity: o.RemainingQuantity,
	}
}

func sequenceKey(sequence uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)
	return key
}
