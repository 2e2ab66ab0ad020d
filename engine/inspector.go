package engine

import (
	"matchcore/bookdump"
	"matchcore/domain/orderbook"
	"matchcore/orderseq"

	"go.uber.org/zap"
)

// DefaultDumpEvery is the default cadence, in Process calls, of the
// periodic pebble-backed book dump.
const DefaultDumpEvery = 100

// Inspector logs and periodically persists a debug dump of both sides
// in priority order after every Process call. It is observable but
// non-semantic — nothing it produces is ever read back into the
// engine.
type Inspector struct {
	log       *zap.Logger
	store     *bookdump.Store
	seq       *orderseq.Sequencer
	dumpEvery int
	calls     uint64
}

// NewInspector builds an Inspector. store may be nil, in which case
// only the per-call log dump runs. dumpEvery <= 0 selects
// DefaultDumpEvery.
func NewInspector(log *zap.Logger, store *bookdump.Store, seq *orderseq.Sequencer, dumpEvery int) *Inspector {
	if dumpEvery <= 0 {
		dumpEvery = DefaultDumpEvery
	}
	return &Inspector{log: log, store: store, seq: seq, dumpEvery: dumpEvery}
}

// OnProcessed is invoked by the engine facade after every intent is
// fully processed and committed.
func (i *Inspector) OnProcessed(book *orderbook.Book) {
	i.calls++
	i.logDump(book)

	if i.store == nil || i.calls%uint64(i.dumpEvery) != 0 {
		return
	}
	seq := i.seq.Current()
	if err := i.store.Write(seq, book); err != nil {
		i.log.Warn("book dump failed", zap.Error(err), zap.Uint64("sequence", seq))
	}
}

func (i *Inspector) logDump(book *orderbook.Book) {
	if ce := i.log.Check(zap.DebugLevel, "book state"); ce != nil {
		bids := dumpSide(book, orderbook.Buy)
		asks := dumpSide(book, orderbook.Sell)
		ce.Write(zap.Any("bids", bids), zap.Any("asks", asks))
	}
}

type levelDump struct {
	OrderID           uint32
	Price             float64
	RemainingQuantity uint32
}

func dumpSide(book *orderbook.Book, side orderbook.Side) []levelDump {
	var out []levelDump
	book.WalkSide(side, func(o *orderbook.Order) {
		out = append(out, levelDump{OrderID: o.ID, Price: o.Price, RemainingQuantity: o.RemainingQuantity})
	})
	return out
}
