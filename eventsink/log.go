package eventsink

import (
	"matchcore/domain/event"

	"go.uber.org/zap"
)

// LogSink writes every event to a structured logger at info level.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log}
}

func (s *LogSink) Publish(e event.Event) {
	switch v := e.(type) {
	case event.CancelAck:
		s.log.Info("cancel ack", zap.Uint32("orderId", v.OrderID))
	case event.Trade:
		s.log.Info("trade", zap.Uint32("qty", v.Qty), zap.Float64("price", v.Price))
	case event.OrderFullyFilled:
		s.log.Info("order fully filled", zap.Uint32("orderId", v.OrderID))
	case event.OrderPartiallyFilled:
		s.log.Info("order partially filled",
			zap.Uint32("orderId", v.OrderID),
			zap.Uint32("filledQty", v.FilledQty),
			zap.Uint32("remainingQty", v.RemainingQty))
	default:
		s.log.Warn("unrecognised event kind", zap.Int("kind", int(e.Kind())))
	}
}
