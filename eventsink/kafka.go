package eventsink

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"matchcore/domain/event"
	"matchcore/orderseq"

	"github.com/segmentio/kafka-go"
)

// KafkaSink publishes every event, keyed by its audit sequence number,
// to a Kafka topic. It wraps segmentio/kafka-go's Writer, a second,
// distinct Kafka client deliberately kept alongside sarama's use in
// intentfeed rather than consolidated onto one library.
type KafkaSink struct {
	w   *kafka.Writer
	seq *orderseq.Sequencer
}

func NewKafkaSink(brokers []string, topic string, seq *orderseq.Sequencer) *KafkaSink {
	return &KafkaSink{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
		seq: seq,
	}
}

func (s *KafkaSink) Publish(e event.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	seqNum := s.seq.Next()
	_ = s.w.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(strconv.FormatUint(seqNum, 10)),
		Value: payload,
	})
}

func (s *KafkaSink) Close() error {
	return s.w.Close()
}
