package intentfeed

import (
	"context"
	"fmt"

	"matchcore/domain/intent"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// KafkaConsumer decodes the same line format as LineDecoder but reads
// it from a Kafka topic instead of a local stream, one line per
// message value. Its consumer-group configuration mirrors the
// producer-side config style the wider codebase uses for sarama
// (bounded retry, explicit ack policy) even though a consumer has no
// symmetric "required acks" knob of its own.
type KafkaConsumer struct {
	decoder *LineDecoder
	group   sarama.ConsumerGroup
	topic   string
	log     *zap.Logger
}

// NewKafkaConsumer joins groupID against brokers and prepares to
// consume topic.
func NewKafkaConsumer(brokers []string, groupID, topic string, decoder *LineDecoder, log *zap.Logger) (*KafkaConsumer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := sarama.NewConfig()
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Metadata.Retry.Max = 5

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("intentfeed: join consumer group %s: %w", groupID, err)
	}
	return &KafkaConsumer{decoder: decoder, group: group, topic: topic, log: log}, nil
}

// Run consumes until ctx is cancelled, invoking fn for every intent
// decoded from a message value.
func (c *KafkaConsumer) Run(ctx context.Context, fn func(intent.Intent)) error {
	handler := &consumerHandler{decoder: c.decoder, fn: fn, log: c.log}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("intentfeed: consume %s: %w", c.topic, err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.group.Close()
}

type consumerHandler struct {
	decoder *LineDecoder
	fn      func(intent.Intent)
	log     *zap.Logger
}

func (h *consumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if in, decoded := h.decoder.DecodeLine(string(msg.Value)); decoded {
				h.fn(in)
			}
			sess.MarkMessage(msg, "")
		case <-sess.Context().Done():
			return nil
		}
	}
}
