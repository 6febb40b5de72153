package marketdata

import (
	"github.com/IBM/sarama"

	"matchd/domain/orderbook"
)

// KafkaSink mirrors every event line onto a Kafka topic for downstream
// consumers that need durability the UDP sink cannot offer (SPEC_FULL.md
// §4.5). Adapted from the teacher's jobs/broadcaster.Broadcaster: that
// type replayed a write-ahead log on a ticker and published each
// pending record; there is no WAL here, so this publishes directly, one
// message per event, using an async producer so a slow or unreachable
// broker never blocks the engine.
type KafkaSink struct {
	producer sarama.AsyncProducer
	topic    string
}

// NewKafkaSink connects to brokers and returns a sink that publishes to
// topic. Delivery failures are drained and dropped in the background;
// like the UDP sink, this is best-effort only.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	sink := &KafkaSink{producer: producer, topic: topic}
	go sink.drainErrors()
	return sink, nil
}

func (s *KafkaSink) drainErrors() {
	for range s.producer.Errors() {
		// best-effort: a dropped market-data message is not a
		// correctness issue, so failures are simply discarded.
	}
}

// Publish enqueues each event line as its own Kafka message. It never
// blocks: if the producer's internal channel is full (broker slow or
// unreachable), the message is dropped rather than stalling the
// engine's dispatch thread, which is not one of spec.md §5's allowed
// suspension points.
func (s *KafkaSink) Publish(events []orderbook.Event) {
	if s == nil {
		return
	}
	for _, ev := range events {
		msg := &sarama.ProducerMessage{
			Topic: s.topic,
			Value: sarama.StringEncoder(ev),
		}
		select {
		case s.producer.Input() <- msg:
		default:
		}
	}
}

// Close stops the producer.
func (s *KafkaSink) Close() error {
	if s == nil {
		return nil
	}
	return s.producer.Close()
}
