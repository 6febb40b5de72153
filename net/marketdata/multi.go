package marketdata

import "matchd/domain/orderbook"

// MultiSink fans events out to every configured sink. Used by
// cmd/matchd to combine the spec-mandated UDPSink with the optional
// KafkaSink.
type MultiSink struct {
	sinks []interface{ Publish([]orderbook.Event) }
}

// NewMultiSink builds a MultiSink over the given non-nil sinks.
func NewMultiSink(sinks ...interface{ Publish([]orderbook.Event) }) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Publish(events []orderbook.Event) {
	for _, s := range m.sinks {
		s.Publish(events)
	}
}
