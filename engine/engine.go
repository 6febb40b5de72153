package engine

import (
	"time"

	"go.uber.org/zap"

	"matchd/domain/orderbook"
	"matchd/infra/metrics"
	"matchd/infra/queue"
)

// Sink receives every event line the book emits, in order, for
// best-effort fan-out to market-data subscribers. Implemented by
// net/marketdata.UDPSink and net/marketdata.KafkaSink; the engine never
// blocks waiting on a Sink (spec.md §4.5).
type Sink interface {
	Publish(events []orderbook.Event)
}

// noopSink is used when no market-data fan-out is configured.
type noopSink struct{}

func (noopSink) Publish([]orderbook.Event) {}

// Engine is the single-consumer loop described in SPEC_FULL.md §4.3. It
// is the only goroutine that ever touches the book.
type Engine struct {
	book    *orderbook.OrderBook
	queue   *queue.Queue[Command]
	sink    Sink
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewEngine builds an engine bound to book and cmdQueue. sink and log
// may be nil, in which case a no-op sink and a no-op logger are used.
func NewEngine(book *orderbook.OrderBook, cmdQueue *queue.Queue[Command], sink Sink, log *zap.Logger, m *metrics.Metrics) *Engine {
	if sink == nil {
		sink = noopSink{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{book: book, queue: cmdQueue, sink: sink, log: log, metrics: m}
}

// Run drains the queue until it reports drained+stopped. It is the body
// of the single engine goroutine: callers start it on a goroutine of its
// own and wait for it to return after stopping the queue.
func (e *Engine) Run() {
	e.log.Info("engine started")
	for {
		cmd, ok := e.queue.Pop()
		if !ok {
			break
		}
		if e.metrics != nil {
			e.metrics.QueueDepth.Set(float64(e.queue.Len()))
		}
		e.dispatch(cmd)
	}
	e.log.Info("engine stopped")
}

func (e *Engine) dispatch(cmd Command) {
	start := time.Now()
	var events []orderbook.Event

	switch cmd.Kind {
	case New:
		events = e.book.ProcessNew(cmd.Side, cmd.Qty, cmd.PriceTicks, cmd.ID)
	case Cancel:
		events = e.book.Cancel(cmd.TargetID)
	case Modify:
		events = e.book.Replace(cmd.TargetID, cmd.NewQty, cmd.NewPriceTicks, cmd.NewID)
	}

	if e.metrics != nil {
		e.metrics.DispatchLatency.Observe(time.Since(start).Seconds())
		e.recordOutcome(events)
	}

	if cmd.Reply != nil {
		if err := cmd.Reply.WriteReply(events); err != nil {
			e.log.Debug("reply write failed", zap.Error(err))
		}
	}
	e.sink.Publish(events)
}

func (e *Engine) recordOutcome(events []orderbook.Event) {
	for _, ev := range events {
		switch {
		case hasPrefix(string(ev), "TRADE "):
			e.metrics.TradesExecuted.Inc()
		case hasPrefix(string(ev), "ORDER_ADDED "):
			e.metrics.OrdersProcessed.Inc()
		case hasPrefix(string(ev), "ERROR "):
			e.metrics.CommandErrors.Inc()
		}
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
