package orderbook

import "fmt"

// Event is a single line the book emits as a result of a command. The
// TCP reply stream and the market-data sink both consume the same
// rendered lines (see spec §4.5, §6): the book only ever produces text,
// never a structured type that a transport has to re-encode.
type Event string

// Formatter converts ticks to display text. Injected at book
// construction so the book stays numeric-only; see
// domain/orderbook/tick.go for the concrete decimal-based
// implementation, which also provides Parse for the text-to-ticks
// direction, and SPEC_FULL.md §4.1.
type Formatter interface {
	Format(ticks int64) string
}

func fmtTrade(qty int64, f Formatter, price int64, makerID uint64) Event {
	return Event(fmt.Sprintf("TRADE %d @ %s against id %d", qty, f.Format(price), makerID))
}

func fmtOrderAdded(side Side, qty int64, f Formatter, price int64, id uint64) Event {
	return Event(fmt.Sprintf("ORDER_ADDED %s %d @ %s id %d", side, qty, f.Format(price), id))
}

func fmtCanceled(id uint64) Event {
	return Event(fmt.Sprintf("CANCELED id %d", id))
}

func fmtReplaced(oldID, newID uint64) Event {
	return Event(fmt.Sprintf("REPLACED %d -> %d", oldID, newID))
}

func fmtBestBid(f Formatter, price, qty int64) Event {
	return Event(fmt.Sprintf("BEST_BID %s x %d", f.Format(price), qty))
}

func fmtBestAsk(f Formatter, price, qty int64) Event {
	return Event(fmt.Sprintf("BEST_ASK %s x %d", f.Format(price), qty))
}

func fmtError(msg string) Event {
	return Event("ERROR " + msg)
}

// msgInvalidOrder and friends are the fixed error texts spec.md §4.1
// and §7 require verbatim.
const (
	msgInvalidOrder    = "Invalid order"
	msgInvalidReplace  = "Invalid replace parameters"
	msgUnknownOrderFmt = "Unknown order id %d"
)

func fmtUnknownOrder(id uint64) Event {
	return Event(fmt.Sprintf("ERROR "+msgUnknownOrderFmt, id))
}
