// Package engine implements the single-consumer dispatch loop described
// in SPEC_FULL.md §4.3: pop a command, apply it to the book, render its
// events to the originating connection, and forward the same lines to
// the market-data sink. Grounded on the teacher's service.OrderService,
// which was the sole write entry point into its book; this version
// generalizes it to return trade/event data (Loki's version discarded
// it) and adds Cancel/Modify dispatch, which Loki's book never had.
package engine

import "matchd/domain/orderbook"

// Kind tags which book operation a Command requests.
type Kind int

const (
	New Kind = iota
	Cancel
	Modify
)

// ReplyWriter is the per-connection sink for reply lines. Implemented
// by net/ingress.Session; kept as an interface so the engine has no
// dependency on net or bufio.
type ReplyWriter interface {
	WriteReply(lines []orderbook.Event) error
}

// Command is one unit of engine input, built by an ingress session and
// pushed onto the shared queue (spec.md §3's CommandRecord).
type Command struct {
	Kind Kind

	// New
	Side       orderbook.Side
	Qty        int64
	PriceTicks int64
	ID         uint64

	// Cancel / Modify: id of the resting order to act on.
	TargetID uint64

	// Modify
	NewQty        int64
	NewPriceTicks int64
	NewID         uint64

	Reply ReplyWriter
}
