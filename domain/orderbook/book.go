// Package orderbook implements a single-symbol, price-time priority
// limit order book. It is owned exclusively by one goroutine (the
// engine loop); see engine/engine.go. No method here takes a lock,
// because none is needed: the single-writer discipline in SPEC_FULL.md
// §5 is enforced by construction, not by mutual exclusion.
package orderbook

import "matchd/infra/pool"

// indexEntry records where a resting order lives, so cancel/replace can
// find it in O(1) instead of scanning both sides.
type indexEntry struct {
	side  Side
	price int64
}

// OrderBook is the price-time priority matching structure described in
// SPEC_FULL.md §4.1. It replaces the teacher's red-black tree per-side
// index (both draft copies in the retrieval pack left insert-fixup
// unimplemented) with priceIndex, a sorted slice of levels.
type OrderBook struct {
	bids   *priceIndex
	asks   *priceIndex
	byID   map[uint64]indexEntry
	fmt    Formatter
	orders *pool.Pool[Order]
}

// New constructs an empty book using f to render ticks in events.
func New(f Formatter) *OrderBook {
	return &OrderBook{
		bids:   newBidIndex(),
		asks:   newAskIndex(),
		byID:   make(map[uint64]indexEntry),
		fmt:    f,
		orders: pool.New(func() *Order { return &Order{} }),
	}
}

func (b *OrderBook) sideIndex(s Side) *priceIndex {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) oppositeIndex(s Side) *priceIndex {
	if s == Buy {
		return b.asks
	}
	return b.bids
}

// crosses reports whether limit still crosses the opposite side's best
// price for an incoming order of side s.
func crosses(s Side, limit, oppositeBest int64) bool {
	if s == Buy {
		return oppositeBest <= limit
	}
	return oppositeBest >= limit
}

// ProcessNew implements spec.md §4.1's New matching algorithm.
func (b *OrderBook) ProcessNew(side Side, qty, priceTicks int64, id uint64) []Event {
	if qty <= 0 || priceTicks <= 0 {
		return []Event{fmtError(msgInvalidOrder)}
	}
	if _, exists := b.byID[id]; exists {
		return []Event{fmtError(msgInvalidOrder)}
	}
	events := b.processNewCore(side, qty, priceTicks, id)
	return append(events, b.snapshot()...)
}

// processNewCore runs the matching loop and residual-add without
// appending a trailing snapshot, so Replace can compose a single
// snapshot after cancel+add instead of two.
func (b *OrderBook) processNewCore(side Side, qty, priceTicks int64, id uint64) []Event {
	var events []Event
	remaining := qty
	opp := b.oppositeIndex(side)

	for remaining > 0 {
		top := opp.best()
		if top == nil || !crosses(side, priceTicks, top.Price) {
			break
		}
		head := top.Head()
		if head == nil {
			// Invariant 2 forbids this, but guard rather than loop forever.
			break
		}
		tradeQty := remaining
		if head.Qty < tradeQty {
			tradeQty = head.Qty
		}
		events = append(events, fmtTrade(tradeQty, b.fmt, top.Price, head.ID))
		remaining -= tradeQty
		head.Qty -= tradeQty
		top.ReduceQty(tradeQty)

		if head.Qty == 0 {
			top.Remove(head)
			delete(b.byID, head.ID)
			b.orders.Put(head)
		}
		if top.Empty() {
			opp.removeIfEmpty(top.Price)
		}
	}

	if remaining > 0 {
		lvl := b.sideIndex(side).upsert(priceTicks)
		o := b.orders.Get()
		*o = Order{ID: id, Side: side, Price: priceTicks, Qty: remaining}
		lvl.Enqueue(o)
		b.byID[id] = indexEntry{side: side, price: priceTicks}
		events = append(events, fmtOrderAdded(side, remaining, b.fmt, priceTicks, id))
	}

	return events
}

// Cancel implements spec.md §4.1's cancel algorithm.
func (b *OrderBook) Cancel(id uint64) []Event {
	events := b.cancelCore(id)
	return append(events, b.snapshot()...)
}

// cancelCore removes id without appending a trailing snapshot.
func (b *OrderBook) cancelCore(id uint64) []Event {
	entry, ok := b.byID[id]
	if !ok {
		return []Event{fmtUnknownOrder(id)}
	}
	idx := b.sideIndex(entry.side)
	lvl := idx.find(entry.price)
	if lvl == nil {
		// Index/level out of sync should never happen (invariant 1);
		// treat defensively as unknown rather than panicking.
		delete(b.byID, id)
		return []Event{fmtUnknownOrder(id)}
	}
	for o := lvl.Head(); o != nil; o = o.Next() {
		if o.ID == id {
			lvl.Remove(o)
			b.orders.Put(o)
			break
		}
	}
	delete(b.byID, id)
	idx.removeIfEmpty(entry.price)
	return []Event{fmtCanceled(id)}
}

// Replace implements spec.md §4.1's replace algorithm: cancel old_id,
// then process_new for the replacement on the same side, using a fresh
// new_id (SPEC_FULL.md §4.4 resolves the id-reuse Open Question in
// favor of a fresh id).
func (b *OrderBook) Replace(oldID uint64, newQty, newPriceTicks int64, newID uint64) []Event {
	entry, ok := b.byID[oldID]
	if !ok {
		return []Event{fmtUnknownOrder(oldID)}
	}
	side := entry.side

	events := b.cancelCore(oldID)
	events = append(events, fmtReplaced(oldID, newID))

	if newQty <= 0 || newPriceTicks <= 0 {
		events = append(events, fmtError(msgInvalidReplace))
		return append(events, b.snapshot()...)
	}

	events = append(events, b.processNewCore(side, newQty, newPriceTicks, newID)...)
	return append(events, b.snapshot()...)
}

// snapshot renders the trailing BEST_BID/BEST_ASK lines (spec.md
// §4.1's snapshot emission rule), omitting a side that is empty.
func (b *OrderBook) snapshot() []Event {
	var events []Event
	if top := b.bids.best(); top != nil {
		events = append(events, fmtBestBid(b.fmt, top.Price, top.TotalQty))
	}
	if top := b.asks.best(); top != nil {
		events = append(events, fmtBestAsk(b.fmt, top.Price, top.TotalQty))
	}
	return events
}

// HasBestBid reports whether the bid side is non-empty.
func (b *OrderBook) HasBestBid() bool { return b.bids.best() != nil }

// HasBestAsk reports whether the ask side is non-empty.
func (b *OrderBook) HasBestAsk() bool { return b.asks.best() != nil }

// BestBidTicks returns the top bid price, or 0 if the bid side is empty.
func (b *OrderBook) BestBidTicks() int64 {
	if top := b.bids.best(); top != nil {
		return top.Price
	}
	return 0
}

// BestBidQty returns the top bid level's total quantity, or 0 if empty.
func (b *OrderBook) BestBidQty() int64 {
	if top := b.bids.best(); top != nil {
		return top.TotalQty
	}
	return 0
}

// BestAskTicks returns the top ask price, or 0 if the ask side is empty.
func (b *OrderBook) BestAskTicks() int64 {
	if top := b.asks.best(); top != nil {
		return top.Price
	}
	return 0
}

// BestAskQty returns the top ask level's total quantity, or 0 if empty.
func (b *OrderBook) BestAskQty() int64 {
	if top := b.asks.best(); top != nil {
		return top.TotalQty
	}
	return 0
}
