package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook() *OrderBook {
	return New(NewTickFormatter(100))
}

func events(evs []Event) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = string(e)
	}
	return out
}

// scenario 1: add without cross.
func TestProcessNew_AddWithoutCross(t *testing.T) {
	b := newTestBook()
	got := events(b.ProcessNew(Buy, 100, 5025, 1))
	assert.Equal(t, []string{
		"ORDER_ADDED BUY 100 @ 50.25 id 1",
		"BEST_BID 50.25 x 100",
	}, got)
}

// scenario 2: cross into resting bid.
func TestProcessNew_CrossIntoRestingBid(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 100, 5025, 1)
	got := events(b.ProcessNew(Sell, 60, 5010, 2))
	assert.Equal(t, []string{
		"TRADE 60 @ 50.25 against id 1",
		"BEST_BID 50.25 x 40",
	}, got)
}

// scenario 3: partial fill with residual resting.
func TestProcessNew_PartialFillWithResidual(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 50, 5025, 1)
	got := events(b.ProcessNew(Sell, 120, 5020, 2))
	assert.Equal(t, []string{
		"TRADE 50 @ 50.25 against id 1",
		"ORDER_ADDED SELL 70 @ 50.20 id 2",
		"BEST_ASK 50.20 x 70",
	}, got)
}

// scenario 4: FIFO within a level.
func TestProcessNew_FIFOWithinLevel(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 100, 5025, 1)
	b.ProcessNew(Buy, 50, 5025, 3)
	got := events(b.ProcessNew(Sell, 120, 5020, 7))
	assert.Equal(t, []string{
		"TRADE 100 @ 50.25 against id 1",
		"TRADE 20 @ 50.25 against id 3",
		"BEST_BID 50.25 x 30",
	}, got)
}

// scenario 5: cancel.
func TestCancel_RemovesRestingOrder(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 100, 5025, 10)
	got := events(b.Cancel(10))
	assert.Equal(t, []string{"CANCELED id 10"}, got)
	assert.False(t, b.HasBestBid())
}

// scenario 6: replace that crosses.
func TestReplace_Crosses(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Sell, 100, 5040, 20)
	b.ProcessNew(Buy, 80, 5015, 11)
	got := events(b.Replace(20, 100, 5010, 21))
	assert.Equal(t, []string{
		"CANCELED id 20",
		"REPLACED 20 -> 21",
		"TRADE 80 @ 50.15 against id 11",
		"ORDER_ADDED SELL 20 @ 50.10 id 21",
		"BEST_ASK 50.10 x 20",
	}, got)
}

func TestCancel_UnknownID(t *testing.T) {
	b := newTestBook()
	got := events(b.Cancel(999))
	require.Len(t, got, 1)
	assert.Equal(t, "ERROR Unknown order id 999", got[0])
}

func TestCancel_DoubleCancel(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 10, 100, 1)
	first := events(b.Cancel(1))
	assert.Equal(t, []string{"CANCELED id 1"}, first)

	second := events(b.Cancel(1))
	assert.Equal(t, []string{"ERROR Unknown order id 1"}, second)
}

func TestReplace_ThenCancelOldSucceedsOnceOnNew(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 10, 100, 1)
	b.Replace(1, 10, 200, 2)

	stale := events(b.Cancel(1))
	assert.Equal(t, []string{"ERROR Unknown order id 1", "BEST_BID 2.00 x 10"}, stale)

	fresh := events(b.Cancel(2))
	assert.Equal(t, []string{"CANCELED id 2"}, fresh)
}

func TestProcessNew_RejectsNonPositiveQtyOrPrice(t *testing.T) {
	b := newTestBook()
	assert.Equal(t, []string{"ERROR Invalid order"}, events(b.ProcessNew(Buy, 0, 100, 1)))
	assert.Equal(t, []string{"ERROR Invalid order"}, events(b.ProcessNew(Buy, 10, 0, 1)))
}

func TestProcessNew_RejectsDuplicateID(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 10, 100, 1)
	assert.Equal(t, []string{"ERROR Invalid order"}, events(b.ProcessNew(Sell, 5, 90, 1)))
}

func TestBook_NeverCrossed(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 10, 5000, 1)
	b.ProcessNew(Sell, 10, 5100, 2)
	if b.HasBestBid() && b.HasBestAsk() {
		assert.Less(t, b.BestBidTicks(), b.BestAskTicks())
	}
}

func TestReplace_UnknownOldID(t *testing.T) {
	b := newTestBook()
	got := events(b.Replace(999, 10, 100, 1000))
	assert.Equal(t, []string{"ERROR Unknown order id 999"}, got)
}

func TestReplace_InvalidNewParameters(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 10, 100, 1)
	got := events(b.Replace(1, 0, 100, 2))
	assert.Equal(t, []string{
		"CANCELED id 1",
		"REPLACED 1 -> 2",
		"ERROR Invalid replace parameters",
	}, got)
}

func TestPriceLevel_TotalQtyMatchesIndex(t *testing.T) {
	b := newTestBook()
	b.ProcessNew(Buy, 30, 5000, 1)
	b.ProcessNew(Buy, 20, 5000, 2)
	require.True(t, b.HasBestBid())
	assert.Equal(t, int64(50), b.BestBidQty())
}
