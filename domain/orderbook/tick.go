package orderbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TickFormatter converts between integer tick counts and the fixed
// 2-decimal-place price text the wire protocol uses (spec.md §6). It is
// the concrete Formatter injected into the book; grounded on the
// decimal-based price handling used across the example pack
// (luxfi-dex/backend/pkg/lx/orderbook_server.go) rather than float64,
// so rounding to the nearest tick is exact.
type TickFormatter struct {
	// TicksPerUnit is the number of ticks in one unit of quoted price,
	// e.g. 100 for a 2-decimal-place grid (spec.md §3 default).
	TicksPerUnit int64
}

// NewTickFormatter builds a formatter for the given tick granularity.
func NewTickFormatter(ticksPerUnit int64) TickFormatter {
	if ticksPerUnit <= 0 {
		ticksPerUnit = 100
	}
	return TickFormatter{TicksPerUnit: ticksPerUnit}
}

// Format renders ticks as fixed-point text with 2 fractional digits,
// trailing zeros preserved (spec.md §6).
func (f TickFormatter) Format(ticks int64) string {
	unit := decimal.NewFromInt(ticks).Div(decimal.NewFromInt(f.TicksPerUnit))
	return unit.StringFixed(2)
}

// Parse converts price text into ticks, rounding half-away-from-zero to
// the nearest tick (spec.md §6, §9). It returns an error if the text is
// not a valid decimal or rounds to a non-positive tick count.
func (f TickFormatter) Parse(text string) (int64, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", text)
	}
	scaled := d.Mul(decimal.NewFromInt(f.TicksPerUnit)).Round(0)
	ticks := scaled.IntPart()
	if ticks <= 0 {
		return 0, fmt.Errorf("price %q rounds to a non-positive tick count", text)
	}
	return ticks, nil
}
