package ingress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchd/domain/orderbook"
	"matchd/engine"
)

func TestParseLine_New(t *testing.T) {
	f := orderbook.NewTickFormatter(100)
	p := parseLine("NEW BUY 100 @ 50.25", f)
	require.Empty(t, p.err)
	require.False(t, p.quit)
	assert.Equal(t, engine.New, p.cmd.Kind)
	assert.Equal(t, orderbook.Buy, p.cmd.Side)
	assert.Equal(t, int64(100), p.cmd.Qty)
	assert.Equal(t, int64(5025), p.cmd.PriceTicks)
}

func TestParseLine_Cancel(t *testing.T) {
	f := orderbook.NewTickFormatter(100)
	p := parseLine("CXL 42", f)
	require.Empty(t, p.err)
	assert.Equal(t, engine.Cancel, p.cmd.Kind)
	assert.Equal(t, uint64(42), p.cmd.TargetID)
}

func TestParseLine_Modify(t *testing.T) {
	f := orderbook.NewTickFormatter(100)
	p := parseLine("MOD 42 10 @ 50.10", f)
	require.Empty(t, p.err)
	assert.Equal(t, engine.Modify, p.cmd.Kind)
	assert.Equal(t, uint64(42), p.cmd.TargetID)
	assert.Equal(t, int64(10), p.cmd.NewQty)
	assert.Equal(t, int64(5010), p.cmd.NewPriceTicks)
}

func TestParseLine_Quit(t *testing.T) {
	f := orderbook.NewTickFormatter(100)
	p := parseLine("QUIT", f)
	assert.True(t, p.quit)
}

func TestParseLine_RejectsMalformed(t *testing.T) {
	f := orderbook.NewTickFormatter(100)
	cases := []string{
		"NEW BUY 100 50.25",
		"NEW HOLD 100 @ 50.25",
		"NEW BUY -5 @ 50.25",
		"CXL",
		"CXL abc",
		"MOD 1 2 3",
		"GARBAGE",
		"",
	}
	for _, line := range cases {
		p := parseLine(line, f)
		assert.NotEmpty(t, p.err, "expected parse error for %q", line)
	}
}
