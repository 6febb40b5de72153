// Package ingress implements the per-connection line protocol
// described in SPEC_FULL.md §4.4: an 8192-byte line limit, an
// ACK-before-parse ordering, and the NEW/CXL/MOD/QUIT command grammar.
// Grounded on spec.md §4.4/§6 and the original C++ reference's server
// loop shape (_examples/original_source/include/engine_queue.hpp).
package ingress

import (
	"fmt"
	"strconv"
	"strings"

	"matchd/domain/orderbook"
	"matchd/engine"
)

// MaxLineBytes is the hard per-line limit; longer lines terminate the
// session (spec.md §4.4).
const MaxLineBytes = 8192

// parsed is an intermediate parse result: either a fully-formed command
// awaiting an id, a request to quit, or a parse error message.
type parsed struct {
	quit bool
	err  string
	cmd  engine.Command
}

// parseLine parses one command line per spec.md §6's grammar. It does
// not assign OrderIds; the caller fills in cmd.ID/cmd.NewID from the
// shared sequencer after a successful parse (spec.md §4.4 step 4).
func parseLine(line string, fmtr orderbook.Formatter) parsed {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return parsed{err: "Invalid command"}
	}

	switch fields[0] {
	case "QUIT":
		if len(fields) != 1 {
			return parsed{err: "Invalid command"}
		}
		return parsed{quit: true}

	case "NEW":
		return parseNew(fields, fmtr)

	case "CXL":
		if len(fields) != 2 {
			return parsed{err: "Invalid command"}
		}
		id, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return parsed{err: "Invalid order id"}
		}
		return parsed{cmd: engine.Command{Kind: engine.Cancel, TargetID: id}}

	case "MOD":
		return parseMod(fields, fmtr)

	default:
		return parsed{err: "Invalid command"}
	}
}

// parseNew handles: NEW BUY|SELL <qty> @ <price>
func parseNew(fields []string, fmtr orderbook.Formatter) parsed {
	if len(fields) != 5 || fields[3] != "@" {
		return parsed{err: "Invalid command"}
	}
	side, ok := parseSide(fields[1])
	if !ok {
		return parsed{err: "Invalid side"}
	}
	qty, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || qty <= 0 {
		return parsed{err: "Invalid quantity"}
	}
	priceFmt, ok := fmtr.(interface{ Parse(string) (int64, error) })
	if !ok {
		return parsed{err: "Invalid price"}
	}
	ticks, err := priceFmt.Parse(fields[4])
	if err != nil {
		return parsed{err: "Invalid price"}
	}
	return parsed{cmd: engine.Command{Kind: engine.New, Side: side, Qty: qty, PriceTicks: ticks}}
}

// parseMod handles: MOD <order_id> <new_qty> @ <new_price>
func parseMod(fields []string, fmtr orderbook.Formatter) parsed {
	if len(fields) != 5 || fields[3] != "@" {
		return parsed{err: "Invalid command"}
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return parsed{err: "Invalid order id"}
	}
	newQty, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || newQty <= 0 {
		return parsed{err: "Invalid quantity"}
	}
	priceFmt, ok := fmtr.(interface{ Parse(string) (int64, error) })
	if !ok {
		return parsed{err: "Invalid price"}
	}
	ticks, err := priceFmt.Parse(fields[4])
	if err != nil {
		return parsed{err: "Invalid price"}
	}
	return parsed{cmd: engine.Command{Kind: engine.Modify, TargetID: id, NewQty: newQty, NewPriceTicks: ticks}}
}

func parseSide(s string) (orderbook.Side, bool) {
	switch s {
	case "BUY":
		return orderbook.Buy, true
	case "SELL":
		return orderbook.Sell, true
	default:
		return 0, false
	}
}

func ackLine(us int64) string {
	return fmt.Sprintf("ACK %d", us)
}
