// Package marketdata implements the write-only, best-effort fan-out
// side of the exchange (spec.md §4.5): one datagram per book event
// line, no trailing newline, silent on failure, no-op when disabled.
package marketdata

import (
	"net"
	"strconv"

	"matchd/domain/orderbook"
)

// UDPSink publishes each event line as its own UDP datagram to a fixed
// destination. It is never on the correctness path: TCP is the
// authoritative record (spec.md §9).
type UDPSink struct {
	conn net.Conn
}

// NewUDPSink dials host:port over UDP. Dialing UDP never blocks on the
// peer (no handshake), so this only fails on local socket setup.
func NewUDPSink(host string, port int) (*UDPSink, error) {
	conn, err := net.Dial("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, err
	}
	return &UDPSink{conn: conn}, nil
}

// Publish sends each event as its own datagram, ignoring errors: a
// dropped or failed market-data write must never affect the matching
// path (spec.md §4.5).
func (s *UDPSink) Publish(events []orderbook.Event) {
	if s == nil {
		return
	}
	for _, ev := range events {
		_, _ = s.conn.Write([]byte(ev))
	}
}

// Close releases the underlying socket.
func (s *UDPSink) Close() error {
	if s == nil {
		return nil
	}
	return s.conn.Close()
}
