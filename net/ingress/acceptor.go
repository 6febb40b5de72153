package ingress

import (
	"errors"
	"net"

	"go.uber.org/zap"

	"matchd/domain/orderbook"
	"matchd/engine"
	"matchd/infra/queue"
	"matchd/infra/sequence"
)

// Acceptor listens on a TCP port and spawns one Session per connection
// (spec.md §2, §4.6). Closing the listener is how shutdown unblocks a
// pending Accept (spec.md §5's shutdown race).
type Acceptor struct {
	listener net.Listener
	queue    *queue.Queue[engine.Command]
	seq      *sequence.Sequencer
	fmtr     orderbook.Formatter
	log      *zap.Logger
}

// Listen binds addr (e.g. ":8080") and returns an Acceptor ready to
// Serve. A bind/listen failure here is spec.md §7's socket-setup-fatal
// case; the caller is expected to exit(1) on error.
func Listen(addr string, q *queue.Queue[engine.Command], seq *sequence.Sequencer, fmtr orderbook.Formatter, log *zap.Logger) (*Acceptor, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Acceptor{listener: ln, queue: q, seq: seq, fmtr: fmtr, log: log}, nil
}

// Addr returns the bound address, useful when addr was ":0" in tests.
func (a *Acceptor) Addr() net.Addr { return a.listener.Addr() }

// Serve accepts connections until the listener is closed. It returns
// nil on a clean shutdown (listener closed) and any other error
// otherwise.
func (a *Acceptor) Serve() error {
	for {
		conn, err := a.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		sess := NewSession(conn, a.queue, a.seq, a.fmtr, a.log)
		go sess.Serve()
	}
}

// Close unblocks a pending Accept so Serve can return.
func (a *Acceptor) Close() error {
	return a.listener.Close()
}
