package ingress

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"matchd/domain/orderbook"
	"matchd/engine"
	"matchd/infra/queue"
	"matchd/infra/sequence"
)

// Session owns one accepted TCP connection: it reads command lines,
// ACKs them, enqueues work for the engine, and serializes all writes
// back to the peer (spec.md §4.4, §5's per-socket write-atomicity
// requirement).
type Session struct {
	conn  net.Conn
	queue *queue.Queue[engine.Command]
	seq   *sequence.Sequencer
	fmtr  orderbook.Formatter
	log   *zap.Logger

	writeMu sync.Mutex
}

// NewSession wraps an accepted connection. seq mints OrderIds shared
// across every session (spec.md §5's atomic-counter alternative).
func NewSession(conn net.Conn, q *queue.Queue[engine.Command], seq *sequence.Sequencer, fmtr orderbook.Formatter, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{conn: conn, queue: q, seq: seq, fmtr: fmtr, log: log}
}

// WriteReply satisfies engine.ReplyWriter: it serializes the given
// event lines as one payload and writes them to the peer socket
// (spec.md §4.3, §6.2).
func (s *Session) WriteReply(events []orderbook.Event) error {
	if len(events) == 0 {
		return nil
	}
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(string(ev))
		b.WriteByte('\n')
	}
	return s.writeLine(b.String())
}

func (s *Session) writeLine(payload string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err := s.conn.Write([]byte(payload))
	return err
}

// Serve reads lines until EOF, a protocol error terminates the
// session, or QUIT is received. It never returns an error; all I/O
// failures simply end the session (spec.md §7's peer-disconnect row).
func (s *Session) Serve() {
	defer s.conn.Close()

	scanner := bufio.NewScanner(s.conn)
	// +1 leaves room for the '\n' after a line of exactly MaxLineBytes.
	scanner.Buffer(make([]byte, 0, MaxLineBytes+1), MaxLineBytes+1)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !s.handleLine(line) {
			return
		}
	}
}

// handleLine processes one line and returns false if the session
// should end (QUIT, a write failure, or a push refused by a stopped
// queue).
func (s *Session) handleLine(line string) bool {
	us := time.Now().UnixMicro()
	if err := s.writeLine(ackLine(us) + "\n"); err != nil {
		return false
	}

	p := parseLine(line, s.fmtr)
	if p.err != "" {
		if err := s.writeLine("ERROR " + p.err + "\n"); err != nil {
			return false
		}
		return true
	}
	if p.quit {
		_ = s.writeLine("BYE\n")
		return false
	}

	cmd := p.cmd
	switch cmd.Kind {
	case engine.New:
		cmd.ID = s.seq.Next()
	case engine.Modify:
		cmd.NewID = s.seq.Next()
	}
	cmd.Reply = s

	if !s.queue.Push(cmd) {
		if err := s.writeLine("ERROR Engine offline\n"); err != nil {
			return false
		}
		return false
	}
	return true
}
