package ingress

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"matchd/domain/orderbook"
	"matchd/engine"
	"matchd/infra/queue"
	"matchd/infra/sequence"
)

func TestSession_EndToEndNewAckAndOrderAdded(t *testing.T) {
	fmtr := orderbook.NewTickFormatter(100)
	book := orderbook.New(fmtr)
	q := queue.New[engine.Command](8)
	seq := sequence.New(0)

	acceptor, err := Listen("127.0.0.1:0", q, seq, fmtr, nil)
	require.NoError(t, err)
	defer acceptor.Close()

	eng := engine.NewEngine(book, q, nil, nil, nil)
	go eng.Run()
	go acceptor.Serve()

	conn, err := net.Dial("tcp", acceptor.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	reader := bufio.NewReader(conn)
	_, err = conn.Write([]byte("NEW BUY 100 @ 50.25\n"))
	require.NoError(t, err)

	ack := readLineWithTimeout(t, reader)
	require.Contains(t, ack, "ACK ")

	added := readLineWithTimeout(t, reader)
	require.Equal(t, "ORDER_ADDED BUY 100 @ 50.25 id 1", added)

	best := readLineWithTimeout(t, reader)
	require.Equal(t, "BEST_BID 50.25 x 100", best)

	q.Stop()
}

func TestSession_QuitClosesConnection(t *testing.T) {
	fmtr := orderbook.NewTickFormatter(100)
	book := orderbook.New(fmtr)
	q := queue.New[engine.Command](8)
	seq := sequence.New(0)

	acceptor, err := Listen("127.0.0.1:0", q, seq, fmtr, nil)
	require.NoError(t, err)
	defer acceptor.Close()

	eng := engine.NewEngine(book, q, nil, nil, nil)
	go eng.Run()
	go acceptor.Serve()

	conn, err := net.Dial("tcp", acceptor.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	reader := bufio.NewReader(conn)
	_, err = conn.Write([]byte("QUIT\n"))
	require.NoError(t, err)

	ack := readLineWithTimeout(t, reader)
	require.Contains(t, ack, "ACK ")

	bye := readLineWithTimeout(t, reader)
	require.Equal(t, "BYE", bye)

	q.Stop()
}

func readLineWithTimeout(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		ch <- result{line, err}
	}()
	select {
	case res := <-ch:
		require.NoError(t, res.err)
		return res.line[:len(res.line)-1]
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a line")
		return ""
	}
}
