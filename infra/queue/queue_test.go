package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PushPopFIFO(t *testing.T) {
	q := New[int](4)
	require.True(t, q.Push(1))
	require.True(t, q.Push(2))
	require.True(t, q.Push(3))

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestQueue_PushBlocksWhenFull(t *testing.T) {
	q := New[int](1)
	require.True(t, q.Push(1))

	pushed := make(chan bool, 1)
	go func() { pushed <- q.Push(2) }()

	select {
	case <-pushed:
		t.Fatal("push should have blocked while queue is full")
	case <-time.After(50 * time.Millisecond):
	}

	_, _ = q.Pop()
	select {
	case ok := <-pushed:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("push never unblocked after a pop freed capacity")
	}
}

func TestQueue_PopBlocksWhenEmpty(t *testing.T) {
	q := New[int](4)
	popped := make(chan int, 1)
	go func() {
		v, ok := q.Pop()
		if ok {
			popped <- v
		}
	}()

	select {
	case <-popped:
		t.Fatal("pop should have blocked on an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	q.Push(42)
	select {
	case v := <-popped:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("pop never unblocked after a push")
	}
}

func TestQueue_StopDrainsThenReportsStopped(t *testing.T) {
	q := New[int](4)
	q.Push(1)
	q.Push(2)
	q.Stop()

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = q.Pop()
	assert.False(t, ok, "pop should report drained+stopped once empty")
}

func TestQueue_PushAfterStopFails(t *testing.T) {
	q := New[int](4)
	q.Stop()
	assert.False(t, q.Push(1))
}

func TestQueue_StopUnblocksPendingPush(t *testing.T) {
	q := New[int](1)
	q.Push(1)

	pushed := make(chan bool, 1)
	go func() { pushed <- q.Push(2) }()

	time.Sleep(20 * time.Millisecond)
	q.Stop()

	select {
	case ok := <-pushed:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("stop never unblocked a pending push")
	}
}
