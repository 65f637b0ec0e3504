package queue

import (
	"sync"
	"testing"
	"time"
)

func TestPopReturnsItemsInFIFOOrder(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Push(2)
	q.Push(3)

	for _, want := range []int{1, 2, 3} {
		if got := q.Pop(); got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
}

func TestPopBlocksUntilPushed(t *testing.T) {
	q := New[int]()
	done := make(chan int, 1)
	go func() { done <- q.Pop() }()

	select {
	case <-done:
		t.Fatal("Pop returned before anything was pushed")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(42)
	select {
	case v := <-done:
		if v != 42 {
			t.Fatalf("got %d, want 42", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after Push")
	}
}

// TestPushNeverBlocks drives many concurrent pushes against a queue with no
// consumer draining it, confirming a producer can never stall waiting for
// capacity the way a fixed-size channel send would.
func TestPushNeverBlocks(t *testing.T) {
	q := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q.Push(i)
		}(i)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pushes did not all complete; a producer appears blocked")
	}

	count := 0
	for i := 0; i < 1000; i++ {
		q.Pop()
		count++
	}
	if count != 1000 {
		t.Fatalf("popped %d items, want 1000", count)
	}
}
