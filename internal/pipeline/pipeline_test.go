package pipeline

import (
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"

	"github.com/oVirt/ioprocess-go/internal/logging"
	"github.com/oVirt/ioprocess-go/internal/pool"
	"github.com/oVirt/ioprocess-go/internal/registry"
	"github.com/oVirt/ioprocess-go/internal/wire"
)

func TestSentinelsAreDistinctFromAnyRealMessage(t *testing.T) {
	if requestStop == (&wire.Request{}) {
		t.Fatal("requestStop must be its own distinguished pointer, not reusable via ==")
	}
	real := &wire.Request{ID: 1, MethodName: "ping"}
	if real == requestStop {
		t.Fatal("a freshly built request must never alias the stop sentinel")
	}
}

func TestOnceCloserClosesExactlyOnce(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	defer w.Close()

	c := newOnceCloser(r)
	if err := c.Close(); err != nil {
		t.Fatalf("first Close returned error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close must be a no-op, got error: %v", err)
	}
}

// TestReaderDispatcherWriterRoundTrip drives the three pipeline tasks
// directly over real pipe file descriptors, end to end: a request written
// to the inbound pipe produces a response on the outbound pipe, and
// closing the inbound write end cleanly shuts the whole pipeline down.
func TestReaderDispatcherWriterRoundTrip(t *testing.T) {
	inRead, inWrite, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	outRead, outWrite, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}

	reg := registry.New()
	reg.Register("ping", func(args map[string]any) (any, error) {
		return "pong", nil
	})
	log := logging.New(io.Discard)
	defer log.Close()
	p := pool.New(0, -1, reg, log)

	requests := newRequestQueue()
	responses := newResponseQueue()
	inClose := newOnceCloser(inRead)

	readerDone := make(chan struct{})
	dispatcherDone := make(chan struct{})
	writerDone := make(chan struct{})

	go func() { runReader(inRead, requests, log); close(readerDone) }()
	go func() { runDispatcher(requests, responses, p, inClose, log); close(dispatcherDone) }()
	go func() { runWriter(outWrite, responses, inClose, log); close(writerDone) }()

	payload, err := json.Marshal(&wire.Request{ID: 1, MethodName: "ping", Args: map[string]any{}})
	if err != nil {
		t.Fatalf("encoding request failed: %v", err)
	}
	if err := wire.WriteFrame(inWrite, payload); err != nil {
		t.Fatalf("WriteFrame to inbound pipe failed: %v", err)
	}

	respPayload, err := wire.ReadFrame(outRead)
	if err != nil {
		t.Fatalf("ReadFrame from outbound pipe failed: %v", err)
	}
	resp := &wire.Response{}
	if err := json.Unmarshal(respPayload, resp); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if resp.ID != 1 || resp.Result != "pong" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Closing the write end signals EOF to the reader, which cascades
	// through dispatcher drain and writer shutdown.
	if err := inWrite.Close(); err != nil {
		t.Fatalf("closing inbound write end failed: %v", err)
	}

	waitFor := func(name string, ch <-chan struct{}) {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("%s did not finish within timeout", name)
		}
	}
	waitFor("reader", readerDone)
	waitFor("dispatcher", dispatcherDone)
	waitFor("writer", writerDone)

	outWrite.Close()
	outRead.Close()
}

// TestWriterDrainsResponsesAfterWriteError reproduces the shutdown path a
// fatal write error triggers: once the outbound pipe is broken, runWriter
// must keep popping (and discarding) responses instead of returning early,
// so a pool worker that already has a result queued never blocks pushing
// it and the dispatcher's drain can still complete.
func TestWriterDrainsResponsesAfterWriteError(t *testing.T) {
	outRead, outWrite, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	// Closing the read end makes every subsequent write to outWrite fail.
	if err := outRead.Close(); err != nil {
		t.Fatalf("closing outbound read end failed: %v", err)
	}

	inRead, inWrite, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	defer inWrite.Close()
	inClose := newOnceCloser(inRead)

	log := logging.New(io.Discard)
	defer log.Close()

	responses := newResponseQueue()
	writerDone := make(chan struct{})
	go func() { runWriter(outWrite, responses, inClose, log); close(writerDone) }()

	for id := int64(1); id <= 5; id++ {
		responses.Push(wire.NewSuccess(id, "ok"))
	}
	responses.Push(responseStop)

	select {
	case <-writerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("runWriter did not terminate after a write error; a push may have blocked")
	}
}
