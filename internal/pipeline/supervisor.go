// Package pipeline owns the two queues and three long-running tasks
// (reader, dispatcher, writer) spec.md §4.5 describes. It is the part of
// this helper with no direct teacher analogue in the example pack — the
// teacher is itself the parent side of a similar bridge, never the
// child — so its shape is ported straight from
// original_source/src/ioprocess.c's communicate()/requestReader/
// requestHandler/responseWriter, with GAsyncQueue replaced by the unbounded
// queue type in queue.go and STOP_PTR replaced by typed sentinel values
// (sentinel.go).
package pipeline

import (
	"os"

	"github.com/oVirt/ioprocess-go/internal/logging"
	"github.com/oVirt/ioprocess-go/internal/pool"
)

// Run starts the reader, dispatcher and writer tasks against the pipe
// file descriptors readFD/writeFD, using p to execute handlers, and
// blocks until all three have finished. It joins them in the order
// spec.md §4.5 prescribes — reader, then dispatcher, then writer — so
// that no pending response is lost before the writer has drained it.
func Run(readFD, writeFD int, p *pool.Pool, log *logging.Pipeline) {
	in := os.NewFile(uintptr(readFD), "ioprocess-read-pipe")
	out := os.NewFile(uintptr(writeFD), "ioprocess-write-pipe")

	requests := newRequestQueue()
	responses := newResponseQueue()
	inClose := newOnceCloser(in)

	readerDone := make(chan struct{})
	dispatcherDone := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		runReader(in, requests, log)
		close(readerDone)
	}()
	go func() {
		runDispatcher(requests, responses, p, inClose, log)
		close(dispatcherDone)
	}()
	go func() {
		runWriter(out, responses, inClose, log)
		close(writerDone)
	}()

	<-readerDone
	<-dispatcherDone
	<-writerDone
}
