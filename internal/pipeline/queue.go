package pipeline

import (
	"github.com/oVirt/ioprocess-go/internal/queue"
	"github.com/oVirt/ioprocess-go/internal/wire"
)

// requestQueue and responseQueue are the two queues spec.md §4.5 names:
// the reader pushes onto requestQueue and the dispatcher pops it; the
// dispatcher (and pool workers, via Submit) push onto responseQueue and
// the writer pops it. Both are unbounded (internal/queue), never blocking
// a producer — replacing the unbuffered channels used earlier, which
// could deadlock a worker against a writer that had already exited.
type requestQueue = queue.Queue[*wire.Request]
type responseQueue = queue.Queue[*wire.Response]

func newRequestQueue() *requestQueue   { return queue.New[*wire.Request]() }
func newResponseQueue() *responseQueue { return queue.New[*wire.Response]() }
