package pipeline

import (
	"time"

	"github.com/oVirt/ioprocess-go/internal/logging"
	"github.com/oVirt/ioprocess-go/internal/pool"
)

// runDispatcher pops requests, enforcing the queue-depth limit via p,
// until it sees requestStop. On exit it closes the inbound pipe
// (idempotently, via inClose — a no-op if the reader's EOF already
// triggered it), drains the pool by waiting for every in-flight handler
// to finish, then pushes responseStop so the writer knows no more
// responses are coming, per spec.md §4.5.
func runDispatcher(requests *requestQueue, responses *responseQueue, p *pool.Pool, inClose *onceCloser, log *logging.Pipeline) {
	for {
		req := requests.Pop()
		if req == requestStop {
			break
		}

		rec := &pool.Record{
			EnqueueTime: time.Now(),
			Request:     req,
		}
		p.Submit(rec, responses)
	}

	_ = inClose.Close()

	log.Debug("dispatcher", "draining worker pool...")
	p.Wait()

	responses.Push(responseStop)
}
