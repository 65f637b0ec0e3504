// Package pool implements the bounded worker pool that runs registry
// handlers with admission back-pressure (spec.md §4.4). It generalizes
// the teacher's Worker/WorkerPool pair (server/worker.go,
// server/pool.go): the teacher's pool manages a fixed set of PHP
// subprocesses and tracks each one's idle/busy/draining/dead state; here
// there is no subprocess to track, so the same atomic-counter discipline
// is applied directly to request admission instead of per-worker
// lifecycle state.
package pool

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/oVirt/ioprocess-go/internal/ioerr"
	"github.com/oVirt/ioprocess-go/internal/logging"
	"github.com/oVirt/ioprocess-go/internal/queue"
	"github.com/oVirt/ioprocess-go/internal/registry"
	"github.com/oVirt/ioprocess-go/internal/wire"
)

// ResponseQueue is the unbounded sink Submit pushes completed responses
// onto; it is the pipeline package's response queue, named here without
// importing that package (pipeline already imports pool).
type ResponseQueue = queue.Queue[*wire.Response]

// Record is the request-in-flight record spec.md §3 defines: created when
// a request is dispatched, discarded after its response is enqueued. The
// enqueue time is used only to log queueing latency.
type Record struct {
	EnqueueTime time.Time
	Request     *wire.Request
}

// Pool runs handlers from a registry.Registry with back-pressure governed
// by maxThreads (concurrency cap, 0 = unbounded) and maxQueued (admission
// headroom beyond maxThreads, -1 = unbounded).
type Pool struct {
	registry   *registry.Registry
	log        *logging.Pipeline
	maxThreads int
	maxQueued  int

	sem       chan struct{} // nil when maxThreads == 0 (unbounded)
	slotsLeft atomic.Int64  // only meaningful when maxQueued >= 0

	wg sync.WaitGroup
}

// New builds a Pool. slotsLeft starts at maxThreads+maxQueued+1, matching
// spec.md §3's Worker-pool state definition exactly.
func New(maxThreads, maxQueued int, r *registry.Registry, log *logging.Pipeline) *Pool {
	p := &Pool{
		registry:   r,
		log:        log,
		maxThreads: maxThreads,
		maxQueued:  maxQueued,
	}
	if maxThreads > 0 {
		p.sem = make(chan struct{}, maxThreads)
	}
	if maxQueued >= 0 {
		p.slotsLeft.Store(int64(maxThreads + maxQueued + 1))
	}
	return p
}

// Submit admits rec for execution, pushing its eventual Response onto
// responses. slotsLeft starts at maxThreads+maxQueued+1 and is decremented
// on every admission attempt; the one attempt that decrements it to
// exactly zero is rejected and the counter restored, which bounds the
// number of simultaneously outstanding (admitted-but-not-completed)
// requests to maxThreads+maxQueued, per spec.md §4.4's back-pressure rule.
// A rejected request gets a synthetic EAGAIN response and never consumes
// a worker slot.
func (p *Pool) Submit(rec *Record, responses *ResponseQueue) {
	if p.maxQueued >= 0 {
		if p.slotsLeft.Add(-1) == 0 {
			p.slotsLeft.Add(1)
			p.log.Warning("pool", "(%d) %s", rec.Request.ID, ioerr.ErrQueueFull)
			errno := ioerr.Again(ioerr.ErrQueueFull.Error())
			responses.Push(wire.NewError(rec.Request.ID, errno.Code, errno.Msg))
			return
		}
		p.log.Debug("pool", "(%d) queuing request (slotsLeft=%d)", rec.Request.ID, p.slotsLeft.Load())
	}

	p.wg.Add(1)
	go p.run(rec, responses)
}

func (p *Pool) run(rec *Record, responses *ResponseQueue) {
	defer p.wg.Done()

	if p.sem != nil {
		p.sem <- struct{}{}
		defer func() { <-p.sem }()
	}
	if p.maxQueued >= 0 {
		defer func() {
			n := p.slotsLeft.Add(1)
			p.log.Debug("pool", "(%d) request complete (slotsLeft=%d)", rec.Request.ID, n)
		}()
	}

	responses.Push(p.handle(rec))
}

// handle resolves, invokes and builds a response for one request,
// containing any panic from the handler as an error response — handler
// panics must never escape the pool, matching spec.md §4.4's "Handler
// panics/aborts must be contained".
func (p *Pool) handle(rec *Record) (resp *wire.Response) {
	reqID := rec.Request.ID

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("pool", "(%d) handler panicked: %v", reqID, r)
			resp = wire.NewError(reqID, int(unix.EIO), fmt.Sprintf("handler panic: %v", r))
		}
	}()

	method := rec.Request.MethodName
	h, err := p.registry.Lookup(method)
	if err != nil {
		if errors.Is(err, ioerr.ErrUnknownMethod) {
			return errnoResponse(reqID, ioerr.Invalid("No such method %q", method))
		}
		return errnoResponse(reqID, err)
	}

	waitTime := time.Since(rec.EnqueueTime)
	p.log.Debug("pool", "(%d) start request for method %q (waitTime=%s)", reqID, method, waitTime)

	start := time.Now()
	result, herr := h(rec.Request.Args)
	p.log.Debug("pool", "(%d) finished request for method %q (runTime=%s)", reqID, method, time.Since(start))

	if herr != nil {
		return errnoResponse(reqID, herr)
	}
	return wire.NewSuccess(reqID, result)
}

// errnoResponse converts a handler error into a Response, preferring the
// errno carried by an *ioerr.Errno and falling back to EIO for anything
// else (a handler author's plain error, e.g. from a bug).
func errnoResponse(id int64, err error) *wire.Response {
	if errno, ok := err.(*ioerr.Errno); ok {
		return wire.NewError(id, errno.Code, errno.Msg)
	}
	return wire.NewError(id, int(unix.EIO), err.Error())
}

// Wait blocks until every in-flight handler submitted via Submit has
// returned, used by the dispatcher to drain the pool before signaling the
// writer to stop.
func (p *Pool) Wait() {
	p.wg.Wait()
}
