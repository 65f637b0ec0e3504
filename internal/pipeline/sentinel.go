package pipeline

import "github.com/oVirt/ioprocess-go/internal/wire"

// requestStop and responseStop are the sentinels spec.md §4.5 and §5
// describe: distinguished values, compared by pointer identity, pushed
// onto the request/response queues to signal orderly shutdown to their
// single consumer. This is the Go rendering of the original's STOP_PTR
// (original_source/src/ioprocess.c: "Because g_async_queue_push can't
// take null").
var (
	requestStop  = &wire.Request{}
	responseStop = &wire.Response{}
)
