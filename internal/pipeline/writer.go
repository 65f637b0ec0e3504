package pipeline

import (
	"os"

	"github.com/oVirt/ioprocess-go/internal/logging"
	"github.com/oVirt/ioprocess-go/internal/wire"
)

// runWriter pops responses and writes each as a length-prefixed JSON
// frame to out, until it sees responseStop. A write error is fatal to the
// pipe: it signals the reader to stop by closing the inbound pipe, per
// spec.md §4.5's writer task description. A read already blocked on the
// inbound pipe is interrupted by that close only when the descriptor is
// pollable (non-blocking); otherwise the reader fails on its next read.
// It keeps popping and discarding responses after that point instead of
// returning immediately — pool workers that are already running have no
// other way to hand off their result, and with the queue unbounded
// (internal/queue) pushing one never blocks, so draining here is what
// lets Pool.Wait and the dispatcher still observe a clean shutdown.
func runWriter(out *os.File, responses *responseQueue, inClose *onceCloser, log *logging.Pipeline) {
	writeFailed := false

	for {
		resp := responses.Pop()
		if resp == responseStop {
			log.Info("writer", "received stop signal, terminating")
			break
		}
		if writeFailed {
			continue
		}

		payload, err := resp.Encode()
		if err != nil {
			log.Warning("writer", "(%d) could not marshal response: %s", resp.ID, err)
			continue
		}

		log.Trace("writer", "(%d) sending response sized %d", resp.ID, len(payload))
		if err := wire.WriteFrame(out, payload); err != nil {
			log.Warning("writer", "could not write to pipe: %s", err)
			_ = inClose.Close()
			writeFailed = true
		}
	}

	_ = out.Close()
}
