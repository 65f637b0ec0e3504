package pipeline

import (
	"io"
	"os"

	"github.com/oVirt/ioprocess-go/internal/logging"
	"github.com/oVirt/ioprocess-go/internal/wire"
)

// runReader consumes frames from in until EOF or a read error, parsing
// each into a Request and pushing it onto requests. It always terminates
// by pushing requestStop, whether it exits cleanly (EOF) or because of a
// fatal error — the dispatcher must see exactly one stop signal either
// way, per spec.md §4.5's reader task description.
//
// A parse error desynchronizes the protocol (the length prefix of the
// next frame can no longer be trusted to mean anything) so it is fatal:
// the reader logs the raw payload and exits without attempting recovery.
func runReader(in *os.File, requests *requestQueue, log *logging.Pipeline) {
	defer func() {
		requests.Push(requestStop)
	}()

	for {
		log.Trace("reader", "waiting for next request...")
		payload, err := wire.ReadFrame(in)
		if err != nil {
			if err == io.EOF {
				log.Info("reader", "pipe closed, stopping")
			} else {
				log.Warning("reader", "could not read frame: %s", err)
			}
			return
		}

		req, perr := wire.ParseRequest(payload)
		if perr != nil {
			log.Warning("reader", "could not parse request %q: %s", string(payload), perr)
			return
		}

		log.Trace("reader", "queuing request (id=%d method=%s)", req.ID, req.MethodName)
		requests.Push(req)
	}
}
