// Command ioprocess is the helper subprocess: it is handed two pipe file
// descriptors by a parent process and executes filesystem/I/O requests on
// its behalf until the parent closes the inbound pipe. See SPEC_FULL.md.
package main

import (
	"fmt"
	"os"

	"github.com/oVirt/ioprocess-go/internal/config"
	"github.com/oVirt/ioprocess-go/internal/fdhygiene"
	"github.com/oVirt/ioprocess-go/internal/handlers"
	"github.com/oVirt/ioprocess-go/internal/logging"
	"github.com/oVirt/ioprocess-go/internal/pipeline"
	"github.com/oVirt/ioprocess-go/internal/pool"
	"github.com/oVirt/ioprocess-go/internal/registry"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ioprocess:", err)
		return 1
	}

	log := logging.New(os.Stderr)
	log.SetTraceEnabled(opts.TraceEnabled)
	defer log.Close()

	log.Info("main", "starting ioprocess")

	if !opts.KeepFDs {
		log.Debug("main", "closing unrelated FDs...")
		keep := map[int]struct{}{
			int(os.Stdout.Fd()): {},
			int(os.Stderr.Fd()): {},
			opts.ReadPipeFD:     {},
			opts.WritePipeFD:    {},
		}
		if err := fdhygiene.CloseUnrelated(keep); err != nil {
			log.Warning("main", "could not close unrelated FDs: %s", err)
			return 1
		}
	}

	reg := registry.New()
	handlers.RegisterAll(reg, log)

	p := pool.New(opts.MaxThreads, opts.MaxQueuedRequests, reg, log)

	log.Debug("main", "opening communication channels...")
	pipeline.Run(opts.ReadPipeFD, opts.WritePipeFD, p, log)

	log.Info("main", "shutting down ioprocess")
	return 0
}
