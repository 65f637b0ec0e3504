// Package config parses and validates the helper's command-line options
// into a single immutable value, per spec.md §9's "Global state" note:
// options are read-only after startup and passed by value into every
// task instead of living as process-wide mutable state. Parsing itself
// uses the stdlib flag package, matching every CLI entrypoint in the
// example pack (e.g. GandalftheGUI-grove/cmd/catherdd) — none of them
// reach for a third-party flag library.
package config

import (
	"flag"
	"fmt"
)

// Options holds the parsed, validated command-line configuration.
type Options struct {
	ReadPipeFD        int
	WritePipeFD       int
	MaxThreads        int
	MaxQueuedRequests int
	KeepFDs           bool
	TraceEnabled      bool
}

// Parse parses args (excluding the program name) into Options, applying
// the same validation the original helper's option parser performs.
func Parse(args []string) (Options, error) {
	fs := flag.NewFlagSet("ioprocess", flag.ContinueOnError)

	opts := Options{}
	fs.IntVar(&opts.ReadPipeFD, "read-pipe-fd", -1, "pipe FD used to receive requests")
	fs.IntVar(&opts.WritePipeFD, "write-pipe-fd", -1, "pipe FD used to send responses")
	fs.IntVar(&opts.MaxThreads, "max-threads", 0, "max concurrent handlers, 0 for unbounded")
	fs.IntVar(&opts.MaxQueuedRequests, "max-queued-requests", -1, "max admitted-but-not-running requests, -1 for unbounded")
	fs.BoolVar(&opts.KeepFDs, "keep-fds", false, "don't close inherited file descriptors at startup")
	fs.BoolVar(&opts.TraceEnabled, "trace-enabled", false, "enable trace-level diagnostics")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	return opts, opts.Validate()
}

// Validate applies the constraints spec.md §6 places on the flag set.
func (o Options) Validate() error {
	if o.ReadPipeFD < 0 {
		return fmt.Errorf("config: --read-pipe-fd is required")
	}
	if o.WritePipeFD < 0 {
		return fmt.Errorf("config: --write-pipe-fd is required")
	}
	if o.MaxThreads < 0 {
		return fmt.Errorf("config: --max-threads cannot be negative")
	}
	if o.MaxQueuedRequests >= 0 && o.MaxThreads == 0 {
		return fmt.Errorf("config: --max-queued-requests only valid when --max-threads > 0")
	}
	return nil
}
