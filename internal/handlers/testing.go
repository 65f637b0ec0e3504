package handlers

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/oVirt/ioprocess-go/internal/ioerr"
)

// Ping is used for testing; simply responds "pong".
func Ping(_ map[string]any) (any, error) {
	return "pong", nil
}

// Echo is used for testing: returns args.text after sleeping args.sleep
// seconds (sleep may be omitted, defaulting to 0).
func Echo(args map[string]any) (any, error) {
	text, err := argString(args, "text")
	if err != nil {
		return nil, err
	}
	sleepSec, err := argInt64Default(args, "sleep", 0)
	if err != nil {
		return nil, err
	}

	if sleepSec > 0 {
		time.Sleep(time.Duration(sleepSec) * time.Second)
	}

	return text, nil
}

// Memstat is used for testing: returns the process's size/rss/shared
// page counts, read from /proc/self/statm, to help detect memory leaks.
func Memstat(_ map[string]any) (any, error) {
	f, err := os.Open("/proc/self/statm")
	if err != nil {
		return nil, ioerr.FromSyscallErr("open", "/proc/self/statm", err)
	}
	defer f.Close()

	var size, rss, shr uint64
	if _, err := fmt.Fscanf(bufio.NewReader(f), "%d %d %d", &size, &rss, &shr); err != nil {
		return nil, ioerr.Invalid("bad statm format")
	}

	return map[string]any{
		"size": size,
		"rss":  rss,
		"shr":  shr,
	}, nil
}

// Crash is used for testing: terminates the process with exit status 1.
func Crash(_ map[string]any) (any, error) {
	os.Exit(1)
	return nil, nil
}
