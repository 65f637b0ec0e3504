// Package ioerr defines the error vocabulary shared by the registry,
// handlers and pipeline: every error that can reach a Response carries an
// errno-like code, the same way the teacher's server package carries
// sentinel errors (ErrWorkerDead, ErrWorkerDraining) for its own
// worker-lifecycle failures.
package ioerr

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrQueueFull identifies an admission-overflow rejection, when a
	// request would exceed max_threads+max_queued. The pool logs it and
	// wraps it as an EAGAIN Errno via Again; it never propagates as a
	// plain error since Submit has no error return.
	ErrQueueFull = errors.New("ioprocess: request queue full")

	// ErrUnknownMethod is returned by the registry when no handler is
	// registered for a method name.
	ErrUnknownMethod = errors.New("ioprocess: unknown method")
)

// ErrDirectIOUnsupported is returned by the block-size probe when every
// candidate size is rejected with EINVAL.
var ErrDirectIOUnsupported = Invalid("direct I/O unsupported")

// Errno wraps an errno-like code with a human-readable message, the unit
// that ends up as a Response's (errcode, errstr) pair.
type Errno struct {
	Code int
	Msg  string
}

func (e *Errno) Error() string { return e.Msg }

// FromSyscallErr converts a syscall-origin error into an Errno, preserving
// the real errno value so the parent sees exactly what the kernel said.
func FromSyscallErr(op, path string, err error) *Errno {
	if err == nil {
		return nil
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return &Errno{Code: int(errno), Msg: fmt.Sprintf("%s %s: %s", op, path, unix.ErrnoName(errno))}
	}
	return &Errno{Code: int(unix.EIO), Msg: fmt.Sprintf("%s %s: %s", op, path, err)}
}

// Invalid builds an EINVAL Errno with a descriptive message, used for
// argument errors and unknown-method errors.
func Invalid(format string, args ...any) *Errno {
	return &Errno{Code: int(unix.EINVAL), Msg: fmt.Sprintf(format, args...)}
}

// Again builds an EAGAIN Errno, used for worker-pool overflow rejections.
func Again(msg string) *Errno {
	return &Errno{Code: int(unix.EAGAIN), Msg: msg}
}
