package ioerr

import (
	"fmt"
	"testing"

	"golang.org/x/sys/unix"
)

func TestInvalidCarriesEinval(t *testing.T) {
	err := Invalid("bad argument %q", "path")
	if err.Code != int(unix.EINVAL) {
		t.Fatalf("got code %d, want EINVAL", err.Code)
	}
	if err.Error() != `bad argument "path"` {
		t.Fatalf("got message %q", err.Error())
	}
}

func TestAgainCarriesEagain(t *testing.T) {
	err := Again("queue full")
	if err.Code != int(unix.EAGAIN) {
		t.Fatalf("got code %d, want EAGAIN", err.Code)
	}
}

func TestFromSyscallErrPreservesErrno(t *testing.T) {
	err := FromSyscallErr("open", "/no/such/file", unix.ENOENT)
	if err.Code != int(unix.ENOENT) {
		t.Fatalf("got code %d, want ENOENT", err.Code)
	}
}

func TestFromSyscallErrFallsBackToEIOForNonErrno(t *testing.T) {
	err := FromSyscallErr("open", "/tmp/x", fmt.Errorf("something went wrong"))
	if err.Code != int(unix.EIO) {
		t.Fatalf("got code %d, want EIO", err.Code)
	}
}

func TestFromSyscallErrNilReturnsNil(t *testing.T) {
	if err := FromSyscallErr("open", "/tmp/x", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
