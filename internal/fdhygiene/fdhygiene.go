// Package fdhygiene closes every file descriptor the helper inherited from
// its parent except the ones it was explicitly handed, porting the
// original ioprocess's closeUnrelatedFDs (original_source/src/ioprocess.c)
// to Go.
package fdhygiene

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// CloseUnrelated enumerates /proc/self/fd and closes every descriptor not
// present in keep. EBADF on close is tolerated, matching the original's
// "continue" on that specific errno (a descriptor listed may have been
// closed already by the time it is reached). The descriptor used to
// enumerate /proc/self/fd is always skipped.
func CloseUnrelated(keep map[int]struct{}) error {
	dir, err := os.Open("/proc/self/fd")
	if err != nil {
		return fmt.Errorf("fdhygiene: opening /proc/self/fd: %w", err)
	}
	defer dir.Close()

	dirFD := int(dir.Fd())

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return fmt.Errorf("fdhygiene: reading /proc/self/fd: %w", err)
	}

	for _, name := range names {
		fdNum, err := strconv.Atoi(name)
		if err != nil {
			continue
		}

		if fdNum == dirFD {
			continue
		}

		if _, ok := keep[fdNum]; ok {
			continue
		}

		if err := unix.Close(fdNum); err != nil {
			if err == unix.EBADF {
				continue
			}
			return fmt.Errorf("fdhygiene: closing fd %d: %w", fdNum, err)
		}
	}

	return nil
}
