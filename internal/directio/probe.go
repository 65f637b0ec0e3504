package directio

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/oVirt/ioprocess-go/internal/ioerr"
)

// candidateBlockSizes is the ordered list of sizes probe_block_size tries,
// smallest first, exactly as the original implementation does.
var candidateBlockSizes = []int{1, 512, 4096}

// ProbeBlockSize determines the smallest I/O block size the filesystem
// backing dir will accept for O_DIRECT|O_DSYNC writes, by creating a
// hidden probe file and attempting single pwrite calls of increasing
// size at offset 0. The probe file is always removed; removal failure is
// logged by the caller (the handler), not returned as an error here.
func ProbeBlockSize(dir string, warnf func(format string, args ...any)) (int, error) {
	probePath := fmt.Sprintf("%s/.prob-%s", dir, uuid.NewString())

	fd, err := unix.Open(probePath, unix.O_CREAT|unix.O_EXCL|unix.O_WRONLY|unix.O_DIRECT|unix.O_DSYNC, 0600)
	if err != nil {
		return 0, ioerr.FromSyscallErr("open", probePath, err)
	}
	defer func() {
		if cerr := unix.Close(fd); cerr != nil {
			warnf("probe: closing probe file %s: %s", probePath, cerr)
		}
		if rerr := unix.Unlink(probePath); rerr != nil {
			warnf("probe: deleting probe file %s: %s", probePath, rerr)
		}
	}()

	buf := alignedBuffer(4096, 4096)

	for _, size := range candidateBlockSizes {
		n, werr := pwriteRetryEINTR(fd, buf[:size], 0)
		if werr == nil {
			_ = n
			return size, nil
		}
		if werr == unix.EINVAL {
			continue
		}
		return 0, ioerr.FromSyscallErr("pwrite", probePath, werr)
	}

	return 0, ioerr.ErrDirectIOUnsupported
}

// pwriteRetryEINTR wraps unix.Pwrite, retrying on EINTR as spec.md §4.3
// requires.
func pwriteRetryEINTR(fd int, buf []byte, offset int64) (int, error) {
	for {
		n, err := unix.Pwrite(fd, buf, offset)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}
