package directio

import (
	"encoding/base64"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/oVirt/ioprocess-go/internal/ioerr"
)

// WriteFile writes data (already base64-decoded by the caller) to path,
// truncating/creating it first. When direct is true the file is opened
// with O_DIRECT and the payload is copied into a freshly allocated
// SafeAlign-aligned buffer before writing; the buffer is written unpadded
// even when its length isn't block-size aligned — the backing filesystem
// is relied on to accept the short final O_DIRECT write, matching the
// original implementation's actual behavior (see DESIGN.md).
func WriteFile(path string, data []byte, direct bool) error {
	flags := unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC
	if direct {
		flags |= unix.O_DIRECT
	}

	fd, err := unix.Open(path, flags, 0644)
	if err != nil {
		return ioerr.FromSyscallErr("open", path, err)
	}
	defer unix.Close(fd)

	buf := data
	if direct {
		aligned := alignedBuffer(len(data), SafeAlign)
		copy(aligned, data)
		buf = aligned
	}

	written := 0
	for written < len(buf) {
		n, werr := unix.Write(fd, buf[written:])
		if werr != nil {
			if werr == unix.EINTR {
				continue
			}
			return ioerr.FromSyscallErr("write", path, werr)
		}
		written += n
	}

	if err := unix.Fsync(fd); err != nil {
		return ioerr.FromSyscallErr("fsync", path, err)
	}

	return nil
}

// ReadFile reads the whole of path and returns it base64-encoded, opening
// with O_DIRECT when direct is true. The read loop is bounded by the
// stat-reported size rather than by "read returned 0": under O_DIRECT on
// a file whose size isn't block-aligned, the final read is short and the
// next read would fail with EINVAL, so looping on a zero return would be
// wrong.
func ReadFile(path string, direct bool) (string, error) {
	flags := unix.O_RDONLY
	if direct {
		flags |= unix.O_DIRECT
	}

	fd, err := unix.Open(path, flags, 0)
	if err != nil {
		return "", ioerr.FromSyscallErr("open", path, err)
	}
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return "", ioerr.FromSyscallErr("fstat", path, err)
	}

	var svfs unix.Statfs_t
	if err := unix.Fstatfs(fd, &svfs); err != nil {
		return "", ioerr.FromSyscallErr("fstatfs", path, err)
	}

	bufSize := int(svfs.Bsize)
	if bufSize <= 0 {
		bufSize = SafeAlign
	}

	// This alignment only matters for direct reads, but it costs nothing
	// to apply it for regular reads as well.
	buf := alignedBuffer(bufSize, SafeAlign)

	var out strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &out)

	totalRead := int64(0)
	for totalRead < st.Size {
		n, rerr := unix.Read(fd, buf)
		if rerr != nil {
			if rerr == unix.EINTR {
				continue
			}
			// Discard partial encoder state: the operation failed, so
			// there is no partial result to return.
			return "", ioerr.FromSyscallErr("read", path, rerr)
		}
		if n == 0 {
			break
		}

		totalRead += int64(n)
		if _, werr := enc.Write(buf[:n]); werr != nil {
			return "", ioerr.FromSyscallErr("base64-encode", path, werr)
		}
	}

	if err := enc.Close(); err != nil {
		return "", ioerr.FromSyscallErr("base64-encode-close", path, err)
	}

	return out.String(), nil
}
