package handlers

import (
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/oVirt/ioprocess-go/internal/ioerr"
)

// statMap converts a unix.Stat_t into the raw POSIX field-name map
// spec.md §6 requires ("stat/lstat/statvfs return the raw POSIX field
// names as map keys"), matching original_source/src/exported-functions.c's
// stat_map.
func statMap(st *unix.Stat_t) map[string]any {
	return map[string]any{
		"st_ino":    int64(st.Ino),
		"st_dev":    int64(st.Dev),
		"st_mode":   int64(st.Mode),
		"st_nlink":  int64(st.Nlink),
		"st_uid":    int64(st.Uid),
		"st_gid":    int64(st.Gid),
		"st_size":   st.Size,
		"st_atime":  timespecToFloat(st.Atim),
		"st_mtime":  timespecToFloat(st.Mtim),
		"st_ctime":  timespecToFloat(st.Ctim),
		"st_blocks": st.Blocks,
	}
}

func timespecToFloat(ts unix.Timespec) float64 {
	return float64(ts.Sec) + float64(ts.Nsec)/1e9
}

// Stat implements the "stat" method.
func Stat(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}

	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, ioerr.FromSyscallErr("stat", path, err)
	}
	return statMap(&st), nil
}

// Lstat implements the "lstat" method.
func Lstat(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}

	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, ioerr.FromSyscallErr("lstat", path, err)
	}
	return statMap(&st), nil
}

// Statvfs implements the "statvfs" method.
func Statvfs(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}

	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, ioerr.FromSyscallErr("statvfs", path, err)
	}

	return map[string]any{
		"f_bsize":   int64(st.Bsize),
		"f_frsize":  int64(st.Frsize),
		"f_blocks":  int64(st.Blocks),
		"f_bfree":   int64(st.Bfree),
		"f_bavail":  int64(st.Bavail),
		"f_files":   int64(st.Files),
		"f_ffree":   int64(st.Ffree),
		// unix.Statfs_t has no Favail field on Linux; f_favail aliases
		// f_ffree rather than reporting the reserved-inode-aware count.
		"f_favail":  int64(st.Ffree),
		"f_fsid":    int64(st.Fsid.Val[0]),
		"f_flag":    int64(st.Flags),
		"f_namemax": float64(st.Namelen),
	}, nil
}

// Access implements the "access" method, honoring the caller's mode
// argument (spec.md §9 resolves an open question: an earlier variant
// hard-coded R_OK, this one does not).
func Access(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	mode, err := argInt64(args, "mode")
	if err != nil {
		return nil, err
	}

	if err := unix.Access(path, uint32(mode)); err != nil {
		return nil, ioerr.FromSyscallErr("access", path, err)
	}
	return true, nil
}

// Rename implements the "rename" method.
func Rename(args map[string]any) (any, error) {
	oldpath, err := argString(args, "oldpath")
	if err != nil {
		return nil, err
	}
	newpath, err := argString(args, "newpath")
	if err != nil {
		return nil, err
	}

	if err := unix.Rename(oldpath, newpath); err != nil {
		return nil, ioerr.FromSyscallErr("rename", oldpath, err)
	}
	return true, nil
}

// Unlink implements the "unlink" method.
func Unlink(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	if err := unix.Unlink(path); err != nil {
		return nil, ioerr.FromSyscallErr("unlink", path, err)
	}
	return true, nil
}

// Rmdir implements the "rmdir" method.
func Rmdir(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	if err := unix.Rmdir(path); err != nil {
		return nil, ioerr.FromSyscallErr("rmdir", path, err)
	}
	return true, nil
}

// Link implements the "link" method.
func Link(args map[string]any) (any, error) {
	oldpath, err := argString(args, "oldpath")
	if err != nil {
		return nil, err
	}
	newpath, err := argString(args, "newpath")
	if err != nil {
		return nil, err
	}
	if err := unix.Link(oldpath, newpath); err != nil {
		return nil, ioerr.FromSyscallErr("link", oldpath, err)
	}
	return true, nil
}

// Symlink implements the "symlink" method.
func Symlink(args map[string]any) (any, error) {
	oldpath, err := argString(args, "oldpath")
	if err != nil {
		return nil, err
	}
	newpath, err := argString(args, "newpath")
	if err != nil {
		return nil, err
	}
	if err := unix.Symlink(oldpath, newpath); err != nil {
		return nil, ioerr.FromSyscallErr("symlink", oldpath, err)
	}
	return true, nil
}

// Chmod implements the "chmod" method.
func Chmod(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	mode, err := argInt64(args, "mode")
	if err != nil {
		return nil, err
	}
	if err := unix.Chmod(path, uint32(mode)); err != nil {
		return nil, ioerr.FromSyscallErr("chmod", path, err)
	}
	return true, nil
}

// Lexists implements the "lexists" method: lstat failure of any kind
// means the path doesn't (usably) exist, so this never reports an error.
func Lexists(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return false, nil
	}
	return true, nil
}

// Mkdir implements the "mkdir" method.
func Mkdir(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	mode, err := argInt64(args, "mode")
	if err != nil {
		return nil, err
	}
	if err := unix.Mkdir(path, uint32(mode)); err != nil {
		return nil, ioerr.FromSyscallErr("mkdir", path, err)
	}
	return true, nil
}

// defaultTouchMode matches the original's S_IRUSR|S_IWUSR|S_IRGRP|S_IROTH
// (owner rw, group r, other r).
const defaultTouchMode = 0644

// Touch implements the "touch" method: opens (creating if needed) path
// with the caller's flags ORed onto O_WRONLY|O_CREAT, then updates its
// mtime/atime to now.
func Touch(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	flags, err := argInt64(args, "flags")
	if err != nil {
		return nil, err
	}
	mode, err := argInt64(args, "mode")
	if err != nil {
		return nil, err
	}

	if mode == 0 {
		mode = defaultTouchMode
	}

	allFlags := unix.O_WRONLY | unix.O_CREAT | int(flags)

	fd, err := unix.Open(path, allFlags, uint32(mode))
	if err != nil {
		return nil, ioerr.FromSyscallErr("open", path, err)
	}
	defer unix.Close(fd)

	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		return nil, ioerr.FromSyscallErr("futimens", path, err)
	}
	return true, nil
}

// defaultTruncateMode matches the original's S_IRUSR|S_IWUSR|S_IRGRP|S_IROTH
// (owner rw, group r, other r).
const defaultTruncateMode = 0644

// Truncate implements the "truncate" method.
func Truncate(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	size, err := argInt64(args, "size")
	if err != nil {
		return nil, err
	}
	mode, err := argInt64(args, "mode")
	if err != nil {
		return nil, err
	}
	excl, err := argBool(args, "excl")
	if err != nil {
		return nil, err
	}

	if mode == 0 {
		mode = defaultTruncateMode
	}

	flags := unix.O_CREAT | unix.O_WRONLY
	if excl {
		flags |= unix.O_EXCL
	}

	fd, err := unix.Open(path, flags, uint32(mode))
	if err != nil {
		return nil, ioerr.FromSyscallErr("open", path, err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, size); err != nil {
		return nil, ioerr.FromSyscallErr("ftruncate", path, err)
	}
	return true, nil
}

// FsyncPath implements the "fsyncPath" method.
func FsyncPath(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}

	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, ioerr.FromSyscallErr("open", path, err)
	}
	defer unix.Close(fd)

	if err := unix.Fsync(fd); err != nil {
		return nil, ioerr.FromSyscallErr("fsync", path, err)
	}
	return nil, nil
}

// Listdir implements the "listdir" method, excluding "." and "..".
func Listdir(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, ioerr.FromSyscallErr("opendir", path, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Glob implements the "glob" method. A no-match result is not an error —
// it produces an empty list, matching the original's GLOB_NOMATCH
// handling.
func Glob(args map[string]any) (any, error) {
	pattern, err := argString(args, "pattern")
	if err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, ioerr.Invalid("bad glob pattern %q: %s", pattern, err)
	}
	if matches == nil {
		matches = []string{}
	}
	return matches, nil
}
