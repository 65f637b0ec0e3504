package handlers

import (
	"github.com/oVirt/ioprocess-go/internal/logging"
	"github.com/oVirt/ioprocess-go/internal/registry"
)

// RegisterAll populates r with every method in spec.md §6's method
// surface: the testing methods and the production filesystem operations.
func RegisterAll(r *registry.Registry, log *logging.Pipeline) {
	r.Register("ping", Ping)
	r.Register("echo", Echo)
	r.Register("memstat", Memstat)
	r.Register("crash", Crash)

	r.Register("stat", Stat)
	r.Register("lstat", Lstat)
	r.Register("statvfs", Statvfs)
	r.Register("access", Access)
	r.Register("rename", Rename)
	r.Register("unlink", Unlink)
	r.Register("rmdir", Rmdir)
	r.Register("link", Link)
	r.Register("symlink", Symlink)
	r.Register("chmod", Chmod)
	r.Register("mkdir", Mkdir)
	r.Register("touch", Touch)
	r.Register("truncate", Truncate)
	r.Register("lexists", Lexists)
	r.Register("listdir", Listdir)
	r.Register("glob", Glob)
	r.Register("fsyncPath", FsyncPath)

	dio := &DirectIOHandlers{Log: log}
	r.Register("readfile", dio.ReadFile)
	r.Register("writefile", dio.WriteFile)
	r.Register("probe_block_size", dio.ProbeBlockSize)
}
