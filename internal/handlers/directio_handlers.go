package handlers

import (
	"encoding/base64"

	"github.com/oVirt/ioprocess-go/internal/directio"
	"github.com/oVirt/ioprocess-go/internal/ioerr"
	"github.com/oVirt/ioprocess-go/internal/logging"
)

// DirectIOHandlers binds the direct-I/O engine's operations to the
// registry, closing over the log pipeline so probe file cleanup failures
// can be logged rather than reported as errors (spec.md §4.3: "deletion
// failure is logged, not reported").
type DirectIOHandlers struct {
	Log *logging.Pipeline
}

// ReadFile implements the "readfile" method.
func (h *DirectIOHandlers) ReadFile(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	direct, err := argBoolDefault(args, "direct", false)
	if err != nil {
		return nil, err
	}

	b64, rerr := directio.ReadFile(path, direct)
	if rerr != nil {
		return nil, rerr
	}
	return b64, nil
}

// WriteFile implements the "writefile" method.
func (h *DirectIOHandlers) WriteFile(args map[string]any) (any, error) {
	path, err := argString(args, "path")
	if err != nil {
		return nil, err
	}
	dataStr, err := argString(args, "data")
	if err != nil {
		return nil, err
	}
	direct, err := argBoolDefault(args, "direct", false)
	if err != nil {
		return nil, err
	}

	data, derr := base64.StdEncoding.DecodeString(dataStr)
	if derr != nil {
		return nil, ioerr.Invalid("data is not valid base64: %s", derr)
	}

	if werr := directio.WriteFile(path, data, direct); werr != nil {
		return nil, werr
	}
	return nil, nil
}

// ProbeBlockSize implements the "probe_block_size" method.
func (h *DirectIOHandlers) ProbeBlockSize(args map[string]any) (any, error) {
	dir, err := argString(args, "dir")
	if err != nil {
		return nil, err
	}

	size, perr := directio.ProbeBlockSize(dir, func(format string, a ...any) {
		h.Log.Warning("directio", format, a...)
	})
	if perr != nil {
		return nil, perr
	}
	return int64(size), nil
}
