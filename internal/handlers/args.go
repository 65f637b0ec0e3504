package handlers

import (
	"github.com/oVirt/ioprocess-go/internal/ioerr"
)

// argString extracts a required string argument, the Go equivalent of the
// original's safeGetArgValue(args, name, JT_STRING, ...).
func argString(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", ioerr.Invalid("arg '%s' was not found in list", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", ioerr.Invalid("Param '%s' has the wrong type", name)
	}
	return s, nil
}

// argInt64 extracts a required integer argument. JSON numbers decode as
// float64 through encoding/json's map[string]any path, so the conversion
// happens here rather than at the call site.
func argInt64(args map[string]any, name string) (int64, error) {
	v, ok := args[name]
	if !ok {
		return 0, ioerr.Invalid("arg '%s' was not found in list", name)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, ioerr.Invalid("Param '%s' has the wrong type", name)
	}
	return int64(f), nil
}

// argInt64Default extracts an optional integer argument, returning def
// when absent.
func argInt64Default(args map[string]any, name string, def int64) (int64, error) {
	if _, ok := args[name]; !ok {
		return def, nil
	}
	return argInt64(args, name)
}

// argBool extracts a required boolean argument.
func argBool(args map[string]any, name string) (bool, error) {
	v, ok := args[name]
	if !ok {
		return false, ioerr.Invalid("arg '%s' was not found in list", name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, ioerr.Invalid("Param '%s' has the wrong type", name)
	}
	return b, nil
}

// argBoolDefault extracts an optional boolean argument, returning def
// when absent.
func argBoolDefault(args map[string]any, name string, def bool) (bool, error) {
	if _, ok := args[name]; !ok {
		return def, nil
	}
	return argBool(args, name)
}
