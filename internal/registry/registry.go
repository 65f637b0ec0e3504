// Package registry maps method names to handlers. It is populated once at
// startup and is read-only thereafter, the Go equivalent of the original
// ioprocess's flat ExportedFunctionEntry table
// (original_source/src/exported-functions.h).
package registry

import (
	"github.com/oVirt/ioprocess-go/internal/ioerr"
)

// Handler is the contract every registered method implements: given the
// request's args (always non-nil; the empty map when absent), it returns
// a result value or an error.
type Handler func(args map[string]any) (any, error)

// Registry is a read-only-after-construction method-name -> Handler map.
type Registry struct {
	handlers map[string]Handler
}

// New builds an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under name. Intended to be called only during
// startup, before the registry is shared across goroutines.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Lookup resolves a method name to its handler. An unknown method name
// returns ioerr.ErrUnknownMethod; the caller reports it as EINVAL naming
// the method.
func (r *Registry) Lookup(name string) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, ioerr.ErrUnknownMethod
	}
	return h, nil
}
