// Package logging implements the helper's diagnostic text pipeline: every
// task formats a line and pushes it onto a channel instead of writing to
// stderr directly, so exactly one goroutine ever touches the stream. The
// shape is the teacher's SSEHub (server/sse.go) turned inside out: instead
// of one goroutine fanning a single incoming channel out to many
// subscriber channels, one goroutine fans many callers' Printf-style
// calls in to a single io.Writer.
package logging

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Level names the severity of a log line, matching the original helper's
// TRACE/DEBUG/INFO/WARNING/ERROR vocabulary.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	default:
		return "ERROR"
	}
}

type entry struct {
	level  Level
	domain string
	text   string
}

// Pipeline is the single-writer diagnostic log stream. Zero value is not
// usable; construct with New.
type Pipeline struct {
	queue     chan entry
	done      chan struct{}
	traceFlag atomic.Bool
}

// New starts the log-writer goroutine, which drains queue and writes
// "LEVEL|domain|text\n" lines to w until Close is called. The queue is
// generously buffered so that log-site callers rarely block behind a slow
// stderr; when it is full the caller blocks until the writer makes room,
// and no line is ever dropped (unlike the teacher's sseClient buffer,
// where slow clients drop events — diagnostics are not hot-path).
func New(w io.Writer) *Pipeline {
	p := &Pipeline{
		queue: make(chan entry, 4096),
		done:  make(chan struct{}),
	}
	go p.run(w)
	return p
}

func (p *Pipeline) run(w io.Writer) {
	defer close(p.done)
	for e := range p.queue {
		fmt.Fprintf(w, "%s|%s|%s\n", e.level, e.domain, e.text)
	}
}

// SetTraceEnabled gates whether Trace-level calls are emitted. It is safe
// to call concurrently with Trace/Debug/Info/Warning/Error.
func (p *Pipeline) SetTraceEnabled(enabled bool) {
	p.traceFlag.Store(enabled)
}

func (p *Pipeline) push(level Level, domain, text string) {
	select {
	case p.queue <- entry{level: level, domain: domain, text: text}:
	default:
		// Queue momentarily full: block rather than drop, since log
		// messages are infrequent relative to handler throughput.
		p.queue <- entry{level: level, domain: domain, text: text}
	}
}

// Trace logs a trace-level line if tracing is enabled.
func (p *Pipeline) Trace(domain, format string, args ...any) {
	if !p.traceFlag.Load() {
		return
	}
	p.push(LevelTrace, domain, fmt.Sprintf(format, args...))
}

// Debug logs a debug-level line.
func (p *Pipeline) Debug(domain, format string, args ...any) {
	p.push(LevelDebug, domain, fmt.Sprintf(format, args...))
}

// Info logs an info-level line.
func (p *Pipeline) Info(domain, format string, args ...any) {
	p.push(LevelInfo, domain, fmt.Sprintf(format, args...))
}

// Warning logs a warning-level line.
func (p *Pipeline) Warning(domain, format string, args ...any) {
	p.push(LevelWarning, domain, fmt.Sprintf(format, args...))
}

// Error logs an error-level line.
func (p *Pipeline) Error(domain, format string, args ...any) {
	p.push(LevelError, domain, fmt.Sprintf(format, args...))
}

// Close signals the log writer to drain remaining entries and stop, then
// waits for it to finish. Safe to call once.
func (p *Pipeline) Close() {
	close(p.queue)
	<-p.done
}
