package pipeline

import (
	"os"
	"sync"
)

// onceCloser closes an *os.File at most once no matter how many
// goroutines call Close concurrently, satisfying spec.md §3's invariant
// "the inbound file descriptor is closed at most once". Both the
// dispatcher (on normal/EOF shutdown) and the writer (on a fatal write
// error, to stop the reader) may need to trigger this close.
type onceCloser struct {
	once sync.Once
	file *os.File
	err  error
}

func newOnceCloser(f *os.File) *onceCloser {
	return &onceCloser{file: f}
}

func (c *onceCloser) Close() error {
	c.once.Do(func() {
		c.err = c.file.Close()
	})
	return c.err
}
