package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/huangsam/studytrack/internal/contract"
)

// ErrSinkClosed is returned when writing to a sink after Close.
var ErrSinkClosed = errors.New("output sink is closed")

// Sink owns one output destination: stdout or a file.
// The caller that opens a sink must Close it before opening another
// for the same destination. Close is idempotent.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	file   *os.File // nil for stdout
	path   string
	closed bool
}

var _ io.WriteCloser = &Sink{} // Compile-time check

// OpenSink opens the destination for path. An empty path selects stdout,
// which is never closed by the sink.
func OpenSink(path string) (*Sink, error) {
	file, err := contract.SelectOutputFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file %s: %w", path, err)
	}
	if path == "" {
		return &Sink{w: file}, nil
	}
	return &Sink{w: file, file: file, path: path}, nil
}

// NewSink wraps an existing writer. Closing the sink does not close w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrSinkClosed
	}
	return s.w.Write(p)
}

// Close releases the destination. Calling Close more than once is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// Path returns the file path of the sink, empty for stdout or wrapped writers.
func (s *Sink) Path() string {
	return s.path
}

// IsFile reports whether the sink writes to a file it owns.
func (s *Sink) IsFile() bool {
	return s.file != nil
}
