package router

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/rsink-io/rsink/internal/sink"
)

// defaultBufferSize is the buffer in front of the default output. The
// default path typically carries the bulk of a stream when sinks skim
// a minority of lines, so it gets the largest buffer.
const defaultBufferSize = 4 * 1024 * 1024

// ErrDownstreamClosed reports that the consumer of the default output
// stopped reading. In a pipeline this is expected (e.g. `head` closing
// early) and callers treat it as successful termination.
var ErrDownstreamClosed = errors.New("default output consumer closed the stream")

// WriteError is a failed write or flush on a sink's file destination.
// Sink-path failures are fatal and carry the sink identity.
type WriteError struct {
	Sink string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing to output file %q for sink %q: %v", e.Path, e.Sink, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// OutputManager owns the buffered writer for the default output and
// coordinates the final flush across every destination. Each sink's
// file destination keeps its own independent buffer; a write to one
// never touches another's state.
type OutputManager struct {
	registry *sink.Registry
	def      *bufio.Writer
}

// NewOutputManager wraps def, the default output stream, in a large
// buffer. def may be nil when pass-through is disabled.
func NewOutputManager(registry *sink.Registry, def io.Writer) *OutputManager {
	m := &OutputManager{registry: registry}
	if def != nil {
		m.def = bufio.NewWriterSize(def, defaultBufferSize)
	}
	return m
}

// WriteDefault writes one line plus terminator to the default output.
// Two writes, not one formatted write. A broken pipe is reported as
// ErrDownstreamClosed.
func (m *OutputManager) WriteDefault(line []byte) error {
	if _, err := m.def.Write(line); err != nil {
		return m.defaultWriteError(err)
	}
	if _, err := m.def.Write(newline); err != nil {
		return m.defaultWriteError(err)
	}
	return nil
}

var newline = []byte{'\n'}

func (m *OutputManager) defaultWriteError(err error) error {
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) {
		return ErrDownstreamClosed
	}
	return fmt.Errorf("writing to default output: %w", err)
}

// FlushAll flushes every sink file buffer and then the default buffer.
// Sink flush failures identify the sink; a broken pipe on the default
// flush is ErrDownstreamClosed like any other default-path write.
func (m *OutputManager) FlushAll() error {
	for _, s := range m.registry.Sinks {
		if err := s.Dest.Flush(); err != nil {
			return &WriteError{Sink: s.Name, Path: s.FileName, Err: err}
		}
	}
	if m.def != nil {
		if err := m.def.Flush(); err != nil {
			return m.defaultWriteError(err)
		}
	}
	return nil
}

// flushSinks drains the sink file buffers, ignoring errors. Used on
// the shutdown path after a fatal error so buffered matched lines are
// not lost while the original error is preserved.
func (m *OutputManager) flushSinks() {
	for _, s := range m.registry.Sinks {
		_ = s.Dest.Flush()
	}
}
