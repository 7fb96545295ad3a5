package router

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rsink-io/rsink/internal/sink"
)

const (
	readBufferSize = 64 * 1024
	maxLineSize    = 4 * 1024 * 1024
)

// Stats counts dispatch outcomes for one run.
type Stats struct {
	Lines   uint64 // lines read from the input stream
	Matched uint64 // lines claimed by a sink (including discard sinks)
	Passed  uint64 // lines passed through to the default output
}

// Router dispatches a sequential stream of lines against an ordered
// sink registry: first effective match wins, unmatched lines fall
// through to the default output when pass-through is enabled.
type Router struct {
	registry    *sink.Registry
	out         *OutputManager
	passThrough bool
	stats       Stats
}

// New creates a Router. When passThrough is false the default output
// is never written and unmatched lines are dropped.
func New(registry *sink.Registry, out *OutputManager, passThrough bool) *Router {
	return &Router{registry: registry, out: out, passThrough: passThrough}
}

// Run reads lines from in until exhaustion, dispatching each exactly
// once, then flushes every buffer. The returned Stats are valid even
// when an error is returned.
//
// ErrDownstreamClosed is returned when the default output's consumer
// stops reading; sink file buffers are still flushed before returning
// so already matched lines reach disk.
func (r *Router) Run(in io.Reader) (Stats, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, readBufferSize), maxLineSize)

	for scanner.Scan() {
		r.stats.Lines++
		if err := r.Dispatch(scanner.Bytes()); err != nil {
			r.out.flushSinks()
			return r.stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		r.out.flushSinks()
		return r.stats, fmt.Errorf("reading input: %w", err)
	}

	return r.stats, r.out.FlushAll()
}

// Dispatch routes a single line. Sinks are evaluated in registry
// order; the first sink whose effective match is true receives the
// line and no later sink observes it. Empty lines are ordinary input;
// no trimming or normalization is applied.
func (r *Router) Dispatch(line []byte) error {
	for _, s := range r.registry.Sinks {
		if s.Matches(line) {
			r.stats.Matched++
			if err := s.Dest.WriteLine(line); err != nil {
				return &WriteError{Sink: s.Name, Path: s.FileName, Err: err}
			}
			return nil
		}
	}
	if !r.passThrough {
		// Unclaimed line with pass-through disabled: dropped, not an error.
		return nil
	}
	r.stats.Passed++
	return r.out.WriteDefault(line)
}

// Stats returns the counters accumulated so far.
func (r *Router) Stats() Stats {
	return r.stats
}
