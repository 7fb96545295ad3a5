// Package router implements the line-dispatch loop and the buffered
// output discipline around it.
//
// Processing is single-threaded and sequential: one line is fully
// dispatched before the next is read. Per line, sinks are evaluated in
// registry order and the first effective match receives the line; a
// line no sink claims goes to the default output when pass-through is
// enabled, and is dropped otherwise. At most one destination ever
// receives a given line.
//
// The default output tolerates a downstream consumer that stops
// reading: a broken pipe there surfaces as ErrDownstreamClosed, which
// callers treat as normal termination. The same condition on a sink
// file is a fatal WriteError, since files are not expected to
// disappear mid-run.
package router
