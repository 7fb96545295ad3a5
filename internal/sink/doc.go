// Package sink implements the filter model: named pattern-set matchers
// bound to output destinations, assembled into an ordered registry.
//
// Registry construction is two-phase. Every declaration's pattern set
// is compiled first and all compilation failures are collected, so a
// config author sees every bad pattern in one run. Only when the whole
// document compiles are output files created; a dry build stops before
// that point and touches nothing on disk.
//
// A sink's destination is one of exactly two kinds: Discard, which
// consumes writes, or File, an exclusively owned buffered writer over
// a created file. There is no nil destination.
package sink
