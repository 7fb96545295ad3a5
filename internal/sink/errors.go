package sink

import (
	"fmt"
	"strings"
)

// Validation error codes (E1xx: configuration, E2xx: resources).
const (
	ErrInvalidPattern = "E101" // pattern does not compile
	ErrNoPatterns     = "E102" // sink declares no patterns
	ErrEmptyName      = "E103" // sink name is empty
	ErrCreateFile     = "E201" // output file or parent dir creation failed
)

// ValidationError describes a single problem with a sink declaration.
type ValidationError struct {
	Sink    string // sink name, or its index rendered as "sink[i]" when unnamed
	Code    string
	Message string
	Pattern string // offending pattern, for ErrInvalidPattern
	Path    string // offending path, for ErrCreateFile
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("[%s] sink %q: pattern %q: %s", e.Code, e.Sink, e.Pattern, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("[%s] sink %q: %s: %s", e.Code, e.Sink, e.Path, e.Message)
	}
	return fmt.Sprintf("[%s] sink %q: %s", e.Code, e.Sink, e.Message)
}

// BuildError aggregates every validation error found during a registry
// build. Construction is all-or-nothing: if this error is returned, no
// output file was created.
type BuildError struct {
	Errors []ValidationError
}

func (e *BuildError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d sink configuration errors:", len(e.Errors))
	for _, ve := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(ve.Error())
	}
	return b.String()
}
