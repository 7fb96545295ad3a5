package sink

import (
	"fmt"
	"path/filepath"

	"github.com/rsink-io/rsink/internal/config"
)

// Sink is one validated filter rule: a compiled pattern set bound to a
// destination, with an optional inverted match decision.
type Sink struct {
	Name    string
	Matcher *Matcher
	Invert  bool
	Dest    Destination

	// FileName is the destination as declared in configuration, kept
	// for summaries and error messages. config.DiscardSentinel for
	// discard sinks.
	FileName string
}

// Matches reports the sink's effective match decision for line: the
// raw pattern-set result, negated when Invert is set.
func (s *Sink) Matches(line []byte) bool {
	return s.Matcher.Match(line) != s.Invert
}

// Registry is the ordered sink list built from a configuration
// document. Order is exactly declaration order and determines
// first-match-wins precedence; it is never reordered. The registry is
// immutable after Build apart from the open file handles it owns.
//
// Sink names are not required to be unique. A duplicated name gets no
// special treatment: each occurrence is a distinct sink evaluated at
// its declared position.
type Registry struct {
	Sinks []*Sink
}

// BuildOptions controls registry construction.
type BuildOptions struct {
	// DryRun compiles and validates every pattern set but creates no
	// output files; all destinations are Discard. Used by
	// --validate-only.
	DryRun bool

	// BaseDir, when set, resolves relative destination paths against
	// this directory instead of the working directory.
	BaseDir string
}

// Build constructs a Registry from the declarations in doc.
//
// Every declaration is validated before any output file is created,
// and all validation failures are reported together in a *BuildError.
// If any declaration is invalid the build fails as a whole: no partial
// registry, no files on disk.
func Build(doc *config.Document, opts BuildOptions) (*Registry, error) {
	var errs []ValidationError

	matchers := make([]*Matcher, len(doc.Sinks))
	for i, decl := range doc.Sinks {
		name := decl.Name
		if name == "" {
			name = fmt.Sprintf("sink[%d]", i)
			errs = append(errs, ValidationError{
				Sink:    name,
				Code:    ErrEmptyName,
				Message: "sink name must not be empty",
			})
		}
		if len(decl.Patterns) == 0 {
			errs = append(errs, ValidationError{
				Sink:    name,
				Code:    ErrNoPatterns,
				Message: "sink declares no patterns",
			})
			continue
		}
		m, compileErrs := CompileMatcher(decl.Patterns)
		if compileErrs != nil {
			for _, pe := range compileErrs {
				errs = append(errs, ValidationError{
					Sink:    name,
					Code:    ErrInvalidPattern,
					Message: pe.Err.Error(),
					Pattern: pe.Pattern,
				})
			}
			continue
		}
		matchers[i] = m
	}

	if len(errs) > 0 {
		return nil, &BuildError{Errors: errs}
	}

	reg := &Registry{Sinks: make([]*Sink, 0, len(doc.Sinks))}
	for i, decl := range doc.Sinks {
		s := &Sink{
			Name:     decl.Name,
			Matcher:  matchers[i],
			Invert:   decl.Inverted(),
			Dest:     Discard,
			FileName: decl.FileName,
		}
		if !opts.DryRun && decl.FileName != config.DiscardSentinel {
			path := decl.FileName
			if opts.BaseDir != "" && !filepath.IsAbs(path) {
				path = filepath.Join(opts.BaseDir, path)
			}
			f, err := CreateFile(path)
			if err != nil {
				reg.Close()
				return nil, &BuildError{Errors: []ValidationError{{
					Sink:    decl.Name,
					Code:    ErrCreateFile,
					Message: err.Error(),
					Path:    decl.FileName,
				}}}
			}
			s.Dest = f
		}
		reg.Sinks = append(reg.Sinks, s)
	}

	return reg, nil
}

// Close closes every file-backed destination, keeping the first error.
func (r *Registry) Close() error {
	var first error
	for _, s := range r.Sinks {
		if err := s.Dest.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
