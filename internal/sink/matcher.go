package sink

import (
	"regexp"
	"strings"
)

// Matcher is a compiled pattern set queried as a single "any match"
// predicate. The patterns are combined into one alternation so a line
// is scanned by one RE2 program regardless of how many patterns the
// sink declares, rather than looping over per-pattern matches.
type Matcher struct {
	patterns []string
	combined *regexp.Regexp
}

// PatternError pairs a pattern string with its compile failure.
type PatternError struct {
	Pattern string
	Err     error
}

// CompileMatcher compiles a pattern set. Each pattern is compiled
// individually first so failures are attributed to the pattern that
// caused them; the returned slice holds every bad pattern in
// declaration order.
func CompileMatcher(patterns []string) (*Matcher, []PatternError) {
	var errs []PatternError
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, PatternError{Pattern: p, Err: err})
		}
	}
	if errs != nil {
		return nil, errs
	}

	alts := make([]string, len(patterns))
	for i, p := range patterns {
		alts[i] = "(?:" + p + ")"
	}
	combined, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		// Individually valid patterns can only fail combined compilation
		// via resource limits on the merged program.
		return nil, []PatternError{{Err: err}}
	}

	return &Matcher{patterns: patterns, combined: combined}, nil
}

// Match reports whether any pattern in the set matches line.
func (m *Matcher) Match(line []byte) bool {
	return m.combined.Match(line)
}

// MatchString is Match for string input.
func (m *Matcher) MatchString(line string) bool {
	return m.combined.MatchString(line)
}

// Patterns returns the pattern strings in declaration order.
func (m *Matcher) Patterns() []string {
	return m.patterns
}
