// Package config defines the external YAML sink document and its loader.
//
// The document is an ordered list of sink records under a top-level
// "sinks" key. Record order is significant: it becomes the routing
// precedence of the built registry. The literal file_name "null" is the
// discard sentinel and is kept for compatibility with existing configs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DiscardSentinel is the file_name value that marks a sink as having no
// file destination. Matched lines are consumed but written nowhere.
const DiscardSentinel = "null"

// Sink is a single sink record as declared in the YAML document.
type Sink struct {
	// Name identifies the sink in logs and error messages. Names are
	// not required to be unique; duplicates route in declaration order
	// like any other sinks.
	Name string `yaml:"name"`

	// FileName is the output path for matched lines, or DiscardSentinel
	// for no output.
	FileName string `yaml:"file_name"`

	// Patterns is the ordered list of regular expressions. The sink
	// matches a line when any pattern matches it.
	Patterns []string `yaml:"patterns"`

	// Invert flips the sink's match decision. Absent means false.
	Invert *bool `yaml:"invert,omitempty"`
}

// Inverted reports the effective invert flag, defaulting to false when
// the document omits it.
func (s Sink) Inverted() bool {
	return s.Invert != nil && *s.Invert
}

// Document is the root of the sink configuration file.
type Document struct {
	Sinks []Sink `yaml:"sinks"`
}

// LoadError describes a failure to read or parse a configuration file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("configuration file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads and parses the sink document at path. It returns a
// *LoadError for unreadable or malformed files so callers can report
// the path alongside the underlying cause.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes a sink document from raw YAML. The path is used only
// for error reporting.
func Parse(path string, data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(doc.Sinks) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("no sinks declared")}
	}
	return &doc, nil
}
