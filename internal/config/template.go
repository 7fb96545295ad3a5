package config

import (
	"fmt"
	"os"
)

// Template is the sample document written by --gen-template. It parses
// back through Load and demonstrates both a plain character-class
// pattern and a multi-byte one.
const Template = `# rsink configuration
#
# Sinks are evaluated in order; the first sink whose pattern set
# matches a line receives it. Set file_name to "null" to count a
# match without writing it anywhere.
sinks:
  - name: first_sink
    file_name: first_output.txt
    patterns:
      - '^[a-zA-Z0-9]+$'
  - name: second_sink
    file_name: second_output.txt
    patterns:
      - '😎*'
`

// WriteTemplate writes the sample document to path. It refuses to
// overwrite an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("template target %s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("template target %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return fmt.Errorf("writing template %s: %w", path, err)
	}
	return nil
}
