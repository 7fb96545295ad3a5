package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const fileBufferSize = 64 * 1024

var newline = []byte{'\n'}

// Destination is where a sink's matched lines go. Exactly two kinds
// exist: Discard and *File.
type Destination interface {
	// WriteLine writes one line followed by a newline terminator. The
	// payload and the terminator are two separate writes into the
	// destination's buffer; no per-line formatting is performed.
	WriteLine(line []byte) error

	// Flush drains any buffered data to the underlying file.
	Flush() error

	// Close flushes and releases the underlying file, if any.
	Close() error
}

// Discard is the destination for sinks declared with the "null"
// sentinel. Writes succeed and go nowhere.
var Discard Destination = discard{}

type discard struct{}

func (discard) WriteLine([]byte) error { return nil }
func (discard) Flush() error           { return nil }
func (discard) Close() error           { return nil }

// File is a buffered writer over an exclusively owned output file. The
// file is created (truncated) at construction and held until Close.
type File struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// CreateFile creates the output file at path, making parent
// directories as needed.
func CreateFile(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating parent directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, f: f, w: bufio.NewWriterSize(f, fileBufferSize)}, nil
}

// Path returns the file's path as declared in configuration.
func (d *File) Path() string {
	return d.path
}

func (d *File) WriteLine(line []byte) error {
	if _, err := d.w.Write(line); err != nil {
		return err
	}
	_, err := d.w.Write(newline)
	return err
}

func (d *File) Flush() error {
	return d.w.Flush()
}

func (d *File) Close() error {
	if err := d.w.Flush(); err != nil {
		d.f.Close()
		return err
	}
	return d.f.Close()
}
