package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteError is returned when a manifest cannot be written to disk
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write manifest %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Marshal renders a manifest as indented JSON. HTML characters and
// non-ASCII text are written as-is.
func Marshal(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes a manifest as indented JSON followed by a newline
func Encode(w io.Writer, m *Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Write stores a manifest as <dir>/<lowercased app name>.json and returns
// the path written. The file is not written atomically.
func Write(m *Manifest, dir, appName string) (string, error) {
	path := filepath.Join(dir, FileName(appName))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	defer f.Close()

	if err := Encode(f, m); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	return path, nil
}
