package event

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileWriter appends events to an NDJSON file. The file is opened in append
// mode so external tailers can follow it by byte offset, and content is never
// rewritten. When several zone processes share one log path, append safety
// across processes is a best-effort OS assumption, not an atomic protocol.
type FileWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter opens (or creates) the log file for appending, creating
// parent directories as needed.
func NewFileWriter(path string) (*FileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// Write appends a single event line.
func (w *FileWriter) Write(e Event) error {
	return w.enc.Encode(e)
}

// Close closes the underlying file.
func (w *FileWriter) Close() error {
	return w.file.Close()
}
