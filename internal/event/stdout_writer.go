// Writer implementation printing events to STDOUT
package event

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// StdoutWriter prints events as NDJSON to an io.Writer, STDOUT by default.
type StdoutWriter struct {
	Out io.Writer
}

// NewStdoutWriter creates a StdoutWriter targeting os.Stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{Out: os.Stdout}
}

// Write outputs a single event in JSON format.
func (w *StdoutWriter) Write(e Event) error {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
