package event

// MultiWriter fans out events to multiple writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...Writer) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends an event to all writers, returning the first error.
func (mw *MultiWriter) Write(e Event) error {
	var first error
	for _, w := range mw.writers {
		if err := w.Write(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
