package event

import (
	"log/slog"
	"sync"
	"time"
)

// Writer is the sink interface behind the shared event log.
type Writer interface {
	Write(Event) error
}

// Log is the logging collaborator shared by every component in a zone agent
// process. It serializes concurrent writers so lines are never interleaved,
// stamps timestamps, and never surfaces write failures to callers: those go
// to a diagnostics callback only.
type Log struct {
	mu   sync.Mutex
	w    Writer
	diag func(error)
	now  func() time.Time
}

// NewLog wraps a writer into a shared event log. Write failures are reported
// through slog unless SetDiagnostics installs another handler.
func NewLog(w Writer) *Log {
	return &Log{
		w: w,
		diag: func(err error) {
			slog.Error("event log write failed", "err", err)
		},
		now: time.Now,
	}
}

// SetDiagnostics replaces the write-failure handler.
func (l *Log) SetDiagnostics(fn func(error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if fn != nil {
		l.diag = fn
	}
}

// Emit appends one event. A zero Timestamp is stamped from the current clock.
// Emit never fails from the caller's perspective.
func (l *Log) Emit(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e.Timestamp == 0 {
		now := l.now()
		e.Timestamp = float64(now.UnixNano()) / 1e9
		e.TimestampISO = now.UTC().Format(time.RFC3339Nano)
	}
	if err := l.w.Write(e); err != nil {
		l.diag(err)
	}
}
