// Package monitor consumes the append-only event log: byte-offset tailing,
// per-path aggregation, and console rendering. It never writes to the log.
package monitor

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"zonegate-sim/internal/event"
)

// Tailer reads new NDJSON events from the log file by byte offset. The
// offset can be persisted to a seek file so a restarted monitor resumes
// where it left off.
type Tailer struct {
	path     string
	seekPath string
	offset   int64
	skipped  int
}

// NewTailer creates a tailer over the given log path. seekPath may be empty
// to keep the offset in memory only.
func NewTailer(path, seekPath string) *Tailer {
	t := &Tailer{path: path, seekPath: seekPath}
	if seekPath != "" {
		if b, err := os.ReadFile(seekPath); err == nil {
			if off, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64); err == nil && off >= 0 {
				t.offset = off
			}
		}
	}
	return t
}

// Offset returns the current byte offset into the log.
func (t *Tailer) Offset() int64 { return t.offset }

// Skipped returns how many malformed lines were skipped so far.
func (t *Tailer) Skipped() int { return t.skipped }

// Poll returns events appended since the last call. A missing log file is
// not an error: the agents may not have started yet. Malformed lines are
// skipped; a partial trailing line is left for the next poll.
func (t *Tailer) Poll() ([]event.Event, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek log: %w", err)
	}

	var out []event.Event
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			// An unterminated tail is a write in progress; re-read it next poll.
			break
		}
		t.offset += int64(len(line))
		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			continue
		}
		var e event.Event
		if err := json.Unmarshal([]byte(trimmed), &e); err != nil {
			t.skipped++
			continue
		}
		out = append(out, e)
	}

	if t.seekPath != "" && len(out) > 0 {
		if err := os.WriteFile(t.seekPath, []byte(strconv.FormatInt(t.offset, 10)), 0o644); err != nil {
			return out, fmt.Errorf("persist seek position: %w", err)
		}
	}
	return out, nil
}
