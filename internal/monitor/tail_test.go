package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"zonegate-sim/internal/event"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}

func TestTailer_MissingFileIsNotAnError(t *testing.T) {
	tl := NewTailer(filepath.Join(t.TempDir(), "nope.log"), "")
	evs, err := tl.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("got %d events from missing file", len(evs))
	}
}

func TestTailer_ReadsOnlyNewLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	writeLog(t, path, `{"event":"AgentStarting","zone":"ingest"}`+"\n")

	tl := NewTailer(path, "")
	evs, err := tl.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(evs) != 1 || evs[0].Name != "AgentStarting" {
		t.Fatalf("first poll = %+v", evs)
	}

	// Nothing new yet.
	if evs, _ = tl.Poll(); len(evs) != 0 {
		t.Fatalf("second poll returned %d events, want 0", len(evs))
	}

	appendLog(t, path, `{"event":"AttemptSend","zone":"ingest","destination":"process"}`+"\n")
	evs, _ = tl.Poll()
	if len(evs) != 1 || evs[0].Name != "AttemptSend" {
		t.Fatalf("third poll = %+v", evs)
	}
}

func TestTailer_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	writeLog(t, path,
		`{"event":"AgentStarting","zone":"a"}`+"\n"+
			"not json at all\n"+
			"\n"+
			`{"event":"SendSuccess","zone":"a","destination":"b"}`+"\n")

	tl := NewTailer(path, "")
	evs, err := tl.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	if tl.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", tl.Skipped())
	}
}

func TestTailer_LeavesPartialTrailingLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	writeLog(t, path, `{"event":"AgentStarting","zone":"a"}`+"\n"+`{"event":"Att`)

	tl := NewTailer(path, "")
	evs, _ := tl.Poll()
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}

	// The writer finishes the line; the next poll picks it up whole.
	appendLog(t, path, `emptSend","zone":"a","destination":"b"}`+"\n")
	evs, _ = tl.Poll()
	if len(evs) != 1 || evs[0].Name != "AttemptSend" {
		t.Fatalf("second poll = %+v", evs)
	}
}

func TestTailer_SeekFilePersistsOffset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.log")
	seek := filepath.Join(dir, "sim.log.seek")
	writeLog(t, path, `{"event":"AgentStarting","zone":"a"}`+"\n")

	tl := NewTailer(path, seek)
	if _, err := tl.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	appendLog(t, path, `{"event":"AgentExited","zone":"a"}`+"\n")

	// A fresh tailer resumes from the persisted offset.
	tl2 := NewTailer(path, seek)
	evs, err := tl2.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(evs) != 1 || evs[0].Name != event.AgentExited {
		t.Fatalf("resumed poll = %+v", evs)
	}
}
