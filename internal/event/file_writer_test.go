package event

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func readLines(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var out []Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("malformed line %q: %v", sc.Text(), err)
		}
		out = append(out, e)
	}
	return out
}

func TestFileWriter_AppendsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")

	fw, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	open := true
	if err := fw.Write(Event{Timestamp: 1, Zone: "ingest", Name: AttemptSend, WindowOpen: &open}); err != nil {
		t.Fatalf("write: %v", err)
	}
	fw.Close()

	// Reopening appends rather than truncating.
	fw, err = NewFileWriter(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := fw.Write(Event{Timestamp: 2, Zone: "ingest", Name: SendSuccess}); err != nil {
		t.Fatalf("write after reopen: %v", err)
	}
	fw.Close()

	got := readLines(t, path)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if got[0].Name != AttemptSend || got[0].WindowOpen == nil || !*got[0].WindowOpen {
		t.Errorf("first line: %+v", got[0])
	}
	if got[1].Name != SendSuccess {
		t.Errorf("second line: %+v", got[1])
	}
}

func TestFileWriter_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "sim.log")
	fw, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()
	if err := fw.Write(Event{Zone: "z", Name: AgentStarting}); err != nil {
		t.Fatalf("write: %v", err)
	}
}
