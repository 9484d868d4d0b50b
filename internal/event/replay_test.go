package event

import (
	"strings"
	"testing"
)

func TestReplay(t *testing.T) {
	log := `{"timestamp":1,"zone":"ingest","event":"AttemptSend"}
{"timestamp":1.5,"zone":"ingest","event":"SendSuccess"}
{"timestamp":2,"zone":"process","event":"ReceivedData"}
`
	w := &memWriter{}
	if err := Replay(strings.NewReader(log), w, 0); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	got := w.all()
	if len(got) != 3 {
		t.Fatalf("replayed %d events, want 3", len(got))
	}
	if got[0].Name != AttemptSend || got[2].Zone != "process" {
		t.Errorf("unexpected events: %+v", got)
	}
}

func TestReplay_StopsOnGarbage(t *testing.T) {
	w := &memWriter{}
	if err := Replay(strings.NewReader("{\"zone\":\"a\",\"event\":\"x\"}\nnot json\n"), w, 0); err == nil {
		t.Fatal("expected decode error")
	}
}
