package event

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// Replay feeds events from r into writer. A speed > 0 scales the recorded
// inter-event gaps; speed <= 0 replays without artificial delay.
func Replay(r io.Reader, writer Writer, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var e Event
		if err := dec.Decode(&e); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		ts := e.Time()
		if !prev.IsZero() && speed > 0 {
			diff := ts.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := writer.Write(e); err != nil {
			return err
		}
		prev = ts
	}
}

// ReplayFile opens a log file and replays its events.
func ReplayFile(path string, writer Writer, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Replay(f, writer, speed)
}
