package main

import (
	"os"

	"zonegate-sim/internal/config"
	"zonegate-sim/internal/event"
)

// newEventLog wires the event sink for one agent process: the append-only
// NDJSON file by default, STDOUT in print-only mode, plus a GreptimeDB mirror
// when GREPTIMEDB_ENDPOINT is set.
func newEventLog(settings config.Settings, printOnly bool) (*event.Log, error) {
	var w event.Writer
	if printOnly {
		w = event.NewStdoutWriter()
	} else {
		fw, err := event.NewFileWriter(settings.LogFile)
		if err != nil {
			return nil, err
		}
		w = fw
	}

	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
		gw, err := event.NewGreptimeWriter(endpoint, "public")
		if err != nil {
			return nil, err
		}
		w = event.NewMultiWriter(w, gw)
	}

	return event.NewLog(w), nil
}
