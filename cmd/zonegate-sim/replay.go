package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zonegate-sim/internal/event"
)

var (
	replayInput string
	replaySpeed float64
	replayOut   string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded event log",
	Long:  "replay feeds events from a recorded log back into a sink at their recorded pacing, useful for re-watching a run through the monitor or dashboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		var w event.Writer
		if replayOut == "" {
			w = event.NewStdoutWriter()
		} else {
			fw, err := event.NewFileWriter(replayOut)
			if err != nil {
				return err
			}
			defer fw.Close()
			w = fw
		}
		return event.ReplayFile(replayInput, w, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to a recorded event log")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (<=0 for no delay)")
	replayCmd.Flags().StringVar(&replayOut, "out", "", "Replay into this log file instead of STDOUT")
	replayCmd.MarkFlagRequired("input")
}
