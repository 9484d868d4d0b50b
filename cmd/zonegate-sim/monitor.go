package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zonegate-sim/internal/event"
	"zonegate-sim/internal/monitor"
)

var (
	monitorLogPath  string
	monitorSeekPath string
	monitorInterval time.Duration
	monitorSummary  bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Tail the event log on the console",
	Long:  "monitor follows the shared event log by byte offset and prints one colored line per event. With --summary it prints per-path statistics on exit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		tailer := monitor.NewTailer(monitorLogPath, monitorSeekPath)
		stats := monitor.NewStats()

		stop := make(chan struct{})
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigs
			close(stop)
		}()

		err := monitor.Follow(tailer, monitorInterval, stop, func(e event.Event) {
			stats.Observe(e)
			fmt.Println(monitor.RenderLine(e))
		})
		if monitorSummary {
			fmt.Print(monitor.Summary(stats))
		}
		return err
	},
}

func init() {
	monitorCmd.Flags().StringVar(&monitorLogPath, "log", "logs/simulation.log", "Path to the event log")
	monitorCmd.Flags().StringVar(&monitorSeekPath, "seek-file", "", "Path to persist the tail offset (empty to start fresh each run)")
	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", 2*time.Second, "Poll interval")
	monitorCmd.Flags().BoolVar(&monitorSummary, "summary", true, "Print per-path statistics on exit")
}
