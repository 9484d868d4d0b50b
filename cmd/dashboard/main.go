package main

import (
	"flag"
	"log"
	"time"

	"zonegate-sim/internal/monitor"
)

func main() {
	logPath := flag.String("log", "logs/simulation.log", "Path to the event log")
	interval := flag.Duration("interval", time.Second, "Poll interval")
	flag.Parse()

	tailer := monitor.NewTailer(*logPath, "")
	if err := monitor.NewDashboard(tailer, *interval).Run(); err != nil {
		log.Fatal(err)
	}
}
