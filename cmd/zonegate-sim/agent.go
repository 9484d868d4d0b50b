package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zonegate-sim/internal/agent"
	"zonegate-sim/internal/config"
	"zonegate-sim/internal/event"
	"zonegate-sim/internal/logging"
)

var (
	agentSchedulePath string
	agentSchemaPath   string
	agentZone         string
	agentPrintOnly    bool
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run one zone agent",
	Long:  "agent runs the server and/or client components of a single zone against the shared schedule. The zone is selected with --zone or the ZONE_NAME environment variable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.SettingsFromEnv()
		if err != nil {
			return err
		}
		if agentZone != "" {
			settings.ZoneName = agentZone
		}
		if settings.ZoneName == "" {
			return fmt.Errorf("zone name required (--zone or ZONE_NAME)")
		}

		log := logging.New(settings.ZoneName)

		sched, err := config.Load(agentSchedulePath, agentSchemaPath)
		if err != nil {
			// The schedule is the one fatal input: one explicit event, then exit.
			if events, werr := newEventLog(settings, agentPrintOnly); werr == nil {
				events.Emit(event.Event{
					Zone:    settings.ZoneName,
					Context: event.ContextAgent,
					Name:    event.AgentFatalNoSchedule,
					Error:   err.Error(),
				})
			}
			return err
		}

		events, err := newEventLog(settings, agentPrintOnly)
		if err != nil {
			return err
		}

		a, err := agent.New(sched, settings, events, log)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- a.Run(ctx) }()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigs:
			cancel()
			<-done
		case err := <-done:
			if err != nil {
				return err
			}
		}
		log.Info("zone agent stopped")
		return nil
	},
}

func init() {
	agentCmd.Flags().StringVar(&agentSchedulePath, "schedule", "config/schedule.yaml", "Path to schedule YAML")
	agentCmd.Flags().StringVar(&agentSchemaPath, "schema", "schemas/schedule.cue", "Path to CUE schema file (empty to skip)")
	agentCmd.Flags().StringVar(&agentZone, "zone", "", "Zone name (overrides ZONE_NAME)")
	agentCmd.Flags().BoolVar(&agentPrintOnly, "print-only", false, "Print events to STDOUT instead of the log file")
}
