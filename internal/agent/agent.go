// Package agent runs one simulated zone: its server component, its client
// component, or both, wired through a bounded handoff queue.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"zonegate-sim/internal/config"
	"zonegate-sim/internal/event"
	"zonegate-sim/internal/handoff"
	"zonegate-sim/internal/schedule"
)

// Agent orchestrates the components of one zone process.
type Agent struct {
	zone  string
	role  schedule.Role
	runID string

	server *Server
	client *Client
	relay  *handoff.Queue

	events *event.Log
	log    *slog.Logger
}

// New resolves the zone's role against the schedule and constructs exactly
// the needed components. An unresolvable inbound or outbound rule is a soft
// failure: the corresponding component is not built and an explicit
// "not started" event is logged.
func New(sched *schedule.Schedule, settings config.Settings, events *event.Log, log *slog.Logger) (*Agent, error) {
	zone := settings.ZoneName
	zc, ok := sched.Zone(zone)
	if !ok {
		events.Emit(event.Event{Zone: zone, Context: event.ContextAgent, Name: event.AgentFatalNoZone})
		return nil, fmt.Errorf("no configuration for zone %q in schedule", zone)
	}
	role, err := schedule.ParseRole(zc.Role)
	if err != nil {
		events.Emit(event.Event{Zone: zone, Context: event.ContextAgent, Name: event.AgentFatalNoZone, Error: err.Error()})
		return nil, err
	}

	a := &Agent{
		zone:   zone,
		role:   role,
		runID:  uuid.New().String(),
		events: events,
		log:    log,
	}

	if role == schedule.RoleServerAndClient {
		a.relay = handoff.NewQueue(settings.HandoffCapacity)
	}

	if role == schedule.RoleServerOnly || role == schedule.RoleServerAndClient {
		if rule, ok := sched.Inbound(zone); ok {
			a.server = NewServer(zone, rule, a.relay, events)
		} else {
			log.Warn("no inbound rule resolves, server part not starting")
			events.Emit(event.Event{
				Zone:    zone,
				Context: event.ContextServerMain,
				Name:    event.ServerPartNotStarted,
				Role:    zc.Role,
			})
		}
	}

	if role == schedule.RoleClientOnly || role == schedule.RoleServerAndClient {
		if rule, ok := sched.Outbound(zone); ok {
			var seeds []SeedFile
			if role == schedule.RoleClientOnly {
				seeds = ListSeeds(settings.SeedDir)
			}
			a.client = NewClient(zone, rule, a.relay, seeds, events, ClientOptions{
				TickInterval:     settings.TickInterval,
				TotalDuration:    settings.ClientDuration,
				ConnectTimeout:   settings.ConnectTimeout,
				RogueProbability: settings.RogueProbability,
				TargetHost:       settings.TargetHost,
			})
		} else {
			log.Warn("no outbound rule resolves, client part not starting")
			events.Emit(event.Event{
				Zone:    zone,
				Context: event.ContextClient,
				Name:    event.ClientPartNotStarted,
				Role:    zc.Role,
			})
		}
	}

	return a, nil
}

// Run starts the built components and blocks until they finish or ctx is
// done. A process whose components all failed to resolve idles on ctx so the
// zone stays observable instead of exiting.
func (a *Agent) Run(ctx context.Context) error {
	a.events.Emit(event.Event{
		Zone:    a.zone,
		Context: event.ContextAgent,
		Name:    event.AgentStarting,
		Role:    a.role.String(),
	})
	a.log.Info("agent starting", "role", a.role.String(), "run_id", a.runID)

	if a.server != nil {
		if err := a.server.Listen(ctx); err != nil {
			// Fatal for the server role of this zone only.
			a.log.Error("server part failed to bind", "err", err)
			a.server = nil
		}
	}

	if a.server == nil && a.client == nil {
		a.events.Emit(event.Event{
			Zone:    a.zone,
			Context: event.ContextAgent,
			Name:    event.AgentIdleNoParts,
			Role:    a.role.String(),
		})
		a.log.Info("no components started, idling")
		<-ctx.Done()
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if a.server != nil {
		g.Go(func() error { return a.server.Serve(ctx) })
	}
	if a.client != nil {
		g.Go(func() error { return a.client.Run(ctx) })
	}
	err := g.Wait()

	a.events.Emit(event.Event{
		Zone:    a.zone,
		Context: event.ContextAgent,
		Name:    event.AgentExited,
	})
	return err
}

// Server exposes the server component, nil when not built. Used by wiring
// and tests to learn the bound address.
func (a *Agent) Server() *Server { return a.server }
