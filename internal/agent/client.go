package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"time"

	"zonegate-sim/internal/event"
	"zonegate-sim/internal/handoff"
	"zonegate-sim/internal/schedule"
	"zonegate-sim/internal/wire"
)

// Rogue message IDs start at a disjoint high base so the legitimate and rogue
// sequences never overlap.
const rogueIDBase = 10000

// ClientOptions tunes a client component. Zero values fall back to the
// defaults used by the agent process.
type ClientOptions struct {
	TickInterval     time.Duration
	TotalDuration    time.Duration
	ConnectTimeout   time.Duration
	RogueProbability float64
	TargetHost       string // defaults to the destination zone name
	Now              func() time.Time
	Rand             *rand.Rand
}

// Client is a zone's outbound component. On a fixed tick it originates
// legitimate traffic honoring the schedule and, independently, rogue traffic
// that ignores it. Both go through the same window evaluation; only the
// legitimate side withholds itself when the window is closed.
type Client struct {
	zone   string
	target string
	rule   schedule.Rule
	addr   string
	relay  *handoff.Queue // nil unless the zone relays received data
	seeds  []SeedFile     // non-empty only for ingress zones
	events *event.Log

	tick      time.Duration
	duration  time.Duration
	timeout   time.Duration
	rogueProb float64
	now       func() time.Time
	rand      *rand.Rand

	legitID int64
	rogueID int64
}

// NewClient creates a client component sending under the given outbound rule.
func NewClient(zone string, rule schedule.Rule, relay *handoff.Queue, seeds []SeedFile, events *event.Log, opts ClientOptions) *Client {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 4 * time.Second
	}
	if opts.TotalDuration <= 0 {
		opts.TotalDuration = 480 * time.Second
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 3 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	host := opts.TargetHost
	if host == "" {
		host = rule.Destination
	}
	return &Client{
		zone:      zone,
		target:    rule.Destination,
		rule:      rule,
		addr:      fmt.Sprintf("%s:%d", host, rule.Port),
		relay:     relay,
		seeds:     seeds,
		events:    events,
		tick:      opts.TickInterval,
		duration:  opts.TotalDuration,
		timeout:   opts.ConnectTimeout,
		rogueProb: opts.RogueProbability,
		now:       opts.Now,
		rand:      opts.Rand,
		legitID:   1,
		rogueID:   rogueIDBase,
	}
}

// Run drives the tick loop for the configured total duration, then emits the
// terminal finished event and returns.
func (c *Client) Run(ctx context.Context) error {
	deadline := time.Now().Add(c.duration)
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if time.Now().After(deadline) {
				c.events.Emit(event.Event{
					Zone:        c.zone,
					Context:     event.ContextClient,
					Name:        event.ClientPartFinished,
					Destination: c.target,
				})
				return nil
			}
			c.step()
		}
	}
}

// candidate is one legitimate payload produced for a tick.
type candidate struct {
	ref         string
	size        int64
	contentType string
	fromRelay   bool
	rec         handoff.Record
}

// step runs one tick: produce a legitimate candidate, evaluate the window,
// send or hold, then independently maybe fire a rogue attempt.
func (c *Client) step() {
	cand := c.produce()

	if cand != nil {
		if schedule.Open(c.rule, c.now()) {
			c.attemptSend(c.legitID, cand.ref, cand.size, cand.contentType, false)
			c.legitID++
		} else {
			c.hold(cand)
		}
	}

	if c.rand.Float64() < c.rogueProb {
		ref := fmt.Sprintf("rogue_payload_%d", c.rogueID)
		size := int64(c.rand.Intn(991) + 10)
		c.attemptSend(c.rogueID, ref, size, "rogue_data_type", true)
		c.rogueID++
	}
}

// produce picks this tick's legitimate payload: a random seed file for an
// ingress zone, a synthesized relay payload for a server_client zone, or
// nothing.
func (c *Client) produce() *candidate {
	if len(c.seeds) > 0 {
		seed := c.seeds[c.rand.Intn(len(c.seeds))]
		return &candidate{
			ref:         seed.Name,
			size:        seed.Size,
			contentType: "raw_forecast_metadata",
		}
	}
	if c.relay != nil {
		rec, ok := c.relay.TryPop()
		if !ok {
			return nil
		}
		return &candidate{
			ref:         fmt.Sprintf("processed_%s_by_%s", rec.OriginalDataReference, c.zone),
			size:        int64(c.rand.Intn(451) + 50),
			contentType: fmt.Sprintf("%s_processed_output", c.zone),
			fromRelay:   true,
			rec:         rec,
		}
	}
	return nil
}

// hold logs a closed-window hold. A candidate that came from the handoff
// queue is returned to it; if the requeue fails the candidate is dropped with
// its own event, never silently lost and never delivered twice.
func (c *Client) hold(cand *candidate) {
	sec := c.now().Second()
	open := false
	c.events.Emit(event.Event{
		Zone:             c.zone,
		Context:          event.ContextClient,
		Name:             event.HeldWindowClosed,
		Destination:      c.target,
		MessageID:        c.legitID,
		CurrentSecond:    &sec,
		Window:           c.rule.Window(),
		WindowOpen:       &open,
		PayloadReference: cand.ref,
	})
	if cand.fromRelay && !c.relay.TryPush(cand.rec) {
		c.events.Emit(event.Event{
			Zone:             c.zone,
			Context:          event.ContextClient,
			Name:             event.HeldRequeueDropped,
			Destination:      c.target,
			PayloadReference: cand.ref,
		})
	}
}

// attemptSend performs one complete attempt and emits exactly one terminal
// outcome event for it. The window is re-evaluated against the current clock;
// when closed, no socket is opened at all.
func (c *Client) attemptSend(id int64, ref string, size int64, contentType string, rogue bool) {
	now := c.now()
	sec := now.Second()
	open := schedule.Open(c.rule, now)

	base := event.Event{
		Zone:               c.zone,
		Context:            event.ContextClient,
		Destination:        c.target,
		MessageID:          id,
		CurrentSecond:      &sec,
		Window:             c.rule.Window(),
		WindowOpen:         &open,
		PayloadReference:   ref,
		PayloadSizeBytes:   size,
		PayloadContentType: contentType,
		IsRogueAttempt:     rogue,
	}

	ev := base
	ev.Name = event.Kind(event.AttemptSend, rogue)
	c.events.Emit(ev)

	if !open {
		ev = base
		ev.Name = event.Kind(event.BlockedTimeWindow, rogue)
		c.events.Emit(ev)
		return
	}

	outcome, connMS, rttMS, sendErr := c.send(id, ref, size, contentType, rogue)

	ev = base
	ev.Name = event.Kind(outcome, rogue)
	if outcome == event.SendSuccess {
		ev.ConnLatencyMS = &connMS
		ev.RoundTripLatencyMS = &rttMS
	}
	if sendErr != nil {
		ev.Error = sendErr.Error()
	}
	c.events.Emit(ev)
}

// send dials, writes the message in one call, and reads the acknowledgement.
// It returns the outcome kind plus latencies measured from dial start.
func (c *Client) send(id int64, ref string, size int64, contentType string, rogue bool) (outcome string, connMS, rttMS float64, err error) {
	start := time.Now()
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return failureKind(err), 0, 0, err
	}
	defer conn.Close()
	connMS = float64(time.Since(start)) / float64(time.Millisecond)

	msg := wire.Message{
		SourceZone:    c.zone,
		MessageID:     id,
		SendTimestamp: float64(time.Now().UnixNano()) / 1e9,
		DataReference: ref,
		DataSizeBytes: size,
		ContentType:   contentType,
		IsRogue:       rogue,
	}
	payload, err := msg.Encode()
	if err != nil {
		return event.SendFailUnknown, 0, 0, err
	}

	conn.SetDeadline(time.Now().Add(c.timeout))
	if _, err := conn.Write(payload); err != nil {
		return failureKind(err), 0, 0, err
	}

	buf := make([]byte, wire.BufferSize)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return failureKind(err), 0, 0, err
	}
	rttMS = float64(time.Since(start)) / float64(time.Millisecond)

	if !bytes.Equal(buf[:n], wire.AckToken) {
		return event.SendFailBadAck, 0, 0, nil
	}
	return event.SendSuccess, connMS, rttMS, nil
}

// failureKind classifies a connectivity error into its outcome event kind.
func failureKind(err error) string {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return event.SendFailTimeout
	}
	var oe *net.OpError
	if errors.As(err, &oe) || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return event.SendFailSocketError
	}
	return event.SendFailUnknown
}
