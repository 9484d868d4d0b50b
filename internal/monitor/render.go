package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"zonegate-sim/internal/event"
)

var (
	successColor = color.New(color.FgGreen)
	blockedColor = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
	rogueColor   = color.New(color.FgMagenta, color.Bold)
	plainColor   = color.New(color.FgWhite)
)

// RenderLine formats one event as a single human-readable console line in
// the monitor's style. The color reflects the outcome; rogue activity is
// always highlighted.
func RenderLine(e event.Event) string {
	ts := e.Time().Local().Format("15:04:05")
	base, rogue := strings.CutPrefix(e.Name, event.RoguePrefix)

	msg := fmt.Sprintf("%s [%s] %s", ts, e.Zone, e.Name)
	switch base {
	case event.AttemptSend:
		open := "?"
		if e.WindowOpen != nil {
			open = fmt.Sprintf("%t", *e.WindowOpen)
		}
		msg += fmt.Sprintf(" -> %s (msg %d, window open: %s)", e.Destination, e.MessageID, open)
	case event.SendSuccess:
		rtt := -1.0
		if e.RoundTripLatencyMS != nil {
			rtt = *e.RoundTripLatencyMS
		}
		msg += fmt.Sprintf(" -> %s (msg %d, rtt %.1fms)", e.Destination, e.MessageID, rtt)
	case event.BlockedTimeWindow:
		msg += fmt.Sprintf(" -> %s (msg %d, window %s)", e.Destination, e.MessageID, e.Window)
	case event.HeldWindowClosed:
		msg += fmt.Sprintf(" -> %s (msg %d, ref %s)", e.Destination, e.MessageID, e.PayloadReference)
	case event.ReceivedData:
		if e.Payload != nil {
			msg += fmt.Sprintf(" from %s (%s, msg %d)", e.Peer, e.Payload.SourceZone, e.Payload.MessageID)
		}
	case event.DataQueueFullDropped:
		msg += fmt.Sprintf(" (ref %s)", e.PayloadReference)
	default:
		if strings.HasPrefix(base, "SendFail") {
			msg += fmt.Sprintf(" -> %s (msg %d) %s", e.Destination, e.MessageID, e.Error)
		}
	}

	return lineColor(base, rogue).Sprint(msg)
}

func lineColor(base string, rogue bool) *color.Color {
	if rogue {
		return rogueColor
	}
	switch {
	case base == event.SendSuccess:
		return successColor
	case base == event.BlockedTimeWindow || base == event.HeldWindowClosed:
		return blockedColor
	case strings.HasPrefix(base, "SendFail") || strings.HasPrefix(base, "ReceiveFail") ||
		base == event.DataQueueFullDropped || strings.HasPrefix(base, "AgentFatal"):
		return failColor
	}
	return plainColor
}

// Summary renders the aggregated path table as plain text, one path per line.
func Summary(stats *Stats) string {
	var b strings.Builder
	for _, p := range stats.Paths() {
		fmt.Fprintf(&b, "%s -> %s: legit %d/%d ok (%d blocked, %d held), rogue %d/%d through (%d blocked), avg rtt %.1fms\n",
			p.Source, p.Destination,
			p.LegitSuccesses, p.LegitAttempts, p.LegitBlocked, p.LegitHeld,
			p.RogueBreaches, p.RogueAttempts, p.RogueBlocked,
			p.AvgLatencyMS())
	}
	return b.String()
}

// Follow polls the tailer on the given interval, invoking fn for every new
// event, until stop is closed. Used by the console monitor command.
func Follow(t *Tailer, interval time.Duration, stop <-chan struct{}, fn func(event.Event)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
			events, err := t.Poll()
			if err != nil {
				return err
			}
			for _, e := range events {
				fn(e)
			}
		}
	}
}
