package monitor

import (
	"sort"
	"strings"

	"zonegate-sim/internal/event"
)

// PathStats aggregates outcomes for one directed path (source -> destination).
// The legitimate and rogue columns are kept apart: the asymmetry between them
// is what the simulation exists to show.
type PathStats struct {
	Source      string
	Destination string

	LegitAttempts  int
	LegitSuccesses int
	LegitBlocked   int
	LegitHeld      int
	LegitCommFails int

	RogueAttempts  int
	RogueBreaches  int // rogue sends that got through
	RogueBlocked   int
	RogueCommFails int

	latencySumMS   float64
	latencyCount   int
	LatencyMinMS   float64
	LatencyMaxMS   float64
	HandoffDropped int
}

// AvgLatencyMS returns the mean successful round-trip latency for the path.
func (p *PathStats) AvgLatencyMS() float64 {
	if p.latencyCount == 0 {
		return 0
	}
	return p.latencySumMS / float64(p.latencyCount)
}

// Stats aggregates the whole event stream by path.
type Stats struct {
	paths map[string]*PathStats
}

// NewStats creates an empty aggregation.
func NewStats() *Stats {
	return &Stats{paths: make(map[string]*PathStats)}
}

// Observe folds one event into the aggregation. Events without a client
// source/destination pair (server-side and agent lifecycle events) only
// contribute to handoff drop counts.
func (s *Stats) Observe(e event.Event) {
	if e.Name == event.DataQueueFullDropped {
		// Attribute the drop to the receiving zone's outbound path if known,
		// otherwise to the zone itself.
		p := s.path(e.Zone, e.Destination)
		p.HandoffDropped++
		return
	}
	if e.Zone == "" || e.Destination == "" {
		return
	}
	p := s.path(e.Zone, e.Destination)

	base, rogue := strings.CutPrefix(e.Name, event.RoguePrefix)
	switch base {
	case event.AttemptSend:
		if rogue {
			p.RogueAttempts++
		} else {
			p.LegitAttempts++
		}
	case event.SendSuccess:
		if rogue {
			p.RogueBreaches++
		} else {
			p.LegitSuccesses++
		}
		if e.RoundTripLatencyMS != nil {
			ms := *e.RoundTripLatencyMS
			p.latencySumMS += ms
			p.latencyCount++
			if p.latencyCount == 1 || ms < p.LatencyMinMS {
				p.LatencyMinMS = ms
			}
			if ms > p.LatencyMaxMS {
				p.LatencyMaxMS = ms
			}
		}
	case event.BlockedTimeWindow:
		if rogue {
			p.RogueBlocked++
		} else {
			p.LegitBlocked++
		}
	case event.HeldWindowClosed:
		p.LegitHeld++
	case event.SendFailTimeout, event.SendFailSocketError, event.SendFailBadAck, event.SendFailUnknown:
		if rogue {
			p.RogueCommFails++
		} else {
			p.LegitCommFails++
		}
	}
}

// Paths returns the aggregated paths in stable order.
func (s *Stats) Paths() []*PathStats {
	keys := make([]string, 0, len(s.paths))
	for k := range s.paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*PathStats, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.paths[k])
	}
	return out
}

func (s *Stats) path(source, destination string) *PathStats {
	key := source + " -> " + destination
	p, ok := s.paths[key]
	if !ok {
		p = &PathStats{Source: source, Destination: destination}
		s.paths[key] = p
	}
	return p
}
