// Zone roles, transfer rules, and schedule lookups
package schedule

import (
	"fmt"
)

// Role names accepted in the schedule file.
const (
	RoleNameServer       = "server"
	RoleNameClient       = "client"
	RoleNameServerClient = "server_client"
)

// Role is the resolved variant of a zone's role string.
type Role int

const (
	RoleServerOnly Role = iota
	RoleClientOnly
	RoleServerAndClient
)

func (r Role) String() string {
	switch r {
	case RoleServerOnly:
		return RoleNameServer
	case RoleClientOnly:
		return RoleNameClient
	case RoleServerAndClient:
		return RoleNameServerClient
	}
	return "unknown"
}

// ParseRole resolves a role string from the schedule file into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case RoleNameServer:
		return RoleServerOnly, nil
	case RoleNameClient:
		return RoleClientOnly, nil
	case RoleNameServerClient:
		return RoleServerAndClient, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Rule is a directed, ported, time-windowed permission between two zones.
// The window [StartSec, EndSec) is measured in seconds within each minute.
type Rule struct {
	Source      string `yaml:"source" json:"source"`
	Destination string `yaml:"destination" json:"destination"`
	Port        int    `yaml:"port" json:"port"`
	StartSec    int    `yaml:"start_sec" json:"start_sec"`
	EndSec      int    `yaml:"end_sec" json:"end_sec"`
}

// Window returns the rule's window as a human-readable range, matching the
// representation written into log events.
func (r Rule) Window() string {
	return fmt.Sprintf("%d-%d", r.StartSec, r.EndSec-1)
}

// ZoneConfig describes one zone's role and its configured peers.
type ZoneConfig struct {
	Role         string `yaml:"role" json:"role"`
	Target       string `yaml:"target,omitempty" json:"target,omitempty"`
	ListenSource string `yaml:"listen_source,omitempty" json:"listen_source,omitempty"`
}

// Schedule is the immutable rules+zones structure loaded once at startup.
type Schedule struct {
	Zones map[string]ZoneConfig `yaml:"zones" json:"zones"`
	Rules []Rule                `yaml:"rules" json:"rules"`
}

// Zone returns the configuration for the named zone.
func (s *Schedule) Zone(name string) (ZoneConfig, bool) {
	zc, ok := s.Zones[name]
	return zc, ok
}

// Between returns the first rule matching (source, destination). A pair is
// assumed to carry at most one rule; duplicates are rejected at load time.
func (s *Schedule) Between(source, destination string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Source == source && r.Destination == destination {
			return r, true
		}
	}
	return Rule{}, false
}

// Outbound resolves the rule a zone's client component sends under.
func (s *Schedule) Outbound(zone string) (Rule, bool) {
	zc, ok := s.Zones[zone]
	if !ok || zc.Target == "" {
		return Rule{}, false
	}
	return s.Between(zone, zc.Target)
}

// Inbound resolves the rule a zone's server component listens under.
func (s *Schedule) Inbound(zone string) (Rule, bool) {
	zc, ok := s.Zones[zone]
	if !ok || zc.ListenSource == "" {
		return Rule{}, false
	}
	return s.Between(zc.ListenSource, zone)
}

// Validate checks structural consistency of the schedule. EndSec beyond 60 is
// rejected here rather than wrapped: the window is cyclic per minute and a
// rule spanning the minute boundary has no defined meaning.
func (s *Schedule) Validate() error {
	if len(s.Zones) == 0 {
		return fmt.Errorf("schedule defines no zones")
	}
	for name, zc := range s.Zones {
		if _, err := ParseRole(zc.Role); err != nil {
			return fmt.Errorf("zone %q: %w", name, err)
		}
	}
	seen := make(map[[2]string]bool)
	for i, r := range s.Rules {
		if r.Source == "" || r.Destination == "" {
			return fmt.Errorf("rule %d: source and destination are required", i)
		}
		if r.Port <= 0 || r.Port > 65535 {
			return fmt.Errorf("rule %d (%s -> %s): invalid port %d", i, r.Source, r.Destination, r.Port)
		}
		if r.StartSec < 0 || r.StartSec > 60 {
			return fmt.Errorf("rule %d (%s -> %s): start_sec %d out of range [0,60]", i, r.Source, r.Destination, r.StartSec)
		}
		if r.EndSec < 0 || r.EndSec > 60 {
			return fmt.Errorf("rule %d (%s -> %s): end_sec %d out of range [0,60]", i, r.Source, r.Destination, r.EndSec)
		}
		key := [2]string{r.Source, r.Destination}
		if seen[key] {
			return fmt.Errorf("duplicate rule for %s -> %s", r.Source, r.Destination)
		}
		seen[key] = true
	}
	return nil
}
