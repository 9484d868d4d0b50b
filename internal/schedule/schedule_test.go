package schedule

import (
	"strings"
	"testing"
)

func testSchedule() *Schedule {
	return &Schedule{
		Zones: map[string]ZoneConfig{
			"ingest":  {Role: "client", Target: "process"},
			"process": {Role: "server_client", Target: "dist", ListenSource: "ingest"},
			"dist":    {Role: "server", ListenSource: "process"},
		},
		Rules: []Rule{
			{Source: "ingest", Destination: "process", Port: 9101, StartSec: 0, EndSec: 15},
			{Source: "process", Destination: "dist", Port: 9102, StartSec: 20, EndSec: 35},
		},
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"server", RoleServerOnly, false},
		{"client", RoleClientOnly, false},
		{"server_client", RoleServerAndClient, false},
		{"proxy", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q): %v", tc.in, err)
		} else if got != tc.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLookups(t *testing.T) {
	s := testSchedule()

	r, ok := s.Outbound("ingest")
	if !ok || r.Destination != "process" || r.Port != 9101 {
		t.Fatalf("Outbound(ingest) = %+v, %v", r, ok)
	}

	r, ok = s.Inbound("process")
	if !ok || r.Source != "ingest" {
		t.Fatalf("Inbound(process) = %+v, %v", r, ok)
	}

	if _, ok := s.Outbound("dist"); ok {
		t.Error("Outbound(dist): server-only zone should resolve no outbound rule")
	}
	if _, ok := s.Inbound("ingest"); ok {
		t.Error("Inbound(ingest): client-only zone should resolve no inbound rule")
	}
	if _, ok := s.Between("dist", "ingest"); ok {
		t.Error("Between(dist, ingest): no such rule")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Schedule)
		wantErr string
	}{
		{"valid", func(s *Schedule) {}, ""},
		{"no zones", func(s *Schedule) { s.Zones = nil }, "no zones"},
		{"bad role", func(s *Schedule) { s.Zones["ingest"] = ZoneConfig{Role: "router"} }, "unknown role"},
		{"end_sec beyond minute", func(s *Schedule) { s.Rules[0].EndSec = 75 }, "end_sec 75 out of range"},
		{"negative start_sec", func(s *Schedule) { s.Rules[0].StartSec = -1 }, "start_sec -1 out of range"},
		{"bad port", func(s *Schedule) { s.Rules[1].Port = 0 }, "invalid port"},
		{"missing endpoint", func(s *Schedule) { s.Rules[0].Destination = "" }, "required"},
		{
			"duplicate pair",
			func(s *Schedule) {
				s.Rules = append(s.Rules, Rule{Source: "ingest", Destination: "process", Port: 9999, StartSec: 1, EndSec: 2})
			},
			"duplicate rule",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testSchedule()
			tc.mutate(s)
			err := s.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}
