package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds runtime tunables for one zone agent process. All values come
// from the environment with sensible defaults; ZONE_NAME selects the active
// zone and has no default. TARGET_HOST overrides the convention of dialing
// the destination zone by name (container DNS), for single-host runs.
type Settings struct {
	ZoneName         string        `envconfig:"ZONE_NAME"`
	TargetHost       string        `envconfig:"TARGET_HOST"`
	LogFile          string        `envconfig:"LOG_FILE" default:"logs/simulation.log"`
	SeedDir          string        `envconfig:"SEED_DIR" default:"data_to_send"`
	TickInterval     time.Duration `envconfig:"TICK_INTERVAL" default:"4s"`
	ClientDuration   time.Duration `envconfig:"CLIENT_DURATION" default:"480s"`
	ConnectTimeout   time.Duration `envconfig:"CONNECT_TIMEOUT" default:"3s"`
	RogueProbability float64       `envconfig:"ROGUE_PROBABILITY" default:"0.3"`
	HandoffCapacity  int           `envconfig:"HANDOFF_CAPACITY" default:"32"`
}

// SettingsFromEnv reads Settings from the process environment.
func SettingsFromEnv() (Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, fmt.Errorf("read environment: %w", err)
	}
	if s.TickInterval <= 0 {
		return Settings{}, fmt.Errorf("tick interval must be positive, got %s", s.TickInterval)
	}
	if s.RogueProbability < 0 || s.RogueProbability > 1 {
		return Settings{}, fmt.Errorf("rogue probability must be in [0,1], got %g", s.RogueProbability)
	}
	if s.HandoffCapacity <= 0 {
		s.HandoffCapacity = 32
	}
	return s, nil
}
