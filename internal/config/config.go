// YAML schedule loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"zonegate-sim/internal/schedule"
)

// Load reads the YAML schedule file, validates it against a CUE schema, and
// checks structural consistency. cueSchemaPath may be empty to skip schema
// validation (used by tests and ad hoc runs).
func Load(schedulePath, cueSchemaPath string) (*schedule.Schedule, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(schedulePath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(schedulePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read schedule: %w", err)
	}
	var sched schedule.Schedule
	if err := yaml.Unmarshal(data, &sched); err != nil {
		return nil, fmt.Errorf("cannot parse schedule: %w", err)
	}
	if err := sched.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	return &sched, nil
}
