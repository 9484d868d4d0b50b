// CUE schema validation code
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// ValidateWithCue validates a YAML schedule file using a CUE schema file.
func ValidateWithCue(scheduleFile, cueFile string) error {
	ctx := cuecontext.New()

	// Read YAML schedule
	yamlBytes, err := os.ReadFile(scheduleFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML schedule: %w", err)
	}
	yamlAST, err := cueyaml.Extract(scheduleFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML schedule: %w", err)
	}
	scheduleVal := ctx.BuildFile(yamlAST)

	// Read CUE schema
	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)

	// Merge values with schema
	final := schemaVal.Unify(scheduleVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}

	// Validate final structure
	if err := final.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
