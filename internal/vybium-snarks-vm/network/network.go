// Package network defines the profile constants the instruction core reads:
// the maximum cardinalities of a function's inputs, instructions, outputs,
// and registers. The core never computes these values; it only consumes them.
package network

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a fixed set of named limits for one network deployment.
type Profile struct {
	// MaxFunctionInputs is the maximum number of input statements per function.
	MaxFunctionInputs int `yaml:"max_function_inputs"`
	// MaxFunctionInstructions is the maximum number of instructions per function.
	MaxFunctionInstructions int `yaml:"max_function_instructions"`
	// MaxFunctionOutputs is the maximum number of output statements per function.
	MaxFunctionOutputs int `yaml:"max_function_outputs"`
	// MaxRegisters is the maximum number of registers per register file.
	MaxRegisters int `yaml:"max_registers"`
}

// Default returns the built-in profile.
func Default() *Profile {
	return &Profile{
		MaxFunctionInputs:       8,
		MaxFunctionInstructions: 65535,
		MaxFunctionOutputs:      8,
		MaxRegisters:            65535,
	}
}

// Load reads a profile from a YAML file. Omitted limits fall back to the
// defaults.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	profile := Default()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Validate checks that every limit is positive.
func (p *Profile) Validate() error {
	limits := map[string]int{
		"max_function_inputs":       p.MaxFunctionInputs,
		"max_function_instructions": p.MaxFunctionInstructions,
		"max_function_outputs":      p.MaxFunctionOutputs,
		"max_registers":             p.MaxRegisters,
	}
	for name, value := range limits {
		if value <= 0 {
			return fmt.Errorf("profile limit %s must be positive, got %d", name, value)
		}
	}
	return nil
}
