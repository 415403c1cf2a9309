package vybiumsnarksvm

import (
	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/network"
	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/program"
)

// Function represents a named sequence of inputs, instructions, and outputs
// This is the public type for function definitions used throughout Vybium SNARKs VM
type Function = program.Function

// Instruction represents a single typed instruction
type Instruction = program.Instruction

// Operation is the behavior shared by every instruction variant
type Operation = program.Operation

// Value represents a runtime value, either a literal or a composite
type Value = program.Value

// Literal represents a typed literal value with a visibility modifier
type Literal = program.Literal

// LiteralKind identifies the type of a literal
type LiteralKind = program.LiteralKind

// Visibility marks a value as publicly visible or private
type Visibility = program.Visibility

// Composite represents a named aggregate of literal members
type Composite = program.Composite

// Member represents a single named member of a composite
type Member = program.Member

// Identifier represents a lowercase program identifier
type Identifier = program.Identifier

// Register represents a register reference, optionally into a member path
type Register = program.Register

// RegisterType pairs a literal kind with a visibility
type RegisterType = program.RegisterType

// Operand represents an instruction operand, a literal or a register
type Operand = program.Operand

// Opcode is the binary discriminant of an instruction variant
type Opcode = program.Opcode

// Input represents a function input declaration
type Input = program.Input

// Output represents a function output declaration
type Output = program.Output

// Profile represents the network execution limits
type Profile = network.Profile

// Visibility modifiers.
const (
	Public  = program.Public
	Private = program.Private
)

// DefaultProfile returns the default network execution limits
func DefaultProfile() *Profile {
	return network.Default()
}

// LoadProfile loads network execution limits from a YAML file
func LoadProfile(path string) (*Profile, error) {
	profile, err := network.Load(path)
	if err != nil {
		return nil, &ProgramError{
			Code:    ErrInvalidConfig,
			Message: "failed to load profile: " + err.Error(),
			Cause:   err,
		}
	}
	return profile, nil
}
