package program

import (
	"fmt"

	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/network"
)

// Registers is the register file backing one function evaluation. A slot
// must be defined before it is assigned, and assigned before it is loaded.
// Its lifetime is scoped to a single evaluation; on a failed evaluation the
// caller is expected to discard it, partially written state included.
type Registers struct {
	limit  int
	values map[uint64]Value
}

// NewRegisters returns an empty register file bounded by the profile's
// register limit. A nil profile uses the default profile.
func NewRegisters(profile *network.Profile) *Registers {
	if profile == nil {
		profile = network.Default()
	}
	return &Registers{
		limit:  profile.MaxRegisters,
		values: make(map[uint64]Value),
	}
}

// Define reserves the register slot. The register must be top-level and not
// already defined.
func (regs *Registers) Define(r Register) error {
	if !r.TopLevel() {
		return fmt.Errorf("cannot define register %s with a member path", r)
	}
	if _, ok := regs.values[r.Locator()]; ok {
		return fmt.Errorf("register %s is already defined", r)
	}
	if len(regs.values) >= regs.limit {
		return fmt.Errorf("cannot define more than %d registers", regs.limit)
	}
	regs.values[r.Locator()] = nil
	return nil
}

// Assign stores a value into a defined register, overwriting any previous
// value. The register must be top-level.
func (regs *Registers) Assign(r Register, value Value) error {
	if !r.TopLevel() {
		return fmt.Errorf("cannot assign to register %s with a member path", r)
	}
	if value == nil {
		return fmt.Errorf("cannot assign a nil value to register %s", r)
	}
	if _, ok := regs.values[r.Locator()]; !ok {
		return fmt.Errorf("register %s is not defined", r)
	}
	regs.values[r.Locator()] = value
	return nil
}

// Store defines the register if needed and assigns the value. Instructions
// use it to write their destination.
func (regs *Registers) Store(r Register, value Value) error {
	if _, ok := regs.values[r.Locator()]; !ok {
		if err := regs.Define(r); err != nil {
			return err
		}
	}
	return regs.Assign(r, value)
}

// Load resolves the register to a value. A member path selects the named
// member of a composite as a literal.
func (regs *Registers) Load(r Register) (Value, error) {
	value, ok := regs.values[r.Locator()]
	if !ok {
		return nil, fmt.Errorf("register %s is not defined", r)
	}
	if value == nil {
		return nil, fmt.Errorf("register %s is not assigned", r)
	}
	for _, segment := range r.path {
		composite, ok := value.(*Composite)
		if !ok {
			return nil, fmt.Errorf("cannot access member %s of a literal in %s", segment, r)
		}
		member, err := composite.Member(segment)
		if err != nil {
			return nil, fmt.Errorf("cannot load %s: %w", r, err)
		}
		value = member
	}
	return value, nil
}
