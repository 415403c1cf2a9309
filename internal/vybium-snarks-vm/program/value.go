package program

import (
	"fmt"
	"strings"
)

// Value is what a register holds: either a single Literal or a named
// Composite of literals. The union is closed.
type Value interface {
	fmt.Stringer
	// Bits returns the canonical little-endian bit decomposition.
	Bits() []bool
	// Private reports whether any constituent literal is private.
	Private() bool

	isValue()
}

func (Literal) isValue()    {}
func (*Composite) isValue() {}

// Member is one named entry of a composite value.
type Member struct {
	Name    Identifier
	Literal Literal
}

// Composite is a named structure of independently visibility-tagged
// literals. Member count and order are fixed at construction.
type Composite struct {
	name    Identifier
	members []Member
}

// NewComposite constructs a composite value, rejecting duplicate member
// names.
func NewComposite(name Identifier, members []Member) (*Composite, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("composite %s must have at least one member", name)
	}
	seen := make(map[Identifier]bool, len(members))
	for _, member := range members {
		if seen[member.Name] {
			return nil, fmt.Errorf("composite %s has duplicate member %s", name, member.Name)
		}
		seen[member.Name] = true
	}
	return &Composite{name: name, members: append([]Member(nil), members...)}, nil
}

// Name returns the composite's identifier.
func (c *Composite) Name() Identifier {
	return c.name
}

// Members returns the ordered members.
func (c *Composite) Members() []Member {
	return c.members
}

// Member returns the named member's literal.
func (c *Composite) Member(name Identifier) (Literal, error) {
	for _, member := range c.members {
		if member.Name == name {
			return member.Literal, nil
		}
	}
	return Literal{}, fmt.Errorf("composite %s has no member %s", c.name, name)
}

// Bits concatenates the members' canonical bits in declared order.
func (c *Composite) Bits() []bool {
	var bits []bool
	for _, member := range c.members {
		bits = append(bits, member.Literal.Bits()...)
	}
	return bits
}

// Private reports whether any member is private.
func (c *Composite) Private() bool {
	for _, member := range c.members {
		if member.Literal.Private() {
			return true
		}
	}
	return false
}

// String prints the composite for diagnostics.
func (c *Composite) String() string {
	var b strings.Builder
	b.WriteString(c.name.String())
	b.WriteString(" { ")
	for i, member := range c.members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(member.Name.String())
		b.WriteString(": ")
		b.WriteString(member.Literal.String())
	}
	b.WriteString(" }")
	return b.String()
}

// valuesEqual reports deep equality of two values.
func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case Literal:
		other, ok := b.(Literal)
		return ok && a.Equal(other)
	case *Composite:
		other, ok := b.(*Composite)
		if !ok || a.name != other.name || len(a.members) != len(other.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Name != other.members[i].Name {
				return false
			}
			if !a.members[i].Literal.Equal(other.members[i].Literal) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
