package program

import (
	"fmt"
	"strconv"
	"strings"
)

// Register addresses a storage slot in a function's register file. It may
// carry a path of member names for addressing into a composite value, as in
// "r0.owner".
type Register struct {
	locator uint64
	path    []Identifier
}

// NewRegister returns a top-level register with the given locator.
func NewRegister(locator uint64) Register {
	return Register{locator: locator}
}

// NewMemberRegister returns a register addressing into a composite value.
func NewMemberRegister(locator uint64, path ...Identifier) Register {
	return Register{locator: locator, path: append([]Identifier(nil), path...)}
}

// Locator returns the register index.
func (r Register) Locator() uint64 {
	return r.locator
}

// Path returns the member access path, empty for a top-level register.
func (r Register) Path() []Identifier {
	return r.path
}

// TopLevel reports whether the register has no member path.
func (r Register) TopLevel() bool {
	return len(r.path) == 0
}

// Equal reports whether two registers address the same slot and path.
func (r Register) Equal(other Register) bool {
	if r.locator != other.locator || len(r.path) != len(other.path) {
		return false
	}
	for i := range r.path {
		if r.path[i] != other.path[i] {
			return false
		}
	}
	return true
}

// String prints the register as "r<locator>" with any member path appended.
func (r Register) String() string {
	var b strings.Builder
	b.WriteByte('r')
	b.WriteString(strconv.FormatUint(r.locator, 10))
	for _, segment := range r.path {
		b.WriteByte('.')
		b.WriteString(segment.String())
	}
	return b.String()
}

// ParseRegister parses a register from the input, returning the remainder.
func ParseRegister(s string) (Register, string, error) {
	token, rest := nextToken(s)
	register, err := registerFromToken(token)
	if err != nil {
		return Register{}, s, err
	}
	return register, rest, nil
}

func registerFromToken(token string) (Register, error) {
	if len(token) < 2 || token[0] != 'r' || token[1] < '0' || token[1] > '9' {
		return Register{}, fmt.Errorf("invalid register %q", token)
	}
	segments := strings.Split(token[1:], ".")
	locator, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		return Register{}, fmt.Errorf("invalid register locator in %q", token)
	}
	path := make([]Identifier, 0, len(segments)-1)
	for _, segment := range segments[1:] {
		id, err := NewIdentifier(segment)
		if err != nil {
			return Register{}, fmt.Errorf("invalid register member in %q: %w", token, err)
		}
		path = append(path, id)
	}
	return Register{locator: locator, path: path}, nil
}

// isRegisterToken reports whether a token looks like a register reference.
func isRegisterToken(token string) bool {
	return len(token) >= 2 && token[0] == 'r' && token[1] >= '0' && token[1] <= '9'
}
