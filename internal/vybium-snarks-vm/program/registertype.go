package program

import (
	"fmt"
	"strings"
)

// RegisterType is the static type descriptor of a register's value, used
// for type inference without evaluation. It pairs a literal kind with a
// visibility.
type RegisterType struct {
	kind LiteralKind
	vis  Visibility
}

// NewRegisterType returns a register type descriptor.
func NewRegisterType(kind LiteralKind, vis Visibility) RegisterType {
	return RegisterType{kind: kind, vis: vis}
}

// Kind returns the literal kind.
func (t RegisterType) Kind() LiteralKind {
	return t.kind
}

// Visibility returns the visibility.
func (t RegisterType) Visibility() Visibility {
	return t.vis
}

// Equal reports whether two register types are identical.
func (t RegisterType) Equal(other RegisterType) bool {
	return t.kind == other.kind && t.vis == other.vis
}

// String prints the type as "<kind>.<visibility>", e.g. "u8.private".
func (t RegisterType) String() string {
	return t.kind.String() + "." + t.vis.String()
}

// ParseRegisterType parses a "<kind>.<visibility>" annotation from the
// input, returning the remainder.
func ParseRegisterType(s string) (RegisterType, string, error) {
	token, rest := nextToken(s)
	t, err := registerTypeFromToken(token)
	if err != nil {
		return RegisterType{}, s, err
	}
	return t, rest, nil
}

func registerTypeFromToken(token string) (RegisterType, error) {
	name, suffix, found := strings.Cut(token, ".")
	if !found {
		return RegisterType{}, fmt.Errorf("register type %q is missing a visibility suffix", token)
	}
	kind, ok := kindFromName(name)
	if !ok {
		return RegisterType{}, fmt.Errorf("invalid register type %q", token)
	}
	switch suffix {
	case "public":
		return NewRegisterType(kind, Public), nil
	case "private":
		return NewRegisterType(kind, Private), nil
	default:
		return RegisterType{}, fmt.Errorf("invalid visibility %q in register type %q", suffix, token)
	}
}

// joinVisibility returns Private when any argument is private. Every
// operation derives its result visibility with this rule.
func joinVisibility(visibilities ...Visibility) Visibility {
	for _, v := range visibilities {
		if v == Private {
			return Private
		}
	}
	return Public
}
