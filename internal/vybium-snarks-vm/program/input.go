package program

import "fmt"

// Input declares a function parameter register and the literal type its
// caller must supply.
type Input struct {
	register  Register
	valueType RegisterType
}

// NewInput returns an input statement binding a top-level register to a type.
func NewInput(register Register, valueType RegisterType) (Input, error) {
	if !register.TopLevel() {
		return Input{}, fmt.Errorf("input register %s must not access a member path", register)
	}
	return Input{register: register, valueType: valueType}, nil
}

// Register returns the declared parameter register.
func (in Input) Register() Register {
	return in.register
}

// ValueType returns the declared parameter type.
func (in Input) ValueType() RegisterType {
	return in.valueType
}

// Equal reports whether two input statements declare the same binding.
func (in Input) Equal(other Input) bool {
	return in.register.Equal(other.register) && in.valueType.Equal(other.valueType)
}

func (in Input) String() string {
	return fmt.Sprintf("input %s as %s;", in.register, in.valueType)
}

// ParseInput parses an input statement of the form
// "input <register> as <type>.<visibility>;" and returns the remainder.
func ParseInput(s string) (Input, string, error) {
	s = sanitize(s)
	s, err := expectToken(s, "input")
	if err != nil {
		return Input{}, "", err
	}
	register, s, err := ParseRegister(s)
	if err != nil {
		return Input{}, "", err
	}
	s, err = expectToken(s, "as")
	if err != nil {
		return Input{}, "", err
	}
	valueType, s, err := ParseRegisterType(s)
	if err != nil {
		return Input{}, "", err
	}
	s, err = expectByte(s, ';')
	if err != nil {
		return Input{}, "", err
	}
	in, err := NewInput(register, valueType)
	if err != nil {
		return Input{}, "", err
	}
	return in, s, nil
}

// InputFromString parses an input statement and requires that the entire
// string is consumed.
func InputFromString(s string) (Input, error) {
	in, rest, err := ParseInput(s)
	if err != nil {
		return Input{}, err
	}
	if err := ensureConsumed(rest, "input"); err != nil {
		return Input{}, err
	}
	return in, nil
}
