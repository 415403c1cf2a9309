package program

import "fmt"

// Output declares a register whose final value a function returns, together
// with the literal type that value must carry.
type Output struct {
	register  Register
	valueType RegisterType
}

// NewOutput returns an output statement binding a register to a return type.
// Unlike inputs, an output register may reach into a composite member.
func NewOutput(register Register, valueType RegisterType) (Output, error) {
	return Output{register: register, valueType: valueType}, nil
}

// Register returns the declared return register.
func (out Output) Register() Register {
	return out.register
}

// ValueType returns the declared return type.
func (out Output) ValueType() RegisterType {
	return out.valueType
}

// Equal reports whether two output statements declare the same binding.
func (out Output) Equal(other Output) bool {
	return out.register.Equal(other.register) && out.valueType.Equal(other.valueType)
}

func (out Output) String() string {
	return fmt.Sprintf("output %s as %s;", out.register, out.valueType)
}

// ParseOutput parses an output statement of the form
// "output <register> as <type>.<visibility>;" and returns the remainder.
func ParseOutput(s string) (Output, string, error) {
	s = sanitize(s)
	s, err := expectToken(s, "output")
	if err != nil {
		return Output{}, "", err
	}
	register, s, err := ParseRegister(s)
	if err != nil {
		return Output{}, "", err
	}
	s, err = expectToken(s, "as")
	if err != nil {
		return Output{}, "", err
	}
	valueType, s, err := ParseRegisterType(s)
	if err != nil {
		return Output{}, "", err
	}
	s, err = expectByte(s, ';')
	if err != nil {
		return Output{}, "", err
	}
	out, err := NewOutput(register, valueType)
	if err != nil {
		return Output{}, "", err
	}
	return out, s, nil
}

// OutputFromString parses an output statement and requires that the entire
// string is consumed.
func OutputFromString(s string) (Output, error) {
	out, rest, err := ParseOutput(s)
	if err != nil {
		return Output{}, err
	}
	if err := ensureConsumed(rest, "output"); err != nil {
		return Output{}, err
	}
	return out, nil
}
