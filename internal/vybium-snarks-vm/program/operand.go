package program

import "fmt"

// Operand is a value source for an instruction: either an immediate literal
// or a register reference resolved at evaluation time. Operands are
// immutable once an instruction is constructed.
type Operand struct {
	literal  *Literal
	register *Register
}

// NewLiteralOperand returns an operand embedding an immediate literal.
func NewLiteralOperand(literal Literal) Operand {
	return Operand{literal: &literal}
}

// NewRegisterOperand returns an operand referencing a register.
func NewRegisterOperand(register Register) Operand {
	return Operand{register: &register}
}

// IsLiteral reports whether the operand is an immediate literal.
func (o Operand) IsLiteral() bool {
	return o.literal != nil
}

// IsRegister reports whether the operand is a register reference.
func (o Operand) IsRegister() bool {
	return o.register != nil
}

// Literal returns the embedded literal; valid only when IsLiteral.
func (o Operand) Literal() Literal {
	return *o.literal
}

// Register returns the referenced register; valid only when IsRegister.
func (o Operand) Register() Register {
	return *o.register
}

// Load resolves the operand against the register file.
func (o Operand) Load(regs *Registers) (Value, error) {
	switch {
	case o.literal != nil:
		return *o.literal, nil
	case o.register != nil:
		return regs.Load(*o.register)
	default:
		return nil, fmt.Errorf("operand is empty")
	}
}

// Equal reports whether two operands are identical.
func (o Operand) Equal(other Operand) bool {
	switch {
	case o.literal != nil && other.literal != nil:
		return o.literal.Equal(*other.literal)
	case o.register != nil && other.register != nil:
		return o.register.Equal(*other.register)
	default:
		return false
	}
}

// String prints the operand in its text form.
func (o Operand) String() string {
	if o.literal != nil {
		return o.literal.String()
	}
	return o.register.String()
}

// ParseOperand parses a register reference or a literal from the input,
// returning the remainder.
func ParseOperand(s string) (Operand, string, error) {
	s = sanitize(s)
	if token, _ := nextToken(s); isRegisterToken(token) {
		register, rest, err := ParseRegister(s)
		if err != nil {
			return Operand{}, s, err
		}
		return NewRegisterOperand(register), rest, nil
	}
	literal, rest, err := ParseLiteral(s)
	if err != nil {
		return Operand{}, s, err
	}
	return NewLiteralOperand(literal), rest, nil
}
