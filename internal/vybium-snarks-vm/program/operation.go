package program

import (
	"fmt"
	"strings"
)

// UnaryOperation is the recurring one-operand instruction shape: a single
// operand and a destination register.
type UnaryOperation struct {
	operand     Operand
	destination Register
}

// NewUnaryOperation constructs the shape; the destination must be a
// top-level register.
func NewUnaryOperation(operand Operand, destination Register) (UnaryOperation, error) {
	if !destination.TopLevel() {
		return UnaryOperation{}, fmt.Errorf("destination register %s cannot have a member path", destination)
	}
	return UnaryOperation{operand: operand, destination: destination}, nil
}

// Operands returns the operand list in declared order.
func (op UnaryOperation) Operands() []Operand {
	return []Operand{op.operand}
}

// First returns the single operand.
func (op UnaryOperation) First() Operand {
	return op.operand
}

// Destination returns the destination register.
func (op UnaryOperation) Destination() Register {
	return op.destination
}

func (op UnaryOperation) operandsString() string {
	return op.operand.String() + " into " + op.destination.String()
}

// parseUnaryOperands parses "<operand> into <destination>".
func parseUnaryOperands(s string) (UnaryOperation, string, error) {
	operand, rest, err := ParseOperand(s)
	if err != nil {
		return UnaryOperation{}, s, err
	}
	rest, err = expectToken(rest, "into")
	if err != nil {
		return UnaryOperation{}, s, err
	}
	destination, rest, err := ParseRegister(rest)
	if err != nil {
		return UnaryOperation{}, s, err
	}
	op, err := NewUnaryOperation(operand, destination)
	if err != nil {
		return UnaryOperation{}, s, err
	}
	return op, rest, nil
}

// BinaryOperation is the recurring two-operand instruction shape: a first
// and second operand and a destination register.
type BinaryOperation struct {
	first       Operand
	second      Operand
	destination Register
}

// NewBinaryOperation constructs the shape; the destination must be a
// top-level register.
func NewBinaryOperation(first, second Operand, destination Register) (BinaryOperation, error) {
	if !destination.TopLevel() {
		return BinaryOperation{}, fmt.Errorf("destination register %s cannot have a member path", destination)
	}
	return BinaryOperation{first: first, second: second, destination: destination}, nil
}

// Operands returns the operand list in declared order.
func (op BinaryOperation) Operands() []Operand {
	return []Operand{op.first, op.second}
}

// First returns the first operand.
func (op BinaryOperation) First() Operand {
	return op.first
}

// Second returns the second operand.
func (op BinaryOperation) Second() Operand {
	return op.second
}

// Destination returns the destination register.
func (op BinaryOperation) Destination() Register {
	return op.destination
}

func (op BinaryOperation) operandsString() string {
	var b strings.Builder
	b.WriteString(op.first.String())
	b.WriteByte(' ')
	b.WriteString(op.second.String())
	b.WriteString(" into ")
	b.WriteString(op.destination.String())
	return b.String()
}

// parseBinaryOperands parses "<first> <second> into <destination>".
func parseBinaryOperands(s string) (BinaryOperation, string, error) {
	first, rest, err := ParseOperand(s)
	if err != nil {
		return BinaryOperation{}, s, err
	}
	second, rest, err := ParseOperand(rest)
	if err != nil {
		return BinaryOperation{}, s, err
	}
	rest, err = expectToken(rest, "into")
	if err != nil {
		return BinaryOperation{}, s, err
	}
	destination, rest, err := ParseRegister(rest)
	if err != nil {
		return BinaryOperation{}, s, err
	}
	op, err := NewBinaryOperation(first, second, destination)
	if err != nil {
		return BinaryOperation{}, s, err
	}
	return op, rest, nil
}
