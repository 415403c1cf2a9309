package program

import (
	"fmt"
	"math/big"

	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/core"
)

// The arithmetic variants. Checked forms halt on overflow, underflow, and
// division by zero; wrapped forms compute modulo the operand's bit width
// and halt only on division by zero.
type (
	// Add computes first + second, halting on overflow.
	Add struct{ binaryArithmetic }
	// AddWrapped computes first + second modulo the operand bit width.
	AddWrapped struct{ binaryArithmetic }
	// Sub computes first - second, halting on underflow or overflow.
	Sub struct{ binaryArithmetic }
	// SubWrapped computes first - second modulo the operand bit width.
	SubWrapped struct{ binaryArithmetic }
	// Mul computes first * second, halting on overflow.
	Mul struct{ binaryArithmetic }
	// MulWrapped computes first * second modulo the operand bit width.
	MulWrapped struct{ binaryArithmetic }
	// Div computes first / second, halting on division by zero, and on
	// overflow for signed integers.
	Div struct{ binaryArithmetic }
	// DivWrapped computes first / second modulo the operand bit width,
	// halting on division by zero.
	DivWrapped struct{ binaryArithmetic }

	// Neg negates its operand, halting on signed-integer overflow.
	Neg struct{ unaryArithmetic }
	// Square squares a field operand.
	Square struct{ unaryArithmetic }
	// Inv computes the multiplicative inverse of a field operand, halting
	// on zero.
	Inv struct{ unaryArithmetic }
)

// NewAdd returns an add instruction.
func NewAdd(first, second Operand, destination Register) (Operation, error) {
	return newBinaryArithmetic(OpcodeAdd, first, second, destination)
}

// NewAddWrapped returns a wrapped add instruction.
func NewAddWrapped(first, second Operand, destination Register) (Operation, error) {
	return newBinaryArithmetic(OpcodeAddWrapped, first, second, destination)
}

// NewSub returns a sub instruction.
func NewSub(first, second Operand, destination Register) (Operation, error) {
	return newBinaryArithmetic(OpcodeSub, first, second, destination)
}

// NewSubWrapped returns a wrapped sub instruction.
func NewSubWrapped(first, second Operand, destination Register) (Operation, error) {
	return newBinaryArithmetic(OpcodeSubWrapped, first, second, destination)
}

// NewMul returns a mul instruction.
func NewMul(first, second Operand, destination Register) (Operation, error) {
	return newBinaryArithmetic(OpcodeMul, first, second, destination)
}

// NewMulWrapped returns a wrapped mul instruction.
func NewMulWrapped(first, second Operand, destination Register) (Operation, error) {
	return newBinaryArithmetic(OpcodeMulWrapped, first, second, destination)
}

// NewDiv returns a div instruction.
func NewDiv(first, second Operand, destination Register) (Operation, error) {
	return newBinaryArithmetic(OpcodeDiv, first, second, destination)
}

// NewDivWrapped returns a wrapped div instruction.
func NewDivWrapped(first, second Operand, destination Register) (Operation, error) {
	return newBinaryArithmetic(OpcodeDivWrapped, first, second, destination)
}

func newBinaryArithmetic(code Opcode, first, second Operand, destination Register) (Operation, error) {
	shape, err := NewBinaryOperation(first, second, destination)
	if err != nil {
		return nil, err
	}
	return newBinaryVariant(code, shape)
}

// NewNeg returns a neg instruction.
func NewNeg(operand Operand, destination Register) (Operation, error) {
	return newUnaryArithmetic(OpcodeNeg, operand, destination)
}

// NewSquare returns a square instruction.
func NewSquare(operand Operand, destination Register) (Operation, error) {
	return newUnaryArithmetic(OpcodeSquare, operand, destination)
}

// NewInv returns an inv instruction.
func NewInv(operand Operand, destination Register) (Operation, error) {
	return newUnaryArithmetic(OpcodeInv, operand, destination)
}

func newUnaryArithmetic(code Opcode, operand Operand, destination Register) (Operation, error) {
	shape, err := NewUnaryOperation(operand, destination)
	if err != nil {
		return nil, err
	}
	return newUnaryVariant(code, shape)
}

// binaryArithmetic is the shared behavior of the two-operand arithmetic
// variants.
type binaryArithmetic struct {
	BinaryOperation
	code Opcode
}

func (op *binaryArithmetic) Opcode() Opcode {
	return op.code
}

func (op *binaryArithmetic) String() string {
	return op.code.Token() + " " + op.operandsString()
}

func (op *binaryArithmetic) Evaluate(regs *Registers) error {
	first, err := loadLiteral(op.First(), regs, op.code)
	if err != nil {
		return err
	}
	second, err := loadLiteral(op.Second(), regs, op.code)
	if err != nil {
		return err
	}
	if first.Kind() != second.Kind() {
		return fmt.Errorf("%s operand type mismatch: %s and %s", op.code.Token(), first.Kind(), second.Kind())
	}
	if err := checkArithmeticKind(op.code, first.Kind()); err != nil {
		return err
	}

	result, err := applyBinaryArithmetic(op.code, first.Kind(), first.Num(), second.Num())
	if err != nil {
		return err
	}
	literal, err := makeNumericLiteral(first.Kind(), result, joinVisibility(first.Visibility(), second.Visibility()))
	if err != nil {
		return err
	}
	return regs.Store(op.Destination(), literal)
}

func (op *binaryArithmetic) OutputType(inputs []RegisterType) (RegisterType, error) {
	if len(inputs) != 2 {
		return RegisterType{}, fmt.Errorf("%s takes 2 operands, got %d input types", op.code.Token(), len(inputs))
	}
	if inputs[0].Kind() != inputs[1].Kind() {
		return RegisterType{}, fmt.Errorf("%s operand type mismatch: %s and %s", op.code.Token(), inputs[0].Kind(), inputs[1].Kind())
	}
	if err := checkArithmeticKind(op.code, inputs[0].Kind()); err != nil {
		return RegisterType{}, err
	}
	return NewRegisterType(inputs[0].Kind(), joinVisibility(inputs[0].Visibility(), inputs[1].Visibility())), nil
}

// unaryArithmetic is the shared behavior of the one-operand arithmetic
// variants.
type unaryArithmetic struct {
	UnaryOperation
	code Opcode
}

func (op *unaryArithmetic) Opcode() Opcode {
	return op.code
}

func (op *unaryArithmetic) String() string {
	return op.code.Token() + " " + op.operandsString()
}

func (op *unaryArithmetic) Evaluate(regs *Registers) error {
	operand, err := loadLiteral(op.First(), regs, op.code)
	if err != nil {
		return err
	}
	if err := checkArithmeticKind(op.code, operand.Kind()); err != nil {
		return err
	}
	result, err := applyUnaryArithmetic(op.code, operand.Kind(), operand.Num())
	if err != nil {
		return err
	}
	literal, err := makeNumericLiteral(operand.Kind(), result, operand.Visibility())
	if err != nil {
		return err
	}
	return regs.Store(op.Destination(), literal)
}

func (op *unaryArithmetic) OutputType(inputs []RegisterType) (RegisterType, error) {
	if len(inputs) != 1 {
		return RegisterType{}, fmt.Errorf("%s takes 1 operand, got %d input types", op.code.Token(), len(inputs))
	}
	if err := checkArithmeticKind(op.code, inputs[0].Kind()); err != nil {
		return RegisterType{}, err
	}
	return inputs[0], nil
}

// loadLiteral resolves an operand and requires a literal value.
func loadLiteral(operand Operand, regs *Registers, code Opcode) (Literal, error) {
	value, err := operand.Load(regs)
	if err != nil {
		return Literal{}, err
	}
	literal, ok := value.(Literal)
	if !ok {
		return Literal{}, fmt.Errorf("%s operand must be a literal, found composite value", code.Token())
	}
	return literal, nil
}

// checkArithmeticKind rejects kinds an arithmetic opcode is not defined on.
func checkArithmeticKind(code Opcode, kind LiteralKind) error {
	switch code {
	case OpcodeAddWrapped, OpcodeSubWrapped, OpcodeMulWrapped, OpcodeDivWrapped:
		if !kind.IsInteger() {
			return fmt.Errorf("%s is only defined for integer types, found %s", code.Token(), kind)
		}
	case OpcodeNeg:
		if kind != KindField && kind != KindScalar && !kind.IsSigned() {
			return fmt.Errorf("%s is not defined for %s", code.Token(), kind)
		}
	case OpcodeSquare, OpcodeInv:
		if kind != KindField {
			return fmt.Errorf("%s is only defined for field, found %s", code.Token(), kind)
		}
	default:
		if kind != KindField && kind != KindScalar && !kind.IsInteger() {
			return fmt.Errorf("%s is not defined for %s", code.Token(), kind)
		}
	}
	return nil
}

func applyBinaryArithmetic(code Opcode, kind LiteralKind, a, b *big.Int) (*big.Int, error) {
	if err := checkArithmeticKind(code, kind); err != nil {
		return nil, err
	}
	switch kind {
	case KindField:
		return applyModularArithmetic(code, core.BaseField, a, b)
	case KindScalar:
		return applyModularArithmetic(code, core.ScalarField, a, b)
	default:
		return applyIntegerArithmetic(code, kind, a, b)
	}
}

func applyModularArithmetic(code Opcode, field *core.Field, a, b *big.Int) (*big.Int, error) {
	x, y := field.NewElement(a), field.NewElement(b)
	switch code {
	case OpcodeAdd:
		return x.Add(y).Big(), nil
	case OpcodeSub:
		return x.Sub(y).Big(), nil
	case OpcodeMul:
		return x.Mul(y).Big(), nil
	case OpcodeDiv:
		if y.IsZero() {
			return nil, fmt.Errorf("division by zero")
		}
		quotient, err := x.Div(y)
		if err != nil {
			return nil, err
		}
		return quotient.Big(), nil
	default:
		return nil, fmt.Errorf("%s is not defined for field types", code.Token())
	}
}

func applyIntegerArithmetic(code Opcode, kind LiteralKind, a, b *big.Int) (*big.Int, error) {
	var exact *big.Int
	switch code {
	case OpcodeAdd, OpcodeAddWrapped:
		exact = new(big.Int).Add(a, b)
	case OpcodeSub, OpcodeSubWrapped:
		exact = new(big.Int).Sub(a, b)
	case OpcodeMul, OpcodeMulWrapped:
		exact = new(big.Int).Mul(a, b)
	case OpcodeDiv, OpcodeDivWrapped:
		if b.Sign() == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		// Quotient truncates toward zero.
		exact = new(big.Int).Quo(a, b)
	default:
		return nil, fmt.Errorf("%s is not an arithmetic opcode", code)
	}

	switch code {
	case OpcodeAddWrapped, OpcodeSubWrapped, OpcodeMulWrapped, OpcodeDivWrapped:
		return wrapInteger(exact, kind), nil
	default:
		return checkIntegerRange(exact, kind, code)
	}
}

func applyUnaryArithmetic(code Opcode, kind LiteralKind, a *big.Int) (*big.Int, error) {
	if err := checkArithmeticKind(code, kind); err != nil {
		return nil, err
	}
	switch code {
	case OpcodeNeg:
		if kind.IsSigned() {
			return checkIntegerRange(new(big.Int).Neg(a), kind, code)
		}
		field := core.BaseField
		if kind == KindScalar {
			field = core.ScalarField
		}
		return field.NewElement(a).Neg().Big(), nil
	case OpcodeSquare:
		return core.BaseField.NewElement(a).Square().Big(), nil
	case OpcodeInv:
		inv, err := core.BaseField.NewElement(a).Inv()
		if err != nil {
			return nil, fmt.Errorf("cannot invert zero")
		}
		return inv.Big(), nil
	default:
		return nil, fmt.Errorf("%s is not an arithmetic opcode", code)
	}
}

// wrapInteger reduces a value modulo 2^N and reinterprets the result in the
// kind's two's-complement range.
func wrapInteger(value *big.Int, kind LiteralKind) *big.Int {
	bits := uint(kind.BitSize())
	modulus := new(big.Int).Lsh(big.NewInt(1), bits)
	wrapped := new(big.Int).Mod(value, modulus)
	if wrapped.Sign() < 0 {
		wrapped.Add(wrapped, modulus)
	}
	if kind.IsSigned() {
		bound := new(big.Int).Lsh(big.NewInt(1), bits-1)
		if wrapped.Cmp(bound) >= 0 {
			wrapped.Sub(wrapped, modulus)
		}
	}
	return wrapped
}

// checkIntegerRange halts when a checked operation's exact result escapes
// the kind's range.
func checkIntegerRange(value *big.Int, kind LiteralKind, code Opcode) (*big.Int, error) {
	min, max := integerBounds(kind)
	if value.Cmp(max) > 0 {
		return nil, fmt.Errorf("integer overflow on %q", code.Token())
	}
	if value.Cmp(min) < 0 {
		return nil, fmt.Errorf("integer underflow on %q", code.Token())
	}
	return value, nil
}

// makeNumericLiteral rebuilds a literal of the given kind from a canonical
// result value.
func makeNumericLiteral(kind LiteralKind, value *big.Int, vis Visibility) (Value, error) {
	switch kind {
	case KindField:
		return NewFieldLiteral(value, vis)
	case KindGroup:
		return NewGroupLiteral(value, vis)
	case KindScalar:
		return NewScalarLiteral(value, vis)
	default:
		return NewIntegerLiteral(kind, value, vis)
	}
}
