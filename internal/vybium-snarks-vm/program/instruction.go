package program

import "fmt"

// Opcode identifies which operation an instruction performs. Its numeric
// value is the binary discriminant: the index into the ordered variant
// list below.
type Opcode uint16

// The closed variant set, in the fixed order that defines each opcode's
// binary discriminant. Reordering this block is a wire-format change.
const (
	OpcodeAdd Opcode = iota
	OpcodeAddWrapped
	OpcodeCommitPed64
	OpcodeCommitPed128
	OpcodeDiv
	OpcodeDivWrapped
	OpcodeHashPed64
	OpcodeHashPed128
	OpcodeHashPed256
	OpcodeHashPed512
	OpcodeHashPed768
	OpcodeHashPed1024
	OpcodeHashPsd2
	OpcodeHashPsd4
	OpcodeHashPsd8
	OpcodeInv
	OpcodeMul
	OpcodeMulWrapped
	OpcodeNeg
	OpcodeSquare
	OpcodeSub
	OpcodeSubWrapped

	opcodeCount
)

// operandShape is the structural arity of an operation.
type operandShape uint8

const (
	shapeUnary operandShape = iota
	shapeBinary
)

// opcodeInfo is the static metadata of one opcode.
type opcodeInfo struct {
	// Name is the variant name used in diagnostics.
	Name string
	// Token is the textual opcode.
	Token string
	// Shape is the operand arity.
	Shape operandShape
	// Capacity is the input bit capacity of Pedersen hash and commit
	// variants, 0 otherwise.
	Capacity int
	// Rate is the sponge rate of Poseidon hash variants, 0 otherwise.
	Rate int
}

// opcodes is indexed by Opcode (the binary-discriminant table).
var opcodes = [opcodeCount]opcodeInfo{
	OpcodeAdd:          {Name: "Add", Token: "add", Shape: shapeBinary},
	OpcodeAddWrapped:   {Name: "AddWrapped", Token: "add.w", Shape: shapeBinary},
	OpcodeCommitPed64:  {Name: "CommitPed64", Token: "commit.ped64", Shape: shapeBinary, Capacity: 64},
	OpcodeCommitPed128: {Name: "CommitPed128", Token: "commit.ped128", Shape: shapeBinary, Capacity: 128},
	OpcodeDiv:          {Name: "Div", Token: "div", Shape: shapeBinary},
	OpcodeDivWrapped:   {Name: "DivWrapped", Token: "div.w", Shape: shapeBinary},
	OpcodeHashPed64:    {Name: "HashPed64", Token: "hash.ped64", Shape: shapeUnary, Capacity: 64},
	OpcodeHashPed128:   {Name: "HashPed128", Token: "hash.ped128", Shape: shapeUnary, Capacity: 128},
	OpcodeHashPed256:   {Name: "HashPed256", Token: "hash.ped256", Shape: shapeUnary, Capacity: 256},
	OpcodeHashPed512:   {Name: "HashPed512", Token: "hash.ped512", Shape: shapeUnary, Capacity: 512},
	OpcodeHashPed768:   {Name: "HashPed768", Token: "hash.ped768", Shape: shapeUnary, Capacity: 768},
	OpcodeHashPed1024:  {Name: "HashPed1024", Token: "hash.ped1024", Shape: shapeUnary, Capacity: 1024},
	OpcodeHashPsd2:     {Name: "HashPsd2", Token: "hash.psd2", Shape: shapeUnary, Rate: 2},
	OpcodeHashPsd4:     {Name: "HashPsd4", Token: "hash.psd4", Shape: shapeUnary, Rate: 4},
	OpcodeHashPsd8:     {Name: "HashPsd8", Token: "hash.psd8", Shape: shapeUnary, Rate: 8},
	OpcodeInv:          {Name: "Inv", Token: "inv", Shape: shapeUnary},
	OpcodeMul:          {Name: "Mul", Token: "mul", Shape: shapeBinary},
	OpcodeMulWrapped:   {Name: "MulWrapped", Token: "mul.w", Shape: shapeBinary},
	OpcodeNeg:          {Name: "Neg", Token: "neg", Shape: shapeUnary},
	OpcodeSquare:       {Name: "Square", Token: "square", Shape: shapeUnary},
	OpcodeSub:          {Name: "Sub", Token: "sub", Shape: shapeBinary},
	OpcodeSubWrapped:   {Name: "SubWrapped", Token: "sub.w", Shape: shapeBinary},
}

// parseOrder is the text table: the precedence order in which opcode
// tokens are tried during parsing, first match wins. It is deliberately a
// separate list from the discriminant table above so that reordering one
// never changes the other's semantics.
var parseOrder = []Opcode{
	OpcodeAdd,
	OpcodeAddWrapped,
	OpcodeCommitPed64,
	OpcodeCommitPed128,
	OpcodeDiv,
	OpcodeDivWrapped,
	OpcodeHashPed64,
	OpcodeHashPed128,
	OpcodeHashPed256,
	OpcodeHashPed512,
	OpcodeHashPed768,
	OpcodeHashPed1024,
	OpcodeHashPsd2,
	OpcodeHashPsd4,
	OpcodeHashPsd8,
	OpcodeInv,
	OpcodeMul,
	OpcodeMulWrapped,
	OpcodeNeg,
	OpcodeSquare,
	OpcodeSub,
	OpcodeSubWrapped,
}

// Token returns the textual opcode.
func (c Opcode) Token() string {
	return opcodes[c].Token
}

// String returns the variant name.
func (c Opcode) String() string {
	if c < opcodeCount {
		return opcodes[c].Name
	}
	return fmt.Sprintf("unknown(%d)", uint16(c))
}

func opcodeFromToken(token string) (Opcode, bool) {
	for _, code := range parseOrder {
		if opcodes[code].Token == token {
			return code, true
		}
	}
	return 0, false
}

// Operation is implemented by every concrete instruction variant. The set
// of implementations is closed; dispatch must route to the one active
// variant, and an unknown variant is a defect rather than a runtime case.
type Operation interface {
	// Opcode returns the variant's opcode.
	Opcode() Opcode
	// Operands returns the operand list in declared order.
	Operands() []Operand
	// Destination returns the destination register.
	Destination() Register
	// Evaluate resolves the operands against the register file, applies
	// the variant's capability, and stores the result in the destination.
	Evaluate(regs *Registers) error
	// OutputType returns the result type for the given operand types
	// without evaluating. It must agree exactly with Evaluate.
	OutputType(inputs []RegisterType) (RegisterType, error)
	// String prints the operation without the terminating semicolon.
	String() string
}

// Instruction wraps exactly one active Operation.
type Instruction struct {
	op Operation
}

// NewInstruction wraps an operation.
func NewInstruction(op Operation) Instruction {
	return Instruction{op: op}
}

// Opcode returns the opcode of the active operation.
func (i Instruction) Opcode() Opcode {
	return i.op.Opcode()
}

// Operands returns the operands of the active operation in declared order.
func (i Instruction) Operands() []Operand {
	return i.op.Operands()
}

// Destination returns the destination register of the active operation.
func (i Instruction) Destination() Register {
	return i.op.Destination()
}

// Evaluate evaluates the active operation against the register file.
func (i Instruction) Evaluate(regs *Registers) error {
	return i.op.Evaluate(regs)
}

// OutputType returns the result type for the given operand types.
func (i Instruction) OutputType(inputs []RegisterType) (RegisterType, error) {
	return i.op.OutputType(inputs)
}

// Equal reports whether two instructions have the same variant, operands,
// and destination.
func (i Instruction) Equal(other Instruction) bool {
	if i.Opcode() != other.Opcode() || !i.Destination().Equal(other.Destination()) {
		return false
	}
	a, b := i.Operands(), other.Operands()
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !a[idx].Equal(b[idx]) {
			return false
		}
	}
	return true
}

// String prints the instruction in canonical text form, semicolon included.
func (i Instruction) String() string {
	return i.op.String() + ";"
}

// newOperation instantiates the concrete variant for an opcode. The switch
// is exhaustive over the closed set.
func newOperation(code Opcode, operands []Operand, destination Register) (Operation, error) {
	info := opcodes[code]
	switch info.Shape {
	case shapeUnary:
		if len(operands) != 1 {
			return nil, fmt.Errorf("%s takes 1 operand, got %d", info.Token, len(operands))
		}
		shape, err := NewUnaryOperation(operands[0], destination)
		if err != nil {
			return nil, err
		}
		return newUnaryVariant(code, shape)
	case shapeBinary:
		if len(operands) != 2 {
			return nil, fmt.Errorf("%s takes 2 operands, got %d", info.Token, len(operands))
		}
		shape, err := NewBinaryOperation(operands[0], operands[1], destination)
		if err != nil {
			return nil, err
		}
		return newBinaryVariant(code, shape)
	default:
		return nil, fmt.Errorf("unknown operand shape for opcode %s", code)
	}
}

func newUnaryVariant(code Opcode, shape UnaryOperation) (Operation, error) {
	switch code {
	case OpcodeInv:
		return &Inv{unaryArithmetic{shape, code}}, nil
	case OpcodeNeg:
		return &Neg{unaryArithmetic{shape, code}}, nil
	case OpcodeSquare:
		return &Square{unaryArithmetic{shape, code}}, nil
	case OpcodeHashPed64:
		return &HashPed64{hashOperation{shape, code}}, nil
	case OpcodeHashPed128:
		return &HashPed128{hashOperation{shape, code}}, nil
	case OpcodeHashPed256:
		return &HashPed256{hashOperation{shape, code}}, nil
	case OpcodeHashPed512:
		return &HashPed512{hashOperation{shape, code}}, nil
	case OpcodeHashPed768:
		return &HashPed768{hashOperation{shape, code}}, nil
	case OpcodeHashPed1024:
		return &HashPed1024{hashOperation{shape, code}}, nil
	case OpcodeHashPsd2:
		return &HashPsd2{hashOperation{shape, code}}, nil
	case OpcodeHashPsd4:
		return &HashPsd4{hashOperation{shape, code}}, nil
	case OpcodeHashPsd8:
		return &HashPsd8{hashOperation{shape, code}}, nil
	default:
		return nil, fmt.Errorf("opcode %s is not a unary variant", code)
	}
}

func newBinaryVariant(code Opcode, shape BinaryOperation) (Operation, error) {
	switch code {
	case OpcodeAdd:
		return &Add{binaryArithmetic{shape, code}}, nil
	case OpcodeAddWrapped:
		return &AddWrapped{binaryArithmetic{shape, code}}, nil
	case OpcodeSub:
		return &Sub{binaryArithmetic{shape, code}}, nil
	case OpcodeSubWrapped:
		return &SubWrapped{binaryArithmetic{shape, code}}, nil
	case OpcodeMul:
		return &Mul{binaryArithmetic{shape, code}}, nil
	case OpcodeMulWrapped:
		return &MulWrapped{binaryArithmetic{shape, code}}, nil
	case OpcodeDiv:
		return &Div{binaryArithmetic{shape, code}}, nil
	case OpcodeDivWrapped:
		return &DivWrapped{binaryArithmetic{shape, code}}, nil
	case OpcodeCommitPed64:
		return &CommitPed64{commitOperation{shape, code}}, nil
	case OpcodeCommitPed128:
		return &CommitPed128{commitOperation{shape, code}}, nil
	default:
		return nil, fmt.Errorf("opcode %s is not a binary variant", code)
	}
}

// ParseInstruction parses one instruction from the input, returning the
// remainder. Opcode tokens are tried in the fixed precedence order of the
// text table; the first exact match wins.
func ParseInstruction(s string) (Instruction, string, error) {
	s = sanitize(s)
	token, rest := nextToken(s)
	code, ok := opcodeFromToken(token)
	if !ok {
		return Instruction{}, s, fmt.Errorf("unknown opcode %q", token)
	}

	var operands []Operand
	var destination Register
	var err error
	switch opcodes[code].Shape {
	case shapeUnary:
		var shape UnaryOperation
		shape, rest, err = parseUnaryOperands(rest)
		if err != nil {
			return Instruction{}, s, fmt.Errorf("failed to parse %s: %w", token, err)
		}
		operands, destination = shape.Operands(), shape.Destination()
	default:
		var shape BinaryOperation
		shape, rest, err = parseBinaryOperands(rest)
		if err != nil {
			return Instruction{}, s, fmt.Errorf("failed to parse %s: %w", token, err)
		}
		operands, destination = shape.Operands(), shape.Destination()
	}

	rest, err = expectByte(rest, ';')
	if err != nil {
		return Instruction{}, s, fmt.Errorf("failed to parse %s: %w", token, err)
	}

	op, err := newOperation(code, operands, destination)
	if err != nil {
		return Instruction{}, s, err
	}
	return NewInstruction(op), rest, nil
}

// InstructionFromString parses an instruction and requires the entire input
// to be consumed.
func InstructionFromString(s string) (Instruction, error) {
	instruction, remainder, err := ParseInstruction(s)
	if err != nil {
		return Instruction{}, err
	}
	if err := ensureConsumed(remainder, "instruction"); err != nil {
		return Instruction{}, err
	}
	return instruction, nil
}
