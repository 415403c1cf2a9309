package program

import (
	"fmt"

	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/core"
)

// The hash and commit variants. Pedersen variants consume the canonical bit
// string of the operand and enforce a fixed input capacity; Poseidon variants
// absorb the operand's field representation at a fixed sponge rate and accept
// inputs of any length.
type (
	// HashPed64 computes a Pedersen hash over at most 64 input bits.
	HashPed64 struct{ hashOperation }
	// HashPed128 computes a Pedersen hash over at most 128 input bits.
	HashPed128 struct{ hashOperation }
	// HashPed256 computes a Pedersen hash over at most 256 input bits.
	HashPed256 struct{ hashOperation }
	// HashPed512 computes a Pedersen hash over at most 512 input bits.
	HashPed512 struct{ hashOperation }
	// HashPed768 computes a Pedersen hash over at most 768 input bits.
	HashPed768 struct{ hashOperation }
	// HashPed1024 computes a Pedersen hash over at most 1024 input bits.
	HashPed1024 struct{ hashOperation }
	// HashPsd2 computes a Poseidon hash with a sponge rate of 2.
	HashPsd2 struct{ hashOperation }
	// HashPsd4 computes a Poseidon hash with a sponge rate of 4.
	HashPsd4 struct{ hashOperation }
	// HashPsd8 computes a Poseidon hash with a sponge rate of 8.
	HashPsd8 struct{ hashOperation }

	// CommitPed64 computes a blinded Pedersen commitment over at most 64
	// input bits.
	CommitPed64 struct{ commitOperation }
	// CommitPed128 computes a blinded Pedersen commitment over at most 128
	// input bits.
	CommitPed128 struct{ commitOperation }
)

// NewHash returns a hash instruction for the given hash opcode.
func NewHash(code Opcode, operand Operand, destination Register) (Operation, error) {
	if opcodes[code].Capacity == 0 && opcodes[code].Rate == 0 {
		return nil, fmt.Errorf("%s is not a hash opcode", code)
	}
	shape, err := NewUnaryOperation(operand, destination)
	if err != nil {
		return nil, err
	}
	return newUnaryVariant(code, shape)
}

// NewCommit returns a commit instruction for the given commit opcode. The
// second operand supplies the scalar randomizer.
func NewCommit(code Opcode, first, second Operand, destination Register) (Operation, error) {
	if code != OpcodeCommitPed64 && code != OpcodeCommitPed128 {
		return nil, fmt.Errorf("%s is not a commit opcode", code)
	}
	shape, err := NewBinaryOperation(first, second, destination)
	if err != nil {
		return nil, err
	}
	return newBinaryVariant(code, shape)
}

// hashOperation is the shared behavior of the hash variants.
type hashOperation struct {
	UnaryOperation
	code Opcode
}

func (op *hashOperation) Opcode() Opcode {
	return op.code
}

func (op *hashOperation) String() string {
	return op.code.Token() + " " + op.operandsString()
}

func (op *hashOperation) Evaluate(regs *Registers) error {
	value, err := op.First().Load(regs)
	if err != nil {
		return err
	}

	var digest *core.FieldElement
	info := opcodes[op.code]
	switch {
	case info.Capacity > 0:
		bits := value.Bits()
		if len(bits) > info.Capacity {
			return fmt.Errorf("the Pedersen hash input cannot exceed %d bits, found %d bits", info.Capacity, len(bits))
		}
		digest, err = core.SetupPedersen(info.Capacity).Hash(bits)
		if err != nil {
			return err
		}
	default:
		digest = core.SetupPoseidon(info.Rate).Hash(fieldElements(value))
	}

	vis := Public
	if value.Private() {
		vis = Private
	}
	literal, err := NewFieldLiteral(digest.Big(), vis)
	if err != nil {
		return err
	}
	return regs.Store(op.Destination(), literal)
}

func (op *hashOperation) OutputType(inputs []RegisterType) (RegisterType, error) {
	if len(inputs) != 1 {
		return RegisterType{}, fmt.Errorf("%s takes 1 operand, got %d input types", op.code.Token(), len(inputs))
	}
	return NewRegisterType(KindField, inputs[0].Visibility()), nil
}

// commitOperation is the shared behavior of the commit variants.
type commitOperation struct {
	BinaryOperation
	code Opcode
}

func (op *commitOperation) Opcode() Opcode {
	return op.code
}

func (op *commitOperation) String() string {
	return op.code.Token() + " " + op.operandsString()
}

func (op *commitOperation) Evaluate(regs *Registers) error {
	value, err := op.First().Load(regs)
	if err != nil {
		return err
	}
	randomizer, err := loadLiteral(op.Second(), regs, op.code)
	if err != nil {
		return err
	}
	if randomizer.Kind() != KindScalar {
		return fmt.Errorf("%s randomizer must be a scalar, found %s", op.code.Token(), randomizer.Kind())
	}

	info := opcodes[op.code]
	bits := value.Bits()
	if len(bits) > info.Capacity {
		return fmt.Errorf("the Pedersen commitment input cannot exceed %d bits, found %d bits", info.Capacity, len(bits))
	}
	point, err := core.SetupPedersen(info.Capacity).Commit(bits, randomizer.Num())
	if err != nil {
		return err
	}

	vis := Public
	if value.Private() || randomizer.Private() {
		vis = Private
	}
	literal, err := NewGroupLiteral(point.X.Big(), vis)
	if err != nil {
		return err
	}
	return regs.Store(op.Destination(), literal)
}

func (op *commitOperation) OutputType(inputs []RegisterType) (RegisterType, error) {
	if len(inputs) != 2 {
		return RegisterType{}, fmt.Errorf("%s takes 2 operands, got %d input types", op.code.Token(), len(inputs))
	}
	if inputs[1].Kind() != KindScalar {
		return RegisterType{}, fmt.Errorf("%s randomizer must be a scalar, found %s", op.code.Token(), inputs[1].Kind())
	}
	return NewRegisterType(KindGroup, joinVisibility(inputs[0].Visibility(), inputs[1].Visibility())), nil
}

// fieldElements flattens a value into its Poseidon absorption sequence, one
// base field element per constituent literal.
func fieldElements(value Value) []*core.FieldElement {
	switch v := value.(type) {
	case Literal:
		return []*core.FieldElement{v.fieldElement()}
	case *Composite:
		elements := make([]*core.FieldElement, 0, len(v.Members()))
		for _, member := range v.Members() {
			elements = append(elements, member.Literal.fieldElement())
		}
		return elements
	default:
		return nil
	}
}
