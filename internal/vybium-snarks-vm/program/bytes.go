package program

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/network"
)

// Binary layout. All integers are little-endian. Each statement begins with
// a fixed discriminant or tag, followed by a payload whose length is
// determined by the discriminant, so the stream needs no framing.

// byteReader walks a byte stream with bounds checking.
type byteReader struct {
	buf []byte
	off int
}

func newByteReader(buf []byte) *byteReader {
	return &byteReader{buf: buf}
}

func (r *byteReader) remaining() int {
	return len(r.buf) - r.off
}

func (r *byteReader) readN(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("unexpected end of input, need %d bytes, have %d", n, r.remaining())
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *byteReader) readByte() (byte, error) {
	b, err := r.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *byteReader) readUint16() (uint16, error) {
	b, err := r.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *byteReader) readUint64() (uint64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// modularByteLength is the payload width of field, group, and scalar
// literals.
const modularByteLength = 32

// writeLEBytes appends value as a fixed-width little-endian unsigned
// integer. The value must already be non-negative and fit the width.
func writeLEBytes(buf *bytes.Buffer, value *big.Int, width int) {
	b := make([]byte, width)
	value.FillBytes(b)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	buf.Write(b)
}

func readLEBytes(r *byteReader, width int) (*big.Int, error) {
	raw, err := r.readN(width)
	if err != nil {
		return nil, err
	}
	be := make([]byte, width)
	for i := range raw {
		be[width-1-i] = raw[i]
	}
	return new(big.Int).SetBytes(be), nil
}

// writeLiteral appends a literal as kind, visibility, payload.
func writeLiteral(buf *bytes.Buffer, l Literal) error {
	buf.WriteByte(byte(l.Kind()))
	buf.WriteByte(byte(l.Visibility()))
	switch kind := l.Kind(); {
	case kind == KindBoolean:
		if l.Bool() {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case kind == KindField || kind == KindGroup || kind == KindScalar:
		writeLEBytes(buf, l.Num(), modularByteLength)
	case kind.IsInteger():
		// Two's complement over the kind's bit width.
		unsigned := l.Num()
		if unsigned.Sign() < 0 {
			modulus := new(big.Int).Lsh(big.NewInt(1), uint(kind.BitSize()))
			unsigned = new(big.Int).Add(unsigned, modulus)
		}
		writeLEBytes(buf, unsigned, kind.BitSize()/8)
	default:
		text := l.Text()
		if len(text) > 0xffff {
			return fmt.Errorf("%s literal of %d bytes exceeds the encodable length", kind, len(text))
		}
		writeUint16(buf, uint16(len(text)))
		buf.WriteString(text)
	}
	return nil
}

func readLiteral(r *byteReader) (Literal, error) {
	kindByte, err := r.readByte()
	if err != nil {
		return Literal{}, err
	}
	if kindByte >= byte(kindCount) {
		return Literal{}, fmt.Errorf("invalid literal kind discriminant %d", kindByte)
	}
	kind := LiteralKind(kindByte)
	visByte, err := r.readByte()
	if err != nil {
		return Literal{}, err
	}
	if visByte > byte(Private) {
		return Literal{}, fmt.Errorf("invalid visibility discriminant %d", visByte)
	}
	vis := Visibility(visByte)

	switch {
	case kind == KindBoolean:
		b, err := r.readByte()
		if err != nil {
			return Literal{}, err
		}
		if b > 1 {
			return Literal{}, fmt.Errorf("invalid boolean payload %d", b)
		}
		return NewBooleanLiteral(b == 1, vis), nil
	case kind == KindField || kind == KindGroup || kind == KindScalar:
		value, err := readLEBytes(r, modularByteLength)
		if err != nil {
			return Literal{}, err
		}
		return makeModularLiteral(kind, value, vis)
	case kind.IsInteger():
		value, err := readLEBytes(r, kind.BitSize()/8)
		if err != nil {
			return Literal{}, err
		}
		if kind.IsSigned() {
			bound := new(big.Int).Lsh(big.NewInt(1), uint(kind.BitSize()-1))
			if value.Cmp(bound) >= 0 {
				value.Sub(value, new(big.Int).Lsh(bound, 1))
			}
		}
		return NewIntegerLiteral(kind, value, vis)
	default:
		length, err := r.readUint16()
		if err != nil {
			return Literal{}, err
		}
		raw, err := r.readN(int(length))
		if err != nil {
			return Literal{}, err
		}
		if kind == KindAddress {
			return NewAddressLiteral(string(raw), vis)
		}
		return NewStringLiteral(string(raw), vis), nil
	}
}

func makeModularLiteral(kind LiteralKind, value *big.Int, vis Visibility) (Literal, error) {
	switch kind {
	case KindField:
		return NewFieldLiteral(value, vis)
	case KindGroup:
		return NewGroupLiteral(value, vis)
	default:
		return NewScalarLiteral(value, vis)
	}
}

// writeRegister appends a register as locator, path length, path segments.
func writeRegister(buf *bytes.Buffer, reg Register) error {
	writeUint64(buf, reg.Locator())
	path := reg.Path()
	if len(path) > 0xff {
		return fmt.Errorf("register path of %d segments exceeds the encodable length", len(path))
	}
	buf.WriteByte(byte(len(path)))
	for _, segment := range path {
		name := segment.String()
		buf.WriteByte(byte(len(name)))
		buf.WriteString(name)
	}
	return nil
}

func readRegister(r *byteReader) (Register, error) {
	locator, err := r.readUint64()
	if err != nil {
		return Register{}, err
	}
	segments, err := r.readByte()
	if err != nil {
		return Register{}, err
	}
	if segments == 0 {
		return NewRegister(locator), nil
	}
	path := make([]Identifier, 0, segments)
	for i := 0; i < int(segments); i++ {
		length, err := r.readByte()
		if err != nil {
			return Register{}, err
		}
		raw, err := r.readN(int(length))
		if err != nil {
			return Register{}, err
		}
		name, err := NewIdentifier(string(raw))
		if err != nil {
			return Register{}, err
		}
		path = append(path, name)
	}
	return NewMemberRegister(locator, path...), nil
}

// Operand tags.
const (
	operandTagLiteral  = 0
	operandTagRegister = 1
)

func writeOperand(buf *bytes.Buffer, operand Operand) error {
	if operand.IsLiteral() {
		buf.WriteByte(operandTagLiteral)
		return writeLiteral(buf, operand.Literal())
	}
	buf.WriteByte(operandTagRegister)
	return writeRegister(buf, operand.Register())
}

func readOperand(r *byteReader) (Operand, error) {
	tag, err := r.readByte()
	if err != nil {
		return Operand{}, err
	}
	switch tag {
	case operandTagLiteral:
		literal, err := readLiteral(r)
		if err != nil {
			return Operand{}, err
		}
		return NewLiteralOperand(literal), nil
	case operandTagRegister:
		register, err := readRegister(r)
		if err != nil {
			return Operand{}, err
		}
		return NewRegisterOperand(register), nil
	default:
		return Operand{}, fmt.Errorf("invalid operand tag %d", tag)
	}
}

// writeRegisterType appends a register type as kind, visibility.
func writeRegisterType(buf *bytes.Buffer, t RegisterType) {
	buf.WriteByte(byte(t.Kind()))
	buf.WriteByte(byte(t.Visibility()))
}

func readRegisterType(r *byteReader) (RegisterType, error) {
	kindByte, err := r.readByte()
	if err != nil {
		return RegisterType{}, err
	}
	if kindByte >= byte(kindCount) {
		return RegisterType{}, fmt.Errorf("invalid literal kind discriminant %d", kindByte)
	}
	visByte, err := r.readByte()
	if err != nil {
		return RegisterType{}, err
	}
	if visByte > byte(Private) {
		return RegisterType{}, fmt.Errorf("invalid visibility discriminant %d", visByte)
	}
	return NewRegisterType(LiteralKind(kindByte), Visibility(visByte)), nil
}

// Bytes encodes the instruction as its opcode discriminant followed by the
// operands and destination register.
func (ins Instruction) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	writeUint16(&buf, uint16(ins.Opcode()))
	for _, operand := range ins.Operands() {
		if err := writeOperand(&buf, operand); err != nil {
			return nil, err
		}
	}
	if err := writeRegister(&buf, ins.Destination()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readInstruction(r *byteReader) (Instruction, error) {
	discriminant, err := r.readUint16()
	if err != nil {
		return Instruction{}, err
	}
	if discriminant >= uint16(opcodeCount) {
		return Instruction{}, fmt.Errorf("invalid opcode discriminant %d", discriminant)
	}
	code := Opcode(discriminant)

	count := 1
	if opcodes[code].Shape == shapeBinary {
		count = 2
	}
	operands := make([]Operand, 0, count)
	for i := 0; i < count; i++ {
		operand, err := readOperand(r)
		if err != nil {
			return Instruction{}, err
		}
		operands = append(operands, operand)
	}
	destination, err := readRegister(r)
	if err != nil {
		return Instruction{}, err
	}
	op, err := newOperation(code, operands, destination)
	if err != nil {
		return Instruction{}, err
	}
	return NewInstruction(op), nil
}

// InstructionFromBytes decodes an instruction and requires that the entire
// buffer is consumed.
func InstructionFromBytes(buf []byte) (Instruction, error) {
	r := newByteReader(buf)
	ins, err := readInstruction(r)
	if err != nil {
		return Instruction{}, err
	}
	if r.remaining() > 0 {
		return Instruction{}, fmt.Errorf("instruction encoding has %d trailing bytes", r.remaining())
	}
	return ins, nil
}

// Bytes encodes the input statement.
func (in Input) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeRegister(&buf, in.register); err != nil {
		return nil, err
	}
	writeRegisterType(&buf, in.valueType)
	return buf.Bytes(), nil
}

func readInput(r *byteReader) (Input, error) {
	register, err := readRegister(r)
	if err != nil {
		return Input{}, err
	}
	valueType, err := readRegisterType(r)
	if err != nil {
		return Input{}, err
	}
	return NewInput(register, valueType)
}

// Bytes encodes the output statement.
func (out Output) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeRegister(&buf, out.register); err != nil {
		return nil, err
	}
	writeRegisterType(&buf, out.valueType)
	return buf.Bytes(), nil
}

func readOutput(r *byteReader) (Output, error) {
	register, err := readRegister(r)
	if err != nil {
		return Output{}, err
	}
	valueType, err := readRegisterType(r)
	if err != nil {
		return Output{}, err
	}
	return NewOutput(register, valueType)
}

// Bytes encodes the function as its name followed by the counted input,
// instruction, and output sections.
func (f *Function) Bytes() ([]byte, error) {
	for section, count := range map[string]int{
		"inputs":       len(f.inputs),
		"instructions": len(f.instructions),
		"outputs":      len(f.outputs),
	} {
		if count > math.MaxUint16 {
			return nil, fmt.Errorf("function has %d %s, exceeding the encodable maximum of %d", count, section, math.MaxUint16)
		}
	}

	var buf bytes.Buffer
	name := f.name.String()
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)

	writeUint16(&buf, uint16(len(f.inputs)))
	for _, in := range f.inputs {
		raw, err := in.Bytes()
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	writeUint16(&buf, uint16(len(f.instructions)))
	for _, ins := range f.instructions {
		raw, err := ins.Bytes()
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	writeUint16(&buf, uint16(len(f.outputs)))
	for _, out := range f.outputs {
		raw, err := out.Bytes()
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// FunctionFromBytes decodes a function under the default profile and
// requires that the entire buffer is consumed. Statement ordering and
// limits are re-enforced while decoding.
func FunctionFromBytes(buf []byte) (*Function, error) {
	return FunctionFromBytesWithProfile(buf, nil)
}

// FunctionFromBytesWithProfile decodes a function with the given limits.
// A nil profile decodes under the default profile.
func FunctionFromBytesWithProfile(buf []byte, profile *network.Profile) (*Function, error) {
	r := newByteReader(buf)

	nameLength, err := r.readByte()
	if err != nil {
		return nil, err
	}
	raw, err := r.readN(int(nameLength))
	if err != nil {
		return nil, err
	}
	name, err := NewIdentifier(string(raw))
	if err != nil {
		return nil, err
	}

	f := NewFunction(name, profile)
	inputs, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(inputs); i++ {
		in, err := readInput(r)
		if err != nil {
			return nil, err
		}
		if err := f.AddInput(in); err != nil {
			return nil, err
		}
	}
	instructions, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(instructions); i++ {
		ins, err := readInstruction(r)
		if err != nil {
			return nil, err
		}
		if err := f.AddInstruction(ins); err != nil {
			return nil, err
		}
	}
	outputs, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(outputs); i++ {
		out, err := readOutput(r)
		if err != nil {
			return nil, err
		}
		if err := f.AddOutput(out); err != nil {
			return nil, err
		}
	}
	if r.remaining() > 0 {
		return nil, fmt.Errorf("function encoding has %d trailing bytes", r.remaining())
	}
	return f, nil
}
