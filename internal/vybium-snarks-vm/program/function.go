package program

import (
	"fmt"
	"strings"

	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/network"
)

// funcPhase tracks how far a function under construction has progressed.
// Statements may only be appended in declaration order: inputs, then
// instructions, then outputs.
type funcPhase int

const (
	phaseEmpty funcPhase = iota
	phaseInputs
	phaseInstructions
	phaseOutputs
)

// Function is a named sequence of input declarations, instructions, and
// output declarations.
type Function struct {
	name         Identifier
	inputs       []Input
	instructions []Instruction
	outputs      []Output
	phase        funcPhase
	profile      *network.Profile
}

// NewFunction returns an empty function with the given name. A nil profile
// selects the default limits.
func NewFunction(name Identifier, profile *network.Profile) *Function {
	if profile == nil {
		profile = network.Default()
	}
	return &Function{name: name, profile: profile}
}

// Name returns the function name.
func (f *Function) Name() Identifier {
	return f.name
}

// Inputs returns the declared input statements.
func (f *Function) Inputs() []Input {
	return f.inputs
}

// Instructions returns the instruction sequence.
func (f *Function) Instructions() []Instruction {
	return f.instructions
}

// Outputs returns the declared output statements.
func (f *Function) Outputs() []Output {
	return f.outputs
}

// AddInput appends an input declaration. Inputs must precede all
// instructions and outputs, bind sequential registers starting at r0, and
// stay within the profile's input limit.
func (f *Function) AddInput(in Input) error {
	if f.phase > phaseInputs {
		return fmt.Errorf("cannot add inputs after instructions have been added")
	}
	if len(f.inputs) >= f.profile.MaxFunctionInputs {
		return fmt.Errorf("function %s exceeds the limit of %d inputs", f.name, f.profile.MaxFunctionInputs)
	}
	if got, want := in.Register().Locator(), uint64(len(f.inputs)); got != want {
		return fmt.Errorf("input register r%d is out of order, expected r%d", got, want)
	}
	f.inputs = append(f.inputs, in)
	f.phase = phaseInputs
	return nil
}

// AddInstruction appends an instruction. Instructions must precede all
// outputs and stay within the profile's instruction limit.
func (f *Function) AddInstruction(ins Instruction) error {
	if f.phase == phaseOutputs {
		return fmt.Errorf("cannot add instructions after outputs have been added")
	}
	if len(f.instructions) >= f.profile.MaxFunctionInstructions {
		return fmt.Errorf("function %s exceeds the limit of %d instructions", f.name, f.profile.MaxFunctionInstructions)
	}
	f.instructions = append(f.instructions, ins)
	f.phase = phaseInstructions
	return nil
}

// AddOutput appends an output declaration. Outputs must follow at least one
// instruction and stay within the profile's output limit.
func (f *Function) AddOutput(out Output) error {
	if len(f.instructions) == 0 {
		return fmt.Errorf("cannot add outputs before instructions have been added")
	}
	if len(f.outputs) >= f.profile.MaxFunctionOutputs {
		return fmt.Errorf("function %s exceeds the limit of %d outputs", f.name, f.profile.MaxFunctionOutputs)
	}
	f.outputs = append(f.outputs, out)
	f.phase = phaseOutputs
	return nil
}

// Evaluate binds the arguments to the input registers, runs every
// instruction in order, and returns the values of the output registers.
// The first failing instruction aborts the run.
func (f *Function) Evaluate(arguments []Value) ([]Value, error) {
	if len(f.inputs) == 0 {
		return nil, fmt.Errorf("function %s has no inputs", f.name)
	}
	if len(f.instructions) == 0 {
		return nil, fmt.Errorf("function %s has no instructions", f.name)
	}
	if len(arguments) != len(f.inputs) {
		return nil, fmt.Errorf("function %s takes %d inputs, got %d arguments", f.name, len(f.inputs), len(arguments))
	}

	regs := NewRegisters(f.profile)
	for i, in := range f.inputs {
		if err := checkArgument(in, arguments[i]); err != nil {
			return nil, err
		}
		if err := regs.Store(in.Register(), arguments[i]); err != nil {
			return nil, err
		}
	}

	for _, ins := range f.instructions {
		if err := ins.Evaluate(regs); err != nil {
			return nil, fmt.Errorf("failed to evaluate %q: %w", strings.TrimSuffix(ins.String(), ";"), err)
		}
	}

	results := make([]Value, 0, len(f.outputs))
	for _, out := range f.outputs {
		value, err := regs.Load(out.Register())
		if err != nil {
			return nil, err
		}
		if err := checkResult(out, value); err != nil {
			return nil, err
		}
		results = append(results, value)
	}
	return results, nil
}

// checkArgument requires an argument literal to carry the declared input
// type.
func checkArgument(in Input, argument Value) error {
	literal, ok := argument.(Literal)
	if !ok {
		return fmt.Errorf("input %s expects a %s literal, found composite value", in.Register(), in.ValueType())
	}
	got := NewRegisterType(literal.Kind(), literal.Visibility())
	if !got.Equal(in.ValueType()) {
		return fmt.Errorf("input %s expects %s, found %s", in.Register(), in.ValueType(), got)
	}
	return nil
}

// checkResult requires an output register's final value to carry the
// declared output type.
func checkResult(out Output, value Value) error {
	literal, ok := value.(Literal)
	if !ok {
		return fmt.Errorf("output %s expects a %s literal, found composite value", out.Register(), out.ValueType())
	}
	got := NewRegisterType(literal.Kind(), literal.Visibility())
	if !got.Equal(out.ValueType()) {
		return fmt.Errorf("output %s is declared as %s but holds %s", out.Register(), out.ValueType(), got)
	}
	return nil
}

// TypeCheck statically walks the declared input types through each
// instruction's output type, verifying that every register is defined
// before use, destinations are fresh, and output declarations match the
// derived types.
func (f *Function) TypeCheck() error {
	types := make(map[uint64]RegisterType, len(f.inputs))
	for _, in := range f.inputs {
		if _, ok := types[in.Register().Locator()]; ok {
			return fmt.Errorf("input register %s is declared twice", in.Register())
		}
		types[in.Register().Locator()] = in.ValueType()
	}

	for _, ins := range f.instructions {
		operands := ins.Operands()
		operandTypes := make([]RegisterType, len(operands))
		for i, operand := range operands {
			t, err := operandType(operand, types)
			if err != nil {
				return fmt.Errorf("failed to type %q: %w", strings.TrimSuffix(ins.String(), ";"), err)
			}
			operandTypes[i] = t
		}
		result, err := ins.OutputType(operandTypes)
		if err != nil {
			return fmt.Errorf("failed to type %q: %w", strings.TrimSuffix(ins.String(), ";"), err)
		}
		dest := ins.Destination()
		if _, ok := types[dest.Locator()]; ok {
			return fmt.Errorf("destination register %s is already defined", dest)
		}
		types[dest.Locator()] = result
	}

	for _, out := range f.outputs {
		if !out.Register().TopLevel() {
			return fmt.Errorf("cannot statically type member access %s", out.Register())
		}
		got, ok := types[out.Register().Locator()]
		if !ok {
			return fmt.Errorf("output register %s is not defined", out.Register())
		}
		if !got.Equal(out.ValueType()) {
			return fmt.Errorf("output %s is declared as %s but holds %s", out.Register(), out.ValueType(), got)
		}
	}
	return nil
}

// operandType resolves an operand's static type from literal contents or the
// derived register types.
func operandType(operand Operand, types map[uint64]RegisterType) (RegisterType, error) {
	if operand.IsLiteral() {
		literal := operand.Literal()
		return NewRegisterType(literal.Kind(), literal.Visibility()), nil
	}
	register := operand.Register()
	if !register.TopLevel() {
		return RegisterType{}, fmt.Errorf("cannot statically type member access %s", register)
	}
	t, ok := types[register.Locator()]
	if !ok {
		return RegisterType{}, fmt.Errorf("register %s is not defined", register)
	}
	return t, nil
}

// Equal reports whether two functions have identical statements.
func (f *Function) Equal(other *Function) bool {
	if f.name != other.name ||
		len(f.inputs) != len(other.inputs) ||
		len(f.instructions) != len(other.instructions) ||
		len(f.outputs) != len(other.outputs) {
		return false
	}
	for i := range f.inputs {
		if !f.inputs[i].Equal(other.inputs[i]) {
			return false
		}
	}
	for i := range f.instructions {
		if !f.instructions[i].Equal(other.instructions[i]) {
			return false
		}
	}
	for i := range f.outputs {
		if !f.outputs[i].Equal(other.outputs[i]) {
			return false
		}
	}
	return true
}

func (f *Function) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "function %s:", f.name)
	for _, in := range f.inputs {
		b.WriteString("\n    ")
		b.WriteString(in.String())
	}
	for _, ins := range f.instructions {
		b.WriteString("\n    ")
		b.WriteString(ins.String())
	}
	for _, out := range f.outputs {
		b.WriteString("\n    ")
		b.WriteString(out.String())
	}
	return b.String()
}

// ParseFunction parses a function declaration of the form
//
//	function <name>:
//	    input <register> as <type>;
//	    <instruction>;
//	    output <register> as <type>;
//
// and returns the remainder. Statement ordering is enforced while parsing.
func ParseFunction(s string) (*Function, string, error) {
	return parseFunction(s, nil)
}

func parseFunction(s string, profile *network.Profile) (*Function, string, error) {
	s = sanitize(s)
	s, err := expectToken(s, "function")
	if err != nil {
		return nil, "", err
	}
	token, rest := nextToken(s)
	name, err := NewIdentifier(token)
	if err != nil {
		return nil, "", err
	}
	s, err = expectByte(rest, ':')
	if err != nil {
		return nil, "", err
	}

	f := NewFunction(name, profile)
	for {
		s = sanitize(s)
		token, _ := nextToken(s)
		switch token {
		case "":
			if len(f.instructions) == 0 {
				return nil, "", fmt.Errorf("function %s must contain at least one instruction", name)
			}
			return f, s, nil
		case "input":
			in, rest, err := ParseInput(s)
			if err != nil {
				return nil, "", err
			}
			if err := f.AddInput(in); err != nil {
				return nil, "", err
			}
			s = rest
		case "output":
			out, rest, err := ParseOutput(s)
			if err != nil {
				return nil, "", err
			}
			if err := f.AddOutput(out); err != nil {
				return nil, "", err
			}
			s = rest
		case "function":
			if len(f.instructions) == 0 {
				return nil, "", fmt.Errorf("function %s must contain at least one instruction", name)
			}
			return f, s, nil
		default:
			ins, rest, err := ParseInstruction(s)
			if err != nil {
				return nil, "", err
			}
			if err := f.AddInstruction(ins); err != nil {
				return nil, "", err
			}
			s = rest
		}
	}
}

// FunctionFromString parses a function declaration and requires that the
// entire string is consumed.
func FunctionFromString(s string) (*Function, error) {
	return FunctionFromStringWithProfile(s, nil)
}

// FunctionFromStringWithProfile parses a function declaration under the
// given profile's limits and requires that the entire string is consumed.
func FunctionFromStringWithProfile(s string, profile *network.Profile) (*Function, error) {
	f, rest, err := parseFunction(s, profile)
	if err != nil {
		return nil, err
	}
	if err := ensureConsumed(rest, "function"); err != nil {
		return nil, err
	}
	return f, nil
}
