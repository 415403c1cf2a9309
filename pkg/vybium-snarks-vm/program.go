package vybiumsnarksvm

import (
	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/program"
)

// ParseFunction parses a complete function definition from program text
func ParseFunction(text string) (*Function, error) {
	f, err := program.FunctionFromString(text)
	if err != nil {
		return nil, &ProgramError{
			Code:    ErrParse,
			Message: "failed to parse function: " + err.Error(),
			Cause:   err,
		}
	}
	return f, nil
}

// ParseFunctionWithProfile parses a complete function definition under the
// given profile's limits
func ParseFunctionWithProfile(text string, profile *Profile) (*Function, error) {
	f, err := program.FunctionFromStringWithProfile(text, profile)
	if err != nil {
		return nil, &ProgramError{
			Code:    ErrParse,
			Message: "failed to parse function: " + err.Error(),
			Cause:   err,
		}
	}
	return f, nil
}

// ParseInstruction parses a single instruction from program text
func ParseInstruction(text string) (Instruction, error) {
	ins, err := program.InstructionFromString(text)
	if err != nil {
		return Instruction{}, &ProgramError{
			Code:    ErrParse,
			Message: "failed to parse instruction: " + err.Error(),
			Cause:   err,
		}
	}
	return ins, nil
}

// ParseLiteral parses a single literal from program text
func ParseLiteral(text string) (Literal, error) {
	literal, err := program.LiteralFromString(text)
	if err != nil {
		return Literal{}, &ProgramError{
			Code:    ErrInvalidInput,
			Message: "failed to parse literal: " + err.Error(),
			Cause:   err,
		}
	}
	return literal, nil
}

// EncodeFunction encodes a function to its binary representation
func EncodeFunction(f *Function) ([]byte, error) {
	raw, err := f.Bytes()
	if err != nil {
		return nil, &ProgramError{
			Code:    ErrInvalidInput,
			Message: "failed to encode function: " + err.Error(),
			Cause:   err,
		}
	}
	return raw, nil
}

// DecodeFunction decodes a function from its binary representation
func DecodeFunction(raw []byte) (*Function, error) {
	f, err := program.FunctionFromBytes(raw)
	if err != nil {
		return nil, &ProgramError{
			Code:    ErrDecode,
			Message: "failed to decode function: " + err.Error(),
			Cause:   err,
		}
	}
	return f, nil
}

// DecodeFunctionWithProfile decodes a function from its binary
// representation under the given profile's limits
func DecodeFunctionWithProfile(raw []byte, profile *Profile) (*Function, error) {
	f, err := program.FunctionFromBytesWithProfile(raw, profile)
	if err != nil {
		return nil, &ProgramError{
			Code:    ErrDecode,
			Message: "failed to decode function: " + err.Error(),
			Cause:   err,
		}
	}
	return f, nil
}

// EncodeInstruction encodes an instruction to its binary representation
func EncodeInstruction(ins Instruction) ([]byte, error) {
	raw, err := ins.Bytes()
	if err != nil {
		return nil, &ProgramError{
			Code:    ErrInvalidInput,
			Message: "failed to encode instruction: " + err.Error(),
			Cause:   err,
		}
	}
	return raw, nil
}

// DecodeInstruction decodes an instruction from its binary representation
func DecodeInstruction(raw []byte) (Instruction, error) {
	ins, err := program.InstructionFromBytes(raw)
	if err != nil {
		return Instruction{}, &ProgramError{
			Code:    ErrDecode,
			Message: "failed to decode instruction: " + err.Error(),
			Cause:   err,
		}
	}
	return ins, nil
}

// TypeCheck statically verifies a function's register and type discipline
func TypeCheck(f *Function) error {
	if err := f.TypeCheck(); err != nil {
		return &ProgramError{
			Code:    ErrTypeCheck,
			Message: "type check failed: " + err.Error(),
			Cause:   err,
		}
	}
	return nil
}

// Evaluate runs a function on the given arguments and returns the declared
// output values
func Evaluate(f *Function, arguments []Value) ([]Value, error) {
	results, err := f.Evaluate(arguments)
	if err != nil {
		return nil, &ProgramError{
			Code:    ErrEvaluation,
			Message: "evaluation failed: " + err.Error(),
			Cause:   err,
		}
	}
	return results, nil
}
