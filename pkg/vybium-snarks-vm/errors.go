package vybiumsnarksvm

import "fmt"

// ErrorCode represents a Vybium SNARKs VM error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrParse represents a program text parsing error
	ErrParse

	// ErrDecode represents a binary decoding error
	ErrDecode

	// ErrTypeCheck represents a static type checking error
	ErrTypeCheck

	// ErrEvaluation represents an instruction evaluation error
	ErrEvaluation

	// ErrInvalidInput represents an invalid input error
	ErrInvalidInput
)

// ProgramError represents a Vybium SNARKs VM error
type ProgramError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *ProgramError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-snarks-vm error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-snarks-vm error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *ProgramError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *ProgramError) Is(target error) bool {
	t, ok := target.(*ProgramError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
