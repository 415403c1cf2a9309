// Package program implements the instruction layer of the Vybium snarks VM:
// typed literals and composite values, registers and the register file,
// operands, the closed instruction set with its text grammar and binary
// codec, and the function aggregate that sequences inputs, instructions,
// and outputs for deterministic evaluation.
package program

import "fmt"

// maxIdentifierLength bounds identifiers in text and binary form.
const maxIdentifierLength = 64

// Identifier names a function, a composite type, or a composite member.
// It must begin with a lowercase letter and continue with lowercase
// letters, digits, or underscores.
type Identifier string

// NewIdentifier validates and returns an identifier.
func NewIdentifier(s string) (Identifier, error) {
	if !isIdentifier(s) {
		return "", fmt.Errorf("invalid identifier %q", s)
	}
	return Identifier(s), nil
}

// String returns the identifier text.
func (id Identifier) String() string {
	return string(id)
}

func isIdentifier(s string) bool {
	if len(s) == 0 || len(s) > maxIdentifierLength {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
