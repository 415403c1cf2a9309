// Package core provides the cryptographic primitives consumed by the
// instruction set: prime field arithmetic, the embedded twisted Edwards
// group, and the Pedersen and Poseidon hash families.
package core

import (
	"fmt"
	"math/big"
)

// Field represents a prime field with modular arithmetic operations.
type Field struct {
	modulus *big.Int
	bits    int
}

// FieldElement represents an element in a prime field.
type FieldElement struct {
	field *Field
	value *big.Int
}

// NewField creates a new prime field with the given modulus.
func NewField(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	m := new(big.Int).Set(modulus)
	return &Field{modulus: m, bits: m.BitLen()}, nil
}

func mustNewField(decimal string) *Field {
	modulus, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		panic("core: invalid field modulus literal")
	}
	field, err := NewField(modulus)
	if err != nil {
		panic(err)
	}
	return field
}

// Modulus returns the field modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// BitSize returns the number of bits required to represent the modulus.
func (f *Field) BitSize() int {
	return f.bits
}

// NewElement creates a field element, reducing the value into canonical range.
func (f *Field) NewElement(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	if normalized.Sign() < 0 {
		normalized.Add(normalized, f.modulus)
	}
	return &FieldElement{field: f, value: normalized}
}

// NewElementFromUint64 creates a field element from a uint64.
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// NewElementFromInt64 creates a field element from an int64.
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// FromBytesLE creates a field element from little-endian bytes, reduced
// modulo the field modulus.
func (f *Field) FromBytesLE(b []byte) *FieldElement {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return f.NewElement(new(big.Int).SetBytes(be))
}

// Zero returns the additive identity.
func (f *Field) Zero() *FieldElement {
	return f.NewElement(big.NewInt(0))
}

// One returns the multiplicative identity.
func (f *Field) One() *FieldElement {
	return f.NewElement(big.NewInt(1))
}

// Contains reports whether the given integer is in canonical range [0, modulus).
func (f *Field) Contains(value *big.Int) bool {
	return value.Sign() >= 0 && value.Cmp(f.modulus) < 0
}

// Equals reports whether two fields share the same modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// Big returns the element's value as a big.Int.
func (fe *FieldElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Field returns the field this element belongs to.
func (fe *FieldElement) Field() *Field {
	return fe.field
}

// Add performs field addition.
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	fe.mustMatch(other)
	return fe.field.NewElement(new(big.Int).Add(fe.value, other.value))
}

// Sub performs field subtraction.
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	fe.mustMatch(other)
	return fe.field.NewElement(new(big.Int).Sub(fe.value, other.value))
}

// Mul performs field multiplication.
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	fe.mustMatch(other)
	return fe.field.NewElement(new(big.Int).Mul(fe.value, other.value))
}

// Neg returns the additive inverse of the field element.
func (fe *FieldElement) Neg() *FieldElement {
	return fe.field.NewElement(new(big.Int).Neg(fe.value))
}

// Div performs field division (multiplication by the inverse).
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	fe.mustMatch(other)
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("division failed: %w", err)
	}
	return fe.Mul(inv), nil
}

// Inv computes the multiplicative inverse.
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.value.Sign() == 0 {
		return nil, fmt.Errorf("cannot compute inverse of zero")
	}
	inv := new(big.Int).ModInverse(fe.value, fe.field.modulus)
	if inv == nil {
		return nil, fmt.Errorf("inverse does not exist")
	}
	return fe.field.NewElement(inv), nil
}

// Exp performs field exponentiation.
func (fe *FieldElement) Exp(exponent *big.Int) *FieldElement {
	return fe.field.NewElement(new(big.Int).Exp(fe.value, exponent, fe.field.modulus))
}

// Square computes the square of the field element.
func (fe *FieldElement) Square() *FieldElement {
	return fe.Mul(fe)
}

// Sqrt returns a square root of the field element using the Tonelli-Shanks
// algorithm, or an error if the element is not a quadratic residue.
func (fe *FieldElement) Sqrt() (*FieldElement, error) {
	if fe.IsZero() {
		return fe.field.Zero(), nil
	}

	p := fe.field.modulus
	n := fe.value

	// Euler's criterion: n^((p-1)/2) must be 1 for a quadratic residue.
	exp := new(big.Int).Sub(p, big.NewInt(1))
	exp.Div(exp, big.NewInt(2))
	if new(big.Int).Exp(n, exp, p).Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("field element is not a quadratic residue")
	}

	// p ≡ 3 (mod 4): sqrt(n) = n^((p+1)/4).
	if new(big.Int).Mod(p, big.NewInt(4)).Cmp(big.NewInt(3)) == 0 {
		e := new(big.Int).Add(p, big.NewInt(1))
		e.Div(e, big.NewInt(4))
		return fe.field.NewElement(new(big.Int).Exp(n, e, p)), nil
	}

	// Tonelli-Shanks for p ≡ 1 (mod 4). Write p-1 = Q * 2^S with Q odd.
	Q := new(big.Int).Sub(p, big.NewInt(1))
	S := 0
	for Q.Bit(0) == 0 {
		Q.Rsh(Q, 1)
		S++
	}

	// Find a quadratic non-residue z.
	z := big.NewInt(2)
	half := new(big.Int).Sub(p, big.NewInt(1))
	half.Div(half, big.NewInt(2))
	for new(big.Int).Exp(z, half, p).Cmp(big.NewInt(1)) == 0 {
		z.Add(z, big.NewInt(1))
	}

	c := new(big.Int).Exp(z, Q, p)
	qPlusOneHalf := new(big.Int).Add(Q, big.NewInt(1))
	qPlusOneHalf.Rsh(qPlusOneHalf, 1)
	x := new(big.Int).Exp(n, qPlusOneHalf, p)
	t := new(big.Int).Exp(n, Q, p)
	m := S

	for t.Cmp(big.NewInt(1)) != 0 {
		// Least i with t^(2^i) == 1.
		i := 1
		for i < m {
			e := new(big.Int).Lsh(big.NewInt(1), uint(i))
			if new(big.Int).Exp(t, e, p).Cmp(big.NewInt(1)) == 0 {
				break
			}
			i++
		}

		b := new(big.Int).Exp(c, new(big.Int).Lsh(big.NewInt(1), uint(m-i-1)), p)
		x.Mul(x, b).Mod(x, p)
		bSquared := new(big.Int).Exp(b, big.NewInt(2), p)
		t.Mul(t, bSquared).Mod(t, p)
		c.Set(bSquared)
		m = i
	}

	return fe.field.NewElement(x), nil
}

// Equal checks if two field elements are equal.
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if !fe.field.Equals(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero checks if the element is zero.
func (fe *FieldElement) IsZero() bool {
	return fe.value.Sign() == 0
}

// IsOne checks if the element is one.
func (fe *FieldElement) IsOne() bool {
	return fe.value.Cmp(big.NewInt(1)) == 0
}

// String returns the decimal representation of the field element.
func (fe *FieldElement) String() string {
	return fe.value.String()
}

// BytesLE returns the little-endian byte representation, padded to the
// field's byte width.
func (fe *FieldElement) BytesLE() []byte {
	width := (fe.field.bits + 7) / 8
	be := fe.value.Bytes()
	le := make([]byte, width)
	for i, v := range be {
		le[len(be)-1-i] = v
	}
	return le
}

func (fe *FieldElement) mustMatch(other *FieldElement) {
	if !fe.field.Equals(other.field) {
		panic("core: mixed elements from different fields")
	}
}

// The two fields of the embedded curve construction. BaseField is the
// 253-bit prime field that field literals and curve coordinates live in;
// ScalarField is the 251-bit prime order of the Edwards subgroup, which
// scalar literals range over.
var (
	BaseField   = mustNewField("8444461749428370424248824938781546531375899335154063827935233455917409239041")
	ScalarField = mustNewField("2111115437357092606062206234695386632838870926408408195193685246394721360383")
)
