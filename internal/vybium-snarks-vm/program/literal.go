package program

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vybium/vybium-snarks-vm/internal/vybium-snarks-vm/core"
)

// Visibility tags a literal as publicly visible or private to the prover.
type Visibility uint8

const (
	// Public marks a value revealed by the circuit.
	Public Visibility = iota
	// Private marks a value known only to the prover.
	Private
)

// String returns the visibility suffix text.
func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// LiteralKind enumerates the scalar types a literal can carry.
type LiteralKind uint8

const (
	KindBoolean LiteralKind = iota
	KindField
	KindGroup
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindScalar
	KindAddress
	KindString

	kindCount
)

var kindNames = [kindCount]string{
	KindBoolean: "boolean",
	KindField:   "field",
	KindGroup:   "group",
	KindI8:      "i8",
	KindI16:     "i16",
	KindI32:     "i32",
	KindI64:     "i64",
	KindI128:    "i128",
	KindU8:      "u8",
	KindU16:     "u16",
	KindU32:     "u32",
	KindU64:     "u64",
	KindU128:    "u128",
	KindScalar:  "scalar",
	KindAddress: "address",
	KindString:  "string",
}

// String returns the type name of the kind.
func (k LiteralKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// IsInteger reports whether the kind is a fixed-width integer type.
func (k LiteralKind) IsInteger() bool {
	return k >= KindI8 && k <= KindU128
}

// IsSigned reports whether the kind is a signed integer type.
func (k LiteralKind) IsSigned() bool {
	return k >= KindI8 && k <= KindI128
}

// BitSize returns the canonical bit length of a literal of this kind, or 0
// for the variable-length kinds (address, string).
func (k LiteralKind) BitSize() int {
	switch k {
	case KindBoolean:
		return 1
	case KindField, KindGroup:
		return core.BaseField.BitSize()
	case KindScalar:
		return core.ScalarField.BitSize()
	case KindI8, KindU8:
		return 8
	case KindI16, KindU16:
		return 16
	case KindI32, KindU32:
		return 32
	case KindI64, KindU64:
		return 64
	case KindI128, KindU128:
		return 128
	default:
		return 0
	}
}

func kindFromName(name string) (LiteralKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return LiteralKind(k), true
		}
	}
	return 0, false
}

// integerBounds returns the inclusive range of an integer kind.
func integerBounds(k LiteralKind) (min, max *big.Int) {
	bits := uint(k.BitSize())
	if k.IsSigned() {
		max = new(big.Int).Lsh(big.NewInt(1), bits-1)
		min = new(big.Int).Neg(max)
		max = new(big.Int).Sub(max, big.NewInt(1))
		return min, max
	}
	max = new(big.Int).Lsh(big.NewInt(1), bits)
	max.Sub(max, big.NewInt(1))
	return big.NewInt(0), max
}

// Literal is a single typed scalar with a visibility tag.
type Literal struct {
	kind LiteralKind
	vis  Visibility
	b    bool
	num  *big.Int
	str  string
}

// NewBooleanLiteral returns a boolean literal.
func NewBooleanLiteral(value bool, vis Visibility) Literal {
	return Literal{kind: KindBoolean, vis: vis, b: value}
}

// NewFieldLiteral returns a base field literal; the value must be canonical.
func NewFieldLiteral(value *big.Int, vis Visibility) (Literal, error) {
	return newModularLiteral(KindField, value, vis)
}

// NewGroupLiteral returns a group literal holding a point's x-coordinate.
func NewGroupLiteral(value *big.Int, vis Visibility) (Literal, error) {
	return newModularLiteral(KindGroup, value, vis)
}

// NewScalarLiteral returns a scalar literal; the value must be canonical.
func NewScalarLiteral(value *big.Int, vis Visibility) (Literal, error) {
	return newModularLiteral(KindScalar, value, vis)
}

func newModularLiteral(kind LiteralKind, value *big.Int, vis Visibility) (Literal, error) {
	field := core.BaseField
	if kind == KindScalar {
		field = core.ScalarField
	}
	if !field.Contains(value) {
		return Literal{}, fmt.Errorf("%s literal %s is out of range", kind, value)
	}
	return Literal{kind: kind, vis: vis, num: new(big.Int).Set(value)}, nil
}

// NewIntegerLiteral returns an integer literal of the given kind; the value
// must fit the kind's bit width.
func NewIntegerLiteral(kind LiteralKind, value *big.Int, vis Visibility) (Literal, error) {
	if !kind.IsInteger() {
		return Literal{}, fmt.Errorf("%s is not an integer kind", kind)
	}
	min, max := integerBounds(kind)
	if value.Cmp(min) < 0 || value.Cmp(max) > 0 {
		return Literal{}, fmt.Errorf("%s literal %s is out of range", kind, value)
	}
	return Literal{kind: kind, vis: vis, num: new(big.Int).Set(value)}, nil
}

// NewAddressLiteral returns an address literal after validating its form.
func NewAddressLiteral(address string, vis Visibility) (Literal, error) {
	if err := validateAddress(address); err != nil {
		return Literal{}, err
	}
	return Literal{kind: KindAddress, vis: vis, str: address}, nil
}

// NewStringLiteral returns a string literal.
func NewStringLiteral(value string, vis Visibility) Literal {
	return Literal{kind: KindString, vis: vis, str: value}
}

// Kind returns the literal's type tag.
func (l Literal) Kind() LiteralKind {
	return l.kind
}

// Visibility returns the literal's visibility tag.
func (l Literal) Visibility() Visibility {
	return l.vis
}

// Bool returns the payload of a boolean literal.
func (l Literal) Bool() bool {
	return l.b
}

// Num returns the numeric payload of a field, group, scalar, or integer
// literal. Kinds without a numeric payload yield zero.
func (l Literal) Num() *big.Int {
	if l.num == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(l.num)
}

// Text returns the payload of an address or string literal.
func (l Literal) Text() string {
	return l.str
}

// Equal reports whether two literals have identical kind, visibility, and
// payload.
func (l Literal) Equal(other Literal) bool {
	if l.kind != other.kind || l.vis != other.vis {
		return false
	}
	switch l.kind {
	case KindBoolean:
		return l.b == other.b
	case KindAddress, KindString:
		return l.str == other.str
	default:
		return l.num.Cmp(other.num) == 0
	}
}

// Bits returns the canonical little-endian bit decomposition of the literal.
func (l Literal) Bits() []bool {
	switch l.kind {
	case KindBoolean:
		return []bool{l.b}
	case KindAddress, KindString:
		return bytesToBits([]byte(l.str))
	default:
		bits := make([]bool, l.kind.BitSize())
		value := l.num
		if l.kind.IsSigned() && value.Sign() < 0 {
			// Two's complement.
			value = new(big.Int).Add(value, new(big.Int).Lsh(big.NewInt(1), uint(l.kind.BitSize())))
		}
		for i := range bits {
			bits[i] = value.Bit(i) == 1
		}
		return bits
	}
}

// Private reports whether the literal is private.
func (l Literal) Private() bool {
	return l.vis == Private
}

// String prints the literal in canonical text form, visibility suffix
// included.
func (l Literal) String() string {
	return l.payloadString() + "." + l.vis.String()
}

func (l Literal) payloadString() string {
	switch l.kind {
	case KindBoolean:
		if l.b {
			return "true"
		}
		return "false"
	case KindAddress:
		return l.str
	case KindString:
		return "\"" + l.str + "\""
	default:
		return l.num.String() + l.kind.String()
	}
}

// fieldElement interprets the literal's canonical bits as a little-endian
// integer in the base field. Used by the Poseidon hash family.
func (l Literal) fieldElement() *core.FieldElement {
	bits := l.Bits()
	value := new(big.Int)
	for i, bit := range bits {
		if bit {
			value.SetBit(value, i, 1)
		}
	}
	return core.BaseField.NewElement(value)
}

// ParseLiteral parses one literal from the input, returning the remainder.
// A missing visibility suffix defaults to private.
func ParseLiteral(s string) (Literal, string, error) {
	s = sanitize(s)
	if strings.HasPrefix(s, "\"") {
		return parseStringLiteral(s)
	}

	token, rest := nextToken(s)
	if token == "" {
		return Literal{}, s, fmt.Errorf("expected a literal in %q", truncate(s))
	}
	literal, err := literalFromToken(token)
	if err != nil {
		return Literal{}, s, err
	}
	return literal, rest, nil
}

// LiteralFromString parses a literal and requires that the entire string is
// consumed.
func LiteralFromString(s string) (Literal, error) {
	literal, rest, err := ParseLiteral(s)
	if err != nil {
		return Literal{}, err
	}
	if err := ensureConsumed(rest, "literal"); err != nil {
		return Literal{}, err
	}
	return literal, nil
}

func parseStringLiteral(s string) (Literal, string, error) {
	closing := strings.IndexByte(s[1:], '"')
	if closing < 0 {
		return Literal{}, s, fmt.Errorf("unterminated string literal in %q", truncate(s))
	}
	payload := s[1 : 1+closing]
	rest := s[closing+2:]
	vis, rest := trimVisibilitySuffix(rest)
	return NewStringLiteral(payload, vis), rest, nil
}

func literalFromToken(token string) (Literal, error) {
	vis := Private
	if strings.HasSuffix(token, ".public") {
		vis = Public
		token = strings.TrimSuffix(token, ".public")
	} else if strings.HasSuffix(token, ".private") {
		token = strings.TrimSuffix(token, ".private")
	}

	switch {
	case token == "true":
		return NewBooleanLiteral(true, vis), nil
	case token == "false":
		return NewBooleanLiteral(false, vis), nil
	case strings.HasPrefix(token, "aleo1"):
		return NewAddressLiteral(token, vis)
	}

	// Numeric literal: optional sign, digits, then the kind name.
	digits := token
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}
	split := len(digits)
	for i, c := range digits {
		if c < '0' || c > '9' {
			split = i
			break
		}
	}
	if split == 0 {
		return Literal{}, fmt.Errorf("invalid literal %q", token)
	}
	kind, ok := kindFromName(digits[split:])
	if !ok {
		return Literal{}, fmt.Errorf("invalid literal type suffix in %q", token)
	}

	value, ok := new(big.Int).SetString(digits[:split], 10)
	if !ok {
		return Literal{}, fmt.Errorf("invalid numeric literal %q", token)
	}
	if negative {
		value.Neg(value)
	}

	switch kind {
	case KindField:
		return NewFieldLiteral(value, vis)
	case KindGroup:
		return NewGroupLiteral(value, vis)
	case KindScalar:
		return NewScalarLiteral(value, vis)
	default:
		if !kind.IsInteger() {
			return Literal{}, fmt.Errorf("type %s does not take a numeric literal", kind)
		}
		return NewIntegerLiteral(kind, value, vis)
	}
}

func trimVisibilitySuffix(s string) (Visibility, string) {
	if strings.HasPrefix(s, ".public") {
		return Public, s[len(".public"):]
	}
	if strings.HasPrefix(s, ".private") {
		return Private, s[len(".private"):]
	}
	return Private, s
}

// Address form: "aleo1" prefix followed by 58 characters of the bech32
// charset.
const (
	addressLength = 63
	bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	addressPrefix = "aleo1"
)

func validateAddress(address string) error {
	if len(address) != addressLength || !strings.HasPrefix(address, addressPrefix) {
		return fmt.Errorf("invalid address literal %q", address)
	}
	for _, c := range address[len(addressPrefix):] {
		if !strings.ContainsRune(bech32Charset, c) {
			return fmt.Errorf("invalid address character %q in %q", c, address)
		}
	}
	return nil
}

func bytesToBits(data []byte) []bool {
	bits := make([]bool, 0, len(data)*8)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			bits = append(bits, (b>>uint(i))&1 == 1)
		}
	}
	return bits
}
