package program

import (
	"math/big"
	"strings"
	"testing"
)

// TestLiteralParsing tests the literal text grammar
func TestLiteralParsing(t *testing.T) {
	t.Run("Integer", func(t *testing.T) {
		literal, err := LiteralFromString("2u8.private")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if literal.Kind() != KindU8 {
			t.Errorf("kind = %s, want u8", literal.Kind())
		}
		if literal.Num().Cmp(big.NewInt(2)) != 0 {
			t.Errorf("payload = %s, want 2", literal.Num())
		}
		if !literal.Private() {
			t.Error("literal should be private")
		}
	})

	t.Run("MissingVisibilityDefaultsToPrivate", func(t *testing.T) {
		literal, err := LiteralFromString("42u64")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if literal.Visibility() != Private {
			t.Errorf("visibility = %s, want private", literal.Visibility())
		}
	})

	t.Run("NegativeSigned", func(t *testing.T) {
		literal, err := LiteralFromString("-5i8.public")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if literal.Kind() != KindI8 {
			t.Errorf("kind = %s, want i8", literal.Kind())
		}
		if literal.Num().Cmp(big.NewInt(-5)) != 0 {
			t.Errorf("payload = %s, want -5", literal.Num())
		}
	})

	t.Run("NegativeUnsignedRejected", func(t *testing.T) {
		if _, err := LiteralFromString("-5u8"); err == nil {
			t.Error("expected negative unsigned literal to fail")
		}
	})

	t.Run("OutOfRangeRejected", func(t *testing.T) {
		if _, err := LiteralFromString("256u8"); err == nil {
			t.Error("expected out-of-range u8 literal to fail")
		}
		if _, err := LiteralFromString("128i8"); err == nil {
			t.Error("expected out-of-range i8 literal to fail")
		}
	})

	t.Run("Boolean", func(t *testing.T) {
		literal, err := LiteralFromString("true.public")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if literal.Kind() != KindBoolean || !literal.Bool() {
			t.Errorf("parsed %s, want a true boolean", literal)
		}
	})

	t.Run("Field", func(t *testing.T) {
		literal, err := LiteralFromString("5field.public")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if literal.Kind() != KindField {
			t.Errorf("kind = %s, want field", literal.Kind())
		}
	})

	t.Run("FieldAboveModulusRejected", func(t *testing.T) {
		tooBig := new(big.Int).Lsh(big.NewInt(1), 253).String()
		if _, err := LiteralFromString(tooBig + "field"); err == nil {
			t.Error("expected field literal above the modulus to fail")
		}
	})

	t.Run("String", func(t *testing.T) {
		literal, err := LiteralFromString(`"hello"`)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if literal.Kind() != KindString || literal.Text() != "hello" {
			t.Errorf("parsed %s, want the string hello", literal)
		}
	})

	t.Run("TrailingContentRejected", func(t *testing.T) {
		_, err := LiteralFromString("2u8.private extra")
		if err == nil {
			t.Fatal("expected trailing content to fail")
		}
		if !strings.Contains(err.Error(), "found invalid character") {
			t.Errorf("error = %v, want an invalid character error", err)
		}
	})
}

// TestLiteralPrinting tests canonical printing
func TestLiteralPrinting(t *testing.T) {
	cases := []string{
		"2u8.private",
		"-5i8.public",
		"true.private",
		"5field.public",
		`"hello".private`,
	}
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			literal, err := LiteralFromString(text)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got := literal.String(); got != text {
				t.Errorf("String() = %s, want %s", got, text)
			}
		})
	}

	t.Run("SuffixAlwaysPrinted", func(t *testing.T) {
		literal, err := LiteralFromString("42u64")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if got := literal.String(); got != "42u64.private" {
			t.Errorf("String() = %s, want 42u64.private", got)
		}
	})
}

// TestLiteralBits tests the canonical bit decomposition
func TestLiteralBits(t *testing.T) {
	t.Run("Boolean", func(t *testing.T) {
		literal := NewBooleanLiteral(true, Private)
		bits := literal.Bits()
		if len(bits) != 1 || !bits[0] {
			t.Errorf("bits = %v, want [true]", bits)
		}
	})

	t.Run("U8LittleEndian", func(t *testing.T) {
		literal, err := NewIntegerLiteral(KindU8, big.NewInt(3), Private)
		if err != nil {
			t.Fatalf("NewIntegerLiteral failed: %v", err)
		}
		bits := literal.Bits()
		if len(bits) != 8 {
			t.Fatalf("u8 has %d bits, want 8", len(bits))
		}
		if !bits[0] || !bits[1] || bits[2] {
			t.Errorf("bits = %v, want the two low bits set", bits)
		}
	})

	t.Run("SignedTwosComplement", func(t *testing.T) {
		literal, err := NewIntegerLiteral(KindI8, big.NewInt(-1), Private)
		if err != nil {
			t.Fatalf("NewIntegerLiteral failed: %v", err)
		}
		for i, bit := range literal.Bits() {
			if !bit {
				t.Fatalf("bit %d of -1i8 is clear, want all set", i)
			}
		}
	})

	t.Run("FieldWidth", func(t *testing.T) {
		literal, err := NewFieldLiteral(big.NewInt(1), Private)
		if err != nil {
			t.Fatalf("NewFieldLiteral failed: %v", err)
		}
		if got := len(literal.Bits()); got != 253 {
			t.Errorf("field has %d bits, want 253", got)
		}
	})

	t.Run("ScalarWidth", func(t *testing.T) {
		literal, err := NewScalarLiteral(big.NewInt(1), Private)
		if err != nil {
			t.Fatalf("NewScalarLiteral failed: %v", err)
		}
		if got := len(literal.Bits()); got != 251 {
			t.Errorf("scalar has %d bits, want 251", got)
		}
	})

	t.Run("StringBytes", func(t *testing.T) {
		literal := NewStringLiteral("ab", Private)
		if got := len(literal.Bits()); got != 16 {
			t.Errorf("two-byte string has %d bits, want 16", got)
		}
	})
}

// TestCompositeValue tests the composite aggregate
func TestCompositeValue(t *testing.T) {
	owner := mustIdentifier(t, "owner")
	amount := mustIdentifier(t, "amount")

	public, err := NewIntegerLiteral(KindU64, big.NewInt(10), Public)
	if err != nil {
		t.Fatalf("NewIntegerLiteral failed: %v", err)
	}
	private, err := NewIntegerLiteral(KindU64, big.NewInt(20), Private)
	if err != nil {
		t.Fatalf("NewIntegerLiteral failed: %v", err)
	}

	composite, err := NewComposite(mustIdentifier(t, "token"), []Member{
		{Name: owner, Literal: public},
		{Name: amount, Literal: private},
	})
	if err != nil {
		t.Fatalf("NewComposite failed: %v", err)
	}

	t.Run("BitsConcatenate", func(t *testing.T) {
		if got := len(composite.Bits()); got != 128 {
			t.Errorf("composite has %d bits, want 128", got)
		}
	})

	t.Run("AnyPrivateMemberMakesItPrivate", func(t *testing.T) {
		if !composite.Private() {
			t.Error("composite with a private member should be private")
		}
	})

	t.Run("MemberLookup", func(t *testing.T) {
		member, err := composite.Member(amount)
		if err != nil {
			t.Fatalf("Member failed: %v", err)
		}
		if !member.Equal(private) {
			t.Error("member lookup returned the wrong literal")
		}
		if _, err := composite.Member(mustIdentifier(t, "missing")); err == nil {
			t.Error("expected lookup of a missing member to fail")
		}
	})

	t.Run("DuplicateMemberRejected", func(t *testing.T) {
		_, err := NewComposite(mustIdentifier(t, "token"), []Member{
			{Name: owner, Literal: public},
			{Name: owner, Literal: private},
		})
		if err == nil {
			t.Error("expected duplicate member names to fail")
		}
	})
}

func mustIdentifier(t *testing.T, s string) Identifier {
	t.Helper()
	id, err := NewIdentifier(s)
	if err != nil {
		t.Fatalf("NewIdentifier(%q) failed: %v", s, err)
	}
	return id
}
