package program

import (
	"math/big"
	"testing"
)

// TestRegisterParsing tests the register text grammar
func TestRegisterParsing(t *testing.T) {
	t.Run("TopLevel", func(t *testing.T) {
		reg, err := registerFromToken("r0")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if reg.Locator() != 0 || !reg.TopLevel() {
			t.Errorf("parsed %s, want a top-level r0", reg)
		}
	})

	t.Run("MemberPath", func(t *testing.T) {
		reg, err := registerFromToken("r1.owner")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if reg.Locator() != 1 || reg.TopLevel() {
			t.Errorf("parsed %s, want a member access on r1", reg)
		}
		if got := reg.String(); got != "r1.owner" {
			t.Errorf("String() = %s, want r1.owner", got)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, token := range []string{"x0", "r", "r-1", "ra"} {
			if _, err := registerFromToken(token); err == nil {
				t.Errorf("expected %q to fail", token)
			}
		}
	})
}

// TestRegisterBank tests define, assign, and load
func TestRegisterBank(t *testing.T) {
	literal := func(v int64) Literal {
		l, err := NewIntegerLiteral(KindU8, big.NewInt(v), Private)
		if err != nil {
			t.Fatalf("NewIntegerLiteral failed: %v", err)
		}
		return l
	}

	t.Run("StoreAndLoad", func(t *testing.T) {
		regs := NewRegisters(nil)
		if err := regs.Store(NewRegister(0), literal(7)); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		value, err := regs.Load(NewRegister(0))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !valuesEqual(value, literal(7)) {
			t.Errorf("loaded %s, want 7u8.private", value)
		}
	})

	t.Run("LoadUndefined", func(t *testing.T) {
		regs := NewRegisters(nil)
		if _, err := regs.Load(NewRegister(3)); err == nil {
			t.Error("expected load of an undefined register to fail")
		}
	})

	t.Run("LoadDefinedButUnassigned", func(t *testing.T) {
		regs := NewRegisters(nil)
		if err := regs.Define(NewRegister(0)); err != nil {
			t.Fatalf("Define failed: %v", err)
		}
		if _, err := regs.Load(NewRegister(0)); err == nil {
			t.Error("expected load of an unassigned register to fail")
		}
	})

	t.Run("DoubleDefineRejected", func(t *testing.T) {
		regs := NewRegisters(nil)
		if err := regs.Define(NewRegister(0)); err != nil {
			t.Fatalf("Define failed: %v", err)
		}
		if err := regs.Define(NewRegister(0)); err == nil {
			t.Error("expected a second define to fail")
		}
	})

	t.Run("MemberLoad", func(t *testing.T) {
		owner := mustIdentifier(t, "owner")
		composite, err := NewComposite(mustIdentifier(t, "token"), []Member{
			{Name: owner, Literal: literal(9)},
		})
		if err != nil {
			t.Fatalf("NewComposite failed: %v", err)
		}

		regs := NewRegisters(nil)
		if err := regs.Store(NewRegister(0), composite); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		value, err := regs.Load(NewMemberRegister(0, owner))
		if err != nil {
			t.Fatalf("member load failed: %v", err)
		}
		if !valuesEqual(value, literal(9)) {
			t.Errorf("loaded %s, want 9u8.private", value)
		}
	})

	t.Run("MemberLoadOnLiteralRejected", func(t *testing.T) {
		regs := NewRegisters(nil)
		if err := regs.Store(NewRegister(0), literal(1)); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		if _, err := regs.Load(NewMemberRegister(0, mustIdentifier(t, "owner"))); err == nil {
			t.Error("expected member access on a literal to fail")
		}
	})
}

// TestRegisterType tests the type annotation grammar
func TestRegisterType(t *testing.T) {
	t.Run("Parse", func(t *testing.T) {
		rt, err := registerTypeFromToken("u8.private")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if rt.Kind() != KindU8 || rt.Visibility() != Private {
			t.Errorf("parsed %s, want u8.private", rt)
		}
	})

	t.Run("MissingVisibilityRejected", func(t *testing.T) {
		if _, err := registerTypeFromToken("u8"); err == nil {
			t.Error("expected a type without visibility to fail")
		}
	})

	t.Run("JoinVisibility", func(t *testing.T) {
		if joinVisibility(Public, Public) != Public {
			t.Error("join of public inputs should be public")
		}
		if joinVisibility(Public, Private) != Private {
			t.Error("join with a private input should be private")
		}
	})
}
