package program

import (
	"math/big"
	"strings"
	"testing"
)

// TestPedersenHashInstructions tests the hash.ped family
func TestPedersenHashInstructions(t *testing.T) {
	t.Run("BooleanToField", func(t *testing.T) {
		value, err := evalUnary(t, "hash.ped64 r0 into r1;", NewBooleanLiteral(true, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		literal := value.(Literal)
		if literal.Kind() != KindField {
			t.Errorf("digest kind = %s, want field", literal.Kind())
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := evalUnary(t, "hash.ped64 r0 into r1;", u8(t, 42, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		b, err := evalUnary(t, "hash.ped64 r0 into r1;", u8(t, 42, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if !valuesEqual(a, b) {
			t.Error("same input gave different digests")
		}
	})

	t.Run("CapacityBoundary", func(t *testing.T) {
		// A 128-character string is exactly 1024 bits.
		okInput := NewStringLiteral(strings.Repeat("a", 128), Private)
		if _, err := evalUnary(t, "hash.ped1024 r0 into r1;", okInput); err != nil {
			t.Errorf("input at capacity should hash: %v", err)
		}

		tooLong := NewStringLiteral(strings.Repeat("a", 129), Private)
		_, err := evalUnary(t, "hash.ped1024 r0 into r1;", tooLong)
		if err == nil {
			t.Fatal("expected input over capacity to halt")
		}
		if !strings.Contains(err.Error(), "input cannot exceed 1024 bits") {
			t.Errorf("error = %v, want a capacity error", err)
		}
	})

	t.Run("CompositeOverCapacityHalts", func(t *testing.T) {
		// Five field members are 1265 bits, past the widest Pedersen
		// variant.
		members := make([]Member, 5)
		names := []string{"a", "b", "c", "d", "e"}
		for i := range members {
			lit, err := NewFieldLiteral(big.NewInt(int64(i)), Private)
			if err != nil {
				t.Fatalf("NewFieldLiteral failed: %v", err)
			}
			members[i] = Member{Name: mustIdentifier(t, names[i]), Literal: lit}
		}
		composite, err := NewComposite(mustIdentifier(t, "wide"), members)
		if err != nil {
			t.Fatalf("NewComposite failed: %v", err)
		}

		ins, err := InstructionFromString("hash.ped1024 r0 into r1;")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		regs := NewRegisters(nil)
		if err := regs.Store(NewRegister(0), composite); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		if err := ins.Evaluate(regs); err == nil {
			t.Error("expected composite over capacity to halt")
		}
	})

	t.Run("VisibilityPropagates", func(t *testing.T) {
		public, err := evalUnary(t, "hash.ped64 r0 into r1;", u8(t, 1, Public))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if public.Private() {
			t.Error("digest of a public input should be public")
		}

		private, err := evalUnary(t, "hash.ped64 r0 into r1;", u8(t, 1, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if !private.Private() {
			t.Error("digest of a private input should be private")
		}
	})
}

// TestPoseidonHashInstructions tests the hash.psd family
func TestPoseidonHashInstructions(t *testing.T) {
	t.Run("FieldToField", func(t *testing.T) {
		value, err := evalUnary(t, "hash.psd2 r0 into r1;", fieldLit(t, 7, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		literal := value.(Literal)
		if literal.Kind() != KindField {
			t.Errorf("digest kind = %s, want field", literal.Kind())
		}
	})

	t.Run("NoCapacityLimit", func(t *testing.T) {
		// A long string overflows every Pedersen variant but Poseidon
		// absorbs it.
		long := NewStringLiteral(strings.Repeat("a", 200), Private)
		if _, err := evalUnary(t, "hash.psd2 r0 into r1;", long); err != nil {
			t.Errorf("Poseidon should accept inputs of any length: %v", err)
		}
	})

	t.Run("RatesAreIndependent", func(t *testing.T) {
		input := fieldLit(t, 42, Private)
		a, err := evalUnary(t, "hash.psd2 r0 into r1;", input)
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		b, err := evalUnary(t, "hash.psd4 r0 into r1;", input)
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if valuesEqual(a, b) {
			t.Error("different sponge rates gave the same digest")
		}
	})

	t.Run("CompositeAbsorbsPerMember", func(t *testing.T) {
		lit, err := NewFieldLiteral(big.NewInt(5), Private)
		if err != nil {
			t.Fatalf("NewFieldLiteral failed: %v", err)
		}
		composite, err := NewComposite(mustIdentifier(t, "pair"), []Member{
			{Name: mustIdentifier(t, "a"), Literal: lit},
			{Name: mustIdentifier(t, "b"), Literal: lit},
		})
		if err != nil {
			t.Fatalf("NewComposite failed: %v", err)
		}

		ins, err := InstructionFromString("hash.psd2 r0 into r1;")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		regs := NewRegisters(nil)
		if err := regs.Store(NewRegister(0), composite); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
		if err := ins.Evaluate(regs); err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}

		single, err := evalUnary(t, "hash.psd2 r0 into r1;", lit)
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		pair, err := regs.Load(NewRegister(1))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if valuesEqual(single, pair) {
			t.Error("one member and two members gave the same digest")
		}
	})
}

// TestCommitInstructions tests the commit.ped family
func TestCommitInstructions(t *testing.T) {
	scalar := func(v int64, vis Visibility) Literal {
		l, err := NewScalarLiteral(big.NewInt(v), vis)
		if err != nil {
			t.Fatalf("NewScalarLiteral failed: %v", err)
		}
		return l
	}

	t.Run("GroupResult", func(t *testing.T) {
		value, err := evalBinary(t, "commit.ped64 r0 r1 into r2;", u8(t, 42, Private), scalar(7, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		literal := value.(Literal)
		if literal.Kind() != KindGroup {
			t.Errorf("commitment kind = %s, want group", literal.Kind())
		}
	})

	t.Run("RandomizerMustBeScalar", func(t *testing.T) {
		if _, err := evalBinary(t, "commit.ped64 r0 r1 into r2;", u8(t, 42, Private), u8(t, 7, Private)); err == nil {
			t.Error("expected a non-scalar randomizer to halt")
		}
	})

	t.Run("Hiding", func(t *testing.T) {
		a, err := evalBinary(t, "commit.ped64 r0 r1 into r2;", u8(t, 42, Private), scalar(7, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		b, err := evalBinary(t, "commit.ped64 r0 r1 into r2;", u8(t, 42, Private), scalar(8, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if valuesEqual(a, b) {
			t.Error("distinct randomizers gave the same commitment")
		}
	})

	t.Run("OverCapacityHalts", func(t *testing.T) {
		long := NewStringLiteral(strings.Repeat("a", 17), Private)
		_, err := evalBinary(t, "commit.ped128 r0 r1 into r2;", long, scalar(1, Private))
		if err == nil {
			t.Fatal("expected input over capacity to halt")
		}
		if !strings.Contains(err.Error(), "input cannot exceed 128 bits") {
			t.Errorf("error = %v, want a capacity error", err)
		}
	})

	t.Run("VisibilityJoins", func(t *testing.T) {
		value, err := evalBinary(t, "commit.ped64 r0 r1 into r2;", u8(t, 1, Public), scalar(1, Public))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if value.Private() {
			t.Error("commitment of public operands should be public")
		}

		value, err = evalBinary(t, "commit.ped64 r0 r1 into r2;", u8(t, 1, Public), scalar(1, Private))
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if !value.Private() {
			t.Error("commitment with a private randomizer should be private")
		}
	})
}

// TestHashOutputType tests static result typing for the hash families
func TestHashOutputType(t *testing.T) {
	t.Run("HashGivesField", func(t *testing.T) {
		ins, err := InstructionFromString("hash.ped64 r0 into r1;")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		out, err := ins.OutputType([]RegisterType{NewRegisterType(KindU8, Public)})
		if err != nil {
			t.Fatalf("OutputType failed: %v", err)
		}
		if !out.Equal(NewRegisterType(KindField, Public)) {
			t.Errorf("output type = %s, want field.public", out)
		}
	})

	t.Run("CommitGivesGroup", func(t *testing.T) {
		ins, err := InstructionFromString("commit.ped64 r0 r1 into r2;")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		out, err := ins.OutputType([]RegisterType{
			NewRegisterType(KindU8, Public),
			NewRegisterType(KindScalar, Private),
		})
		if err != nil {
			t.Fatalf("OutputType failed: %v", err)
		}
		if !out.Equal(NewRegisterType(KindGroup, Private)) {
			t.Errorf("output type = %s, want group.private", out)
		}
	})

	t.Run("CommitRejectsNonScalarRandomizer", func(t *testing.T) {
		ins, err := InstructionFromString("commit.ped64 r0 r1 into r2;")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = ins.OutputType([]RegisterType{
			NewRegisterType(KindU8, Public),
			NewRegisterType(KindU8, Public),
		})
		if err == nil {
			t.Error("expected a non-scalar randomizer type to fail")
		}
	})
}
