package core

import (
	"testing"
)

// TestPoseidonHash tests the Poseidon sponge hash
func TestPoseidonHash(t *testing.T) {
	psd := SetupPoseidon(2)

	t.Run("Deterministic", func(t *testing.T) {
		inputs := []*FieldElement{
			BaseField.NewElementFromUint64(1),
			BaseField.NewElementFromUint64(2),
		}
		a := psd.Hash(inputs)
		b := psd.Hash(inputs)
		if !a.Equal(b) {
			t.Error("same input gave different digests")
		}
	})

	t.Run("DistinctInputs", func(t *testing.T) {
		a := psd.Hash([]*FieldElement{BaseField.NewElementFromUint64(1)})
		b := psd.Hash([]*FieldElement{BaseField.NewElementFromUint64(2)})
		if a.Equal(b) {
			t.Error("distinct inputs gave the same digest")
		}
	})

	t.Run("LengthDependent", func(t *testing.T) {
		// The initial state absorbs the input length, so a zero-padded
		// input must not collide with the shorter one.
		one := BaseField.NewElementFromUint64(1)
		a := psd.Hash([]*FieldElement{one})
		b := psd.Hash([]*FieldElement{one, BaseField.Zero()})
		if a.Equal(b) {
			t.Error("padding with zero collided with the shorter input")
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		a := psd.Hash(nil)
		b := psd.Hash(nil)
		if !a.Equal(b) {
			t.Error("empty input is not deterministic")
		}
	})

	t.Run("ExceedsRate", func(t *testing.T) {
		// Inputs longer than the rate absorb over several permutations.
		inputs := make([]*FieldElement, 5)
		for i := range inputs {
			inputs[i] = BaseField.NewElementFromUint64(uint64(i + 1))
		}
		digest := psd.Hash(inputs)
		if !BaseField.Contains(digest.Big()) {
			t.Error("digest is not a base field element")
		}
	})
}

// TestPoseidonRates tests that different rates give independent hashes
func TestPoseidonRates(t *testing.T) {
	inputs := []*FieldElement{
		BaseField.NewElementFromUint64(42),
		BaseField.NewElementFromUint64(43),
	}

	a := SetupPoseidon(2).Hash(inputs)
	b := SetupPoseidon(4).Hash(inputs)
	c := SetupPoseidon(8).Hash(inputs)
	if a.Equal(b) || b.Equal(c) || a.Equal(c) {
		t.Error("different sponge rates should give independent digests")
	}
}

// TestPoseidonSetupCache tests that repeated setups share parameters
func TestPoseidonSetupCache(t *testing.T) {
	a := SetupPoseidon(4)
	b := SetupPoseidon(4)
	if a != b {
		t.Error("SetupPoseidon did not return the cached instance")
	}
	if a.Rate() != 4 {
		t.Errorf("Rate = %d, want 4", a.Rate())
	}
}

// TestPoseidonDerivation locks the parameter derivation: the cached
// instance must agree with a freshly constructed one at the same rate.
func TestPoseidonDerivation(t *testing.T) {
	inputs := []*FieldElement{
		BaseField.NewElementFromUint64(7),
		BaseField.NewElementFromUint64(11),
		BaseField.NewElementFromUint64(13),
	}
	for _, rate := range []int{2, 4, 8} {
		cached := SetupPoseidon(rate).Hash(inputs)
		fresh := NewPoseidon(rate).Hash(inputs)
		if !cached.Equal(fresh) {
			t.Errorf("rate %d: cached digest disagrees with a fresh derivation", rate)
		}
	}
}
