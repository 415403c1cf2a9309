package vybiumsnarksvm

import (
	"testing"
)

const computeSource = `
function compute:
    input r0 as u8.private;
    input r1 as u8.private;
    add r0 r1 into r2;
    output r2 as u8.private;
`

func TestPublicAPI(t *testing.T) {
	t.Run("ParseAndEvaluate", func(t *testing.T) {
		f, err := ParseFunction(computeSource)
		if err != nil {
			t.Fatalf("ParseFunction failed: %v", err)
		}
		if err := TypeCheck(f); err != nil {
			t.Fatalf("TypeCheck failed: %v", err)
		}

		a, err := ParseLiteral("2u8.private")
		if err != nil {
			t.Fatalf("ParseLiteral failed: %v", err)
		}
		b, err := ParseLiteral("3u8.private")
		if err != nil {
			t.Fatalf("ParseLiteral failed: %v", err)
		}

		outputs, err := Evaluate(f, []Value{a, b})
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if len(outputs) != 1 || outputs[0].String() != "5u8.private" {
			t.Errorf("outputs = %v, want [5u8.private]", outputs)
		}
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		f, err := ParseFunction(computeSource)
		if err != nil {
			t.Fatalf("ParseFunction failed: %v", err)
		}
		raw, err := EncodeFunction(f)
		if err != nil {
			t.Fatalf("EncodeFunction failed: %v", err)
		}
		decoded, err := DecodeFunction(raw)
		if err != nil {
			t.Fatalf("DecodeFunction failed: %v", err)
		}
		if !decoded.Equal(f) {
			t.Error("binary round-trip changed the function")
		}
	})

	t.Run("InstructionRoundTrip", func(t *testing.T) {
		ins, err := ParseInstruction("hash.ped64 r0 into r1;")
		if err != nil {
			t.Fatalf("ParseInstruction failed: %v", err)
		}
		raw, err := EncodeInstruction(ins)
		if err != nil {
			t.Fatalf("EncodeInstruction failed: %v", err)
		}
		decoded, err := DecodeInstruction(raw)
		if err != nil {
			t.Fatalf("DecodeInstruction failed: %v", err)
		}
		if !decoded.Equal(ins) {
			t.Error("binary round-trip changed the instruction")
		}
	})

	t.Run("ProfileLimitsApply", func(t *testing.T) {
		profile := DefaultProfile()
		profile.MaxFunctionInputs = 1

		_, err := ParseFunctionWithProfile(computeSource, profile)
		if err == nil {
			t.Error("expected the second input to exceed the profile limit")
		}
	})
}

func TestDecodeFunctionWithProfile(t *testing.T) {
	wide := &Profile{
		MaxFunctionInputs:       12,
		MaxFunctionInstructions: 65535,
		MaxFunctionOutputs:      8,
		MaxRegisters:            65535,
	}
	source := `
function stack:
    input r0 as u8.private;
    input r1 as u8.private;
    input r2 as u8.private;
    input r3 as u8.private;
    input r4 as u8.private;
    input r5 as u8.private;
    input r6 as u8.private;
    input r7 as u8.private;
    input r8 as u8.private;
    add r0 r8 into r9;
    output r9 as u8.private;
`
	f, err := ParseFunctionWithProfile(source, wide)
	if err != nil {
		t.Fatalf("ParseFunctionWithProfile failed: %v", err)
	}
	raw, err := EncodeFunction(f)
	if err != nil {
		t.Fatalf("EncodeFunction failed: %v", err)
	}
	if _, err := DecodeFunction(raw); err == nil {
		t.Error("expected decoding 9 inputs under the default limits to fail")
	}
	decoded, err := DecodeFunctionWithProfile(raw, wide)
	if err != nil {
		t.Fatalf("DecodeFunctionWithProfile failed: %v", err)
	}
	if !decoded.Equal(f) {
		t.Error("decoded function does not match the original")
	}
}
