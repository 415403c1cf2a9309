// Package vybiumsnarksvm provides the instruction set and execution engine
// of the Vybium SNARKs VM.
//
// Vybium SNARKs VM is a register-based virtual machine for zero-knowledge
// programs. Functions are written in a small assembly language, type
// checked, evaluated over SNARK-friendly field arithmetic, and serialized
// to a compact binary form.
//
// # Features
//
// - 22-instruction ISA with checked and wrapped arithmetic
// - Pedersen hashes and commitments with fixed input capacities
// - Poseidon sponge hashes over the BLS12-377 scalar field
// - Typed literals with public/private visibility modifiers
// - Canonical text grammar with round-trip parsing and printing
// - Little-endian binary codec for instructions and functions
//
// # Quick Start
//
// Parsing and evaluating a function:
//
//	f, err := vybiumsnarksvm.ParseFunction(`
//	function compute:
//	    input r0 as u8.private;
//	    input r1 as u8.private;
//	    add r0 r1 into r2;
//	    output r2 as u8.private;
//	`)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	a, _ := vybiumsnarksvm.ParseLiteral("2u8.private")
//	b, _ := vybiumsnarksvm.ParseLiteral("3u8.private")
//
//	outputs, err := vybiumsnarksvm.Evaluate(f, []vybiumsnarksvm.Value{a, b})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(outputs[0]) // 5u8.private
//
// Encoding a function to its binary form and back:
//
//	raw, err := vybiumsnarksvm.EncodeFunction(f)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	decoded, err := vybiumsnarksvm.DecodeFunction(raw)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// Vybium SNARKs VM uses a hybrid public/private architecture:
//
// - pkg/vybium-snarks-vm/: Public API (this package)
// - internal/vybium-snarks-vm/: Private implementation (not importable)
//
// The public API provides stable interfaces for:
// - Program text parsing and printing
// - Static type checking and evaluation
// - Binary encoding and decoding
//
// Implementation details in internal/ can be refactored without breaking the public API.
//
// # Field Arithmetic
//
// All field operations are performed over the BLS12-377 scalar field, a
// 253-bit prime field. Scalar literals live in the 251-bit subgroup order
// of the embedded twisted Edwards curve, and group literals carry the
// x-coordinate of a point on that curve.
//
// # License
//
// See LICENSE file in the repository root.
package vybiumsnarksvm
