package core

import (
	"encoding/binary"
	"math/big"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Poseidon parameters shared by every rate. The S-box exponent 17 is chosen
// because gcd(17, p-1) = 1 on BaseField, making x^17 a permutation.
const (
	poseidonFullRounds    = 8
	poseidonPartialRounds = 31
	poseidonAlpha         = 17
)

// Poseidon implements a Poseidon sponge over BaseField with a one-element
// capacity. Round constants are drawn from a blake2b stream and the MDS
// matrix uses the Cauchy construction, both keyed by the sponge width.
type Poseidon struct {
	rate           int
	width          int
	roundConstants [][]*FieldElement
	mds            [][]*FieldElement
}

var (
	poseidonMu    sync.Mutex
	poseidonCache = make(map[int]*Poseidon)
)

// SetupPoseidon returns the process-wide Poseidon instance for the given
// rate, deriving its parameters on first use.
func SetupPoseidon(rate int) *Poseidon {
	poseidonMu.Lock()
	defer poseidonMu.Unlock()
	if p, ok := poseidonCache[rate]; ok {
		return p
	}
	p := NewPoseidon(rate)
	poseidonCache[rate] = p
	return p
}

// NewPoseidon derives a fresh Poseidon sponge with the given rate.
func NewPoseidon(rate int) *Poseidon {
	width := rate + 1
	totalRounds := poseidonFullRounds + poseidonPartialRounds

	stream := newParameterStream(width)
	constants := make([][]*FieldElement, totalRounds)
	for r := range constants {
		constants[r] = make([]*FieldElement, width)
		for i := range constants[r] {
			constants[r][i] = stream.next()
		}
	}

	// Cauchy matrix m[i][j] = 1 / (x_i + y_j) with x_i = i, y_j = width + j.
	// All sums are distinct and nonzero, so every entry is invertible.
	mds := make([][]*FieldElement, width)
	for i := range mds {
		mds[i] = make([]*FieldElement, width)
		for j := range mds[i] {
			sum := BaseField.NewElementFromInt64(int64(i + width + j))
			inv, err := sum.Inv()
			if err != nil {
				panic("core: degenerate Cauchy matrix entry")
			}
			mds[i][j] = inv
		}
	}

	return &Poseidon{rate: rate, width: width, roundConstants: constants, mds: mds}
}

// Rate returns the number of elements absorbed per permutation.
func (p *Poseidon) Rate() int {
	return p.rate
}

// Hash absorbs the inputs into the sponge and squeezes one element.
// The input length is absorbed first so that padded and unpadded inputs
// of equal prefix cannot collide.
func (p *Poseidon) Hash(inputs []*FieldElement) *FieldElement {
	state := make([]*FieldElement, p.width)
	for i := range state {
		state[i] = BaseField.Zero()
	}
	state[0] = BaseField.NewElementFromUint64(uint64(len(inputs)))
	state = p.permute(state)

	for start := 0; start < len(inputs) || start == 0; start += p.rate {
		for i := 0; i < p.rate; i++ {
			if start+i < len(inputs) {
				state[1+i] = state[1+i].Add(inputs[start+i])
			}
		}
		state = p.permute(state)
	}

	return state[0]
}

func (p *Poseidon) permute(state []*FieldElement) []*FieldElement {
	alpha := big.NewInt(poseidonAlpha)
	round := 0

	applyFull := func() {
		for i := range state {
			state[i] = state[i].Add(p.roundConstants[round][i]).Exp(alpha)
		}
		state = p.mix(state)
		round++
	}

	for r := 0; r < poseidonFullRounds/2; r++ {
		applyFull()
	}
	for r := 0; r < poseidonPartialRounds; r++ {
		for i := range state {
			state[i] = state[i].Add(p.roundConstants[round][i])
		}
		state[0] = state[0].Exp(alpha)
		state = p.mix(state)
		round++
	}
	for r := 0; r < poseidonFullRounds/2; r++ {
		applyFull()
	}
	return state
}

func (p *Poseidon) mix(state []*FieldElement) []*FieldElement {
	mixed := make([]*FieldElement, p.width)
	for i := range mixed {
		acc := BaseField.Zero()
		for j := range state {
			acc = acc.Add(p.mds[i][j].Mul(state[j]))
		}
		mixed[i] = acc
	}
	return mixed
}

// parameterStream yields field elements from a blake2b counter stream.
type parameterStream struct {
	domain  []byte
	counter uint32
}

func newParameterStream(width int) *parameterStream {
	return &parameterStream{domain: binary.LittleEndian.AppendUint32([]byte("VybiumPoseidon"), uint32(width))}
}

func (s *parameterStream) next() *FieldElement {
	digest := blake2b.Sum256(binary.LittleEndian.AppendUint32(s.domain, s.counter))
	s.counter++
	return BaseField.FromBytesLE(digest[:])
}
