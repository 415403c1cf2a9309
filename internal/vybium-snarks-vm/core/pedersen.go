package core

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Pedersen implements the Pedersen hash and commitment over the embedded
// Edwards group. Each instance carries one generator per admissible input
// bit plus a blinding generator for commitments; the digest of a bit string
// is the x-coordinate of the sum of the generators selected by set bits.
type Pedersen struct {
	domain     string
	capacity   int
	generators []*Point
	blinding   *Point
}

var (
	pedersenMu    sync.Mutex
	pedersenCache = make(map[int]*Pedersen)
)

// SetupPedersen returns the process-wide Pedersen instance for the given
// bit capacity, deriving its generators on first use.
func SetupPedersen(capacity int) *Pedersen {
	pedersenMu.Lock()
	defer pedersenMu.Unlock()
	if p, ok := pedersenCache[capacity]; ok {
		return p
	}
	p := NewPedersen(fmt.Sprintf("VybiumPedersen%d", capacity), capacity)
	pedersenCache[capacity] = p
	return p
}

// NewPedersen derives a fresh Pedersen instance with generators bound to
// the given domain separator.
func NewPedersen(domain string, capacity int) *Pedersen {
	generators := make([]*Point, capacity)
	for i := range generators {
		generators[i] = hashToGroup(domain, uint32(i))
	}
	return &Pedersen{
		domain:     domain,
		capacity:   capacity,
		generators: generators,
		blinding:   hashToGroup(domain+".blinding", 0),
	}
}

// Capacity returns the maximum admissible input length in bits.
func (p *Pedersen) Capacity() int {
	return p.capacity
}

// Hash digests the given bit string into a base field element.
func (p *Pedersen) Hash(bits []bool) (*FieldElement, error) {
	point, err := p.hashPoint(bits)
	if err != nil {
		return nil, err
	}
	return point.X, nil
}

// Commit digests the given bit string and blinds it with the randomizer,
// returning the resulting group point.
func (p *Pedersen) Commit(bits []bool, randomizer *big.Int) (*Point, error) {
	point, err := p.hashPoint(bits)
	if err != nil {
		return nil, err
	}
	return point.Add(p.blinding.ScalarMul(randomizer)), nil
}

func (p *Pedersen) hashPoint(bits []bool) (*Point, error) {
	if len(bits) > p.capacity {
		return nil, fmt.Errorf("input of %d bits exceeds the %d-bit capacity", len(bits), p.capacity)
	}
	sum := Identity()
	for i, bit := range bits {
		if bit {
			sum = sum.Add(p.generators[i])
		}
	}
	return sum, nil
}

// hashToGroup maps a domain separator and index to a prime-order subgroup
// point by try-and-increment: candidate x-coordinates are drawn from a
// blake2b stream until one lies on the curve, then the cofactor is cleared.
func hashToGroup(domain string, index uint32) *Point {
	var input [8]byte
	binary.LittleEndian.PutUint32(input[0:4], index)
	for counter := uint32(0); ; counter++ {
		binary.LittleEndian.PutUint32(input[4:8], counter)
		digest := blake2b.Sum512(append([]byte(domain), input[:]...))
		x := BaseField.FromBytesLE(digest[:32])
		point, err := RecoverY(x)
		if err != nil {
			continue
		}
		point = point.MulByCofactor()
		if point.IsIdentity() {
			continue
		}
		return point
	}
}
