package equihash

import (
	"bytes"
	"testing"
)

// Equihash reference vector: the input is this text followed by the nonce
// as a little-endian 256-bit integer, not a block header.
const referenceInput = "Equihash is an asymmetric PoW based on the Generalised Birthday problem."

func referenceSeed(nonce byte) []byte {
	seed := make([]byte, len(referenceInput)+32)
	copy(seed, referenceInput)
	seed[len(referenceInput)] = nonce
	return seed
}

func TestVerify_Reference96_5(t *testing.T) {
	p := Params{N: 96, K: 5}
	indices := []uint32{
		2261, 15185, 36112, 104243, 23779, 118390, 118332, 130041,
		32642, 69878, 76925, 80080, 45858, 116805, 92842, 111026,
		15972, 115059, 85191, 90330, 68190, 122819, 81830, 91132,
		23460, 49807, 52426, 80391, 69567, 114474, 104973, 122568,
	}
	soln, err := MinimalFromIndices(p, indices)
	if err != nil {
		t.Fatalf("MinimalFromIndices: %v", err)
	}
	v, err := NewVerifier(p, Options{})
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	ok, err := v.verify(referenceSeed(1), soln)
	if err != nil || !ok {
		t.Fatalf("verify = (%v, %v), want (true, nil)", ok, err)
	}

	if ok, _ := v.verify(referenceSeed(2), soln); ok {
		t.Error("solution accepted for nonce 2")
	}
	for _, bit := range []int{0, 100, len(soln)*8 - 1} {
		mutated := bytes.Clone(soln)
		mutated[bit/8] ^= 0x80 >> (bit % 8)
		if ok, _ := v.verify(referenceSeed(1), mutated); ok {
			t.Errorf("bit %d: mutated solution accepted", bit)
		}
	}
}
