package equihash

import "fmt"

// HeaderSize is the length of the block header absorbed into the digest state.
const HeaderSize = 140

// DefaultPersonalization is the BLAKE2b personalization prefix used by Zcash.
// The full 16-byte personalization is prefix || le32(N) || le32(K).
const DefaultPersonalization = "ZcashPoW"

// Params is a supported (N, K) Equihash parameter set.
// All derived sizes are pure functions of N and K.
type Params struct {
	N uint32
	K uint32
}

// DefaultParams is used when a caller does not specify N and K.
var DefaultParams = Params{N: 200, K: 9}

// supported is the closed table of parameter sets the verifier accepts.
// Adding a profile is a table change.
var supported = []Params{
	{N: 96, K: 3},
	{N: 200, K: 9},
	{N: 144, K: 5},
	{N: 192, K: 7},
	{N: 96, K: 5},
	{N: 48, K: 5},
}

var supportedSet = func() map[Params]struct{} {
	m := make(map[Params]struct{}, len(supported))
	for _, p := range supported {
		m[p] = struct{}{}
	}
	return m
}()

// LookupParams returns the parameter set for (n, k) or ErrUnsupportedParameters.
func LookupParams(n, k uint32) (Params, error) {
	p := Params{N: n, K: k}
	if _, ok := supportedSet[p]; !ok {
		return Params{}, fmt.Errorf("%w: n=%d k=%d", ErrUnsupportedParameters, n, k)
	}
	return p, nil
}

// SupportedParams returns a copy of the supported parameter table.
func SupportedParams() []Params {
	out := make([]Params, len(supported))
	copy(out, supported)
	return out
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("%d,%d", p.N, p.K)
}

// IndicesPerSolution is 2^K.
func (p Params) IndicesPerSolution() int {
	return 1 << p.K
}

// CollisionBitLength is N/(K+1), the bits compared at each round.
func (p Params) CollisionBitLength() int {
	return int(p.N / (p.K + 1))
}

// CollisionByteLength is CollisionBitLength rounded up to whole bytes.
func (p Params) CollisionByteLength() int {
	return (p.CollisionBitLength() + 7) / 8
}

// MinimalBitsPerIndex is the width of one packed index in a solution.
func (p Params) MinimalBitsPerIndex() int {
	return p.CollisionBitLength() + 1
}

// SolutionWidth is the byte length of a packed (minimal) solution.
func (p Params) SolutionWidth() int {
	return (p.IndicesPerSolution()*p.MinimalBitsPerIndex() + 7) / 8
}

// IndicesPerHashOutput is how many leaf digests one BLAKE2b call yields.
func (p Params) IndicesPerHashOutput() int {
	return int(512 / p.N)
}

// HashOutput is the BLAKE2b digest size in bytes.
func (p Params) HashOutput() int {
	return p.IndicesPerHashOutput() * int(p.N) / 8
}

// LeafBytes is the size of one leaf digest, N/8.
func (p Params) LeafBytes() int {
	return int(p.N) / 8
}
