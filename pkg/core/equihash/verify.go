package equihash

import (
	"fmt"
	"sync"

	"github.com/remeh/sizedwaitgroup"
)

// Options tunes a Verifier. The zero value verifies Zcash-personalised
// solutions on the calling goroutine.
type Options struct {
	// Personalization is the 8-byte BLAKE2b personalization prefix.
	// Empty means DefaultPersonalization.
	Personalization string

	// Workers bounds the goroutines used to expand leaf digests.
	// Values <= 1 expand sequentially.
	Workers int
}

// Verifier checks Equihash solutions for one parameter set. It holds no
// per-call state and is safe for concurrent use.
type Verifier struct {
	params  Params
	prefix  string
	workers int
}

// NewVerifier returns a Verifier for p.
func NewVerifier(p Params, opts Options) (*Verifier, error) {
	if _, err := LookupParams(p.N, p.K); err != nil {
		return nil, err
	}
	prefix := opts.Personalization
	if prefix == "" {
		prefix = DefaultPersonalization
	}
	if _, err := Personalization(prefix, p); err != nil {
		return nil, err
	}
	return &Verifier{params: p, prefix: prefix, workers: opts.Workers}, nil
}

// IsValidSolution verifies a Zcash-personalised solution for (n, k).
// A well-formed but invalid solution yields (false, nil).
func IsValidSolution(header, solution []byte, n, k uint32) (bool, error) {
	p, err := LookupParams(n, k)
	if err != nil {
		return false, err
	}
	v := &Verifier{params: p, prefix: DefaultPersonalization}
	return v.Verify(header, solution)
}

// Params returns the verifier's parameter set.
func (v *Verifier) Params() Params {
	return v.params
}

// Verify reports whether solution is a valid Equihash solution for header.
// Errors are returned only for malformed input; an invalid solution is
// (false, nil).
func (v *Verifier) Verify(header, solution []byte) (bool, error) {
	if len(header) != HeaderSize {
		return false, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedHeader, len(header), HeaderSize)
	}
	return v.verify(header, solution)
}

// verify runs the checks over a digest seeded with input, which need not be
// a full block header.
func (v *Verifier) verify(input, solution []byte) (bool, error) {
	indices, err := IndicesFromMinimal(v.params, solution)
	if err != nil {
		return false, err
	}
	state, err := newDigestState(v.params, v.prefix, input)
	if err != nil {
		return false, err
	}
	rows, err := v.expandLeaves(state, indices)
	if err != nil {
		return false, err
	}
	return reduce(v.params, indices, rows), nil
}

// expandLeaves returns the flat row arena: leaf j occupies
// rows[j*(K+1) : (j+1)*(K+1)], one CollisionBitLength-bit chunk per slot.
func (v *Verifier) expandLeaves(state *DigestState, indices []uint32) ([]uint32, error) {
	w := int(v.params.K) + 1
	rows := make([]uint32, len(indices)*w)

	fill := func(j int) error {
		leaf, err := state.Expand(indices[j])
		if err != nil {
			return err
		}
		copy(rows[j*w:(j+1)*w], expandBits(leaf, v.params.CollisionBitLength()))
		return nil
	}

	if v.workers <= 1 {
		for j := range indices {
			if err := fill(j); err != nil {
				return nil, err
			}
		}
		return rows, nil
	}

	var (
		once     sync.Once
		firstErr error
	)
	swg := sizedwaitgroup.New(v.workers)
	for j := range indices {
		swg.Add()
		go func(j int) {
			defer swg.Done()
			if err := fill(j); err != nil {
				once.Do(func() { firstErr = err })
			}
		}(j)
	}
	swg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return rows, nil
}

// reduce runs the K collision rounds bottom-up over the arena, halving the
// live rows each round. indices are in solution order, so the subtree of a
// round-r node j is indices[j<<r : (j+1)<<r] and its first index is its
// minimum once ordering has been enforced below it.
func reduce(p Params, indices []uint32, rows []uint32) bool {
	w := int(p.K) + 1
	n := len(indices)
	for r := 1; r <= int(p.K); r++ {
		span := 1 << (r - 1)
		for j := 0; j < n>>r; j++ {
			a := rows[2*j*w : (2*j+1)*w]
			b := rows[(2*j+1)*w : (2*j+2)*w]
			if a[r-1] != b[r-1] {
				return false
			}
			left := indices[2*j*span : (2*j+1)*span]
			right := indices[(2*j+1)*span : (2*j+2)*span]
			if left[0] >= right[0] {
				return false
			}
			if !distinctIndices(left, right) {
				return false
			}
			// Parent j is written at or before the pair it consumes.
			parent := rows[j*w : (j+1)*w]
			for c := range parent {
				parent[c] = a[c] ^ b[c]
			}
		}
	}
	return rows[p.K] == 0
}

func distinctIndices(a, b []uint32) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return false
			}
		}
	}
	return true
}
