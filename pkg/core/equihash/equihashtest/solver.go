// Package equihashtest produces valid Equihash solutions for tests.
//
// Solve runs Wagner's algorithm over every leaf of a parameter set. That is
// only cheap for the small profiles ((48,5) in milliseconds, (96,5) in
// seconds); it is not a production solver.
package equihashtest

import (
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"github.com/ehverify/ehverify/pkg/core/equihash"
)

// Fixture is a header with one valid solution.
type Fixture struct {
	Header   []byte
	Indices  []uint32
	Solution []byte
}

type row struct {
	chunks  []uint32
	indices []uint32
}

// Header returns a deterministic 140-byte header with nonce written into
// the trailing 32-byte nonce field.
func Header(nonce uint32) []byte {
	h := make([]byte, equihash.HeaderSize)
	copy(h, "equihash verifier test header")
	binary.LittleEndian.PutUint32(h[equihash.HeaderSize-32:], nonce)
	return h
}

// Solve returns every solution for header that satisfies the collision,
// ordering and distinctness rules, as leaf index lists in solution order.
func Solve(p equihash.Params, prefix string, header []byte) ([][]uint32, error) {
	state, err := equihash.InitializeDigest(p, prefix, header)
	if err != nil {
		return nil, err
	}

	c := p.CollisionBitLength()
	leaves := 1 << p.MinimalBitsPerIndex()
	rows := make([]row, 0, leaves)
	for i := 0; i < leaves; i++ {
		leaf, err := state.Expand(uint32(i))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row{chunks: chunks(leaf, c), indices: []uint32{uint32(i)}})
	}

	k := int(p.K)
	for r := 0; r < k; r++ {
		last := r == k-1
		buckets := make(map[uint64][]int)
		for i, rw := range rows {
			key := uint64(rw.chunks[r])
			if last {
				// The final pair must also cancel the last chunk.
				key = key<<32 | uint64(rw.chunks[k])
			}
			buckets[key] = append(buckets[key], i)
		}
		keys := make([]uint64, 0, len(buckets))
		for key := range buckets {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		var next []row
		for _, key := range keys {
			group := buckets[key]
			for x := 0; x < len(group); x++ {
				for y := x + 1; y < len(group); y++ {
					a, b := rows[group[x]], rows[group[y]]
					if overlaps(a.indices, b.indices) {
						continue
					}
					if a.indices[0] > b.indices[0] {
						a, b = b, a
					}
					merged := row{
						chunks:  make([]uint32, len(a.chunks)),
						indices: make([]uint32, 0, 2*len(a.indices)),
					}
					for j := range merged.chunks {
						merged.chunks[j] = a.chunks[j] ^ b.chunks[j]
					}
					merged.indices = append(merged.indices, a.indices...)
					merged.indices = append(merged.indices, b.indices...)
					next = append(next, merged)
				}
			}
		}
		rows = next
	}

	out := make([][]uint32, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.indices)
	}
	return out, nil
}

var (
	mu    sync.Mutex
	cache = map[equihash.Params][]Fixture{}
)

// Fixtures returns count Zcash-personalised fixtures for p, each from a
// different header. Results are cached per parameter set.
func Fixtures(p equihash.Params, count int) ([]Fixture, error) {
	mu.Lock()
	defer mu.Unlock()

	if cached := cache[p]; len(cached) >= count {
		return cached[:count], nil
	}

	var found []Fixture
	for nonce := uint32(0); nonce < 4096 && len(found) < count; nonce++ {
		header := Header(nonce)
		sols, err := Solve(p, equihash.DefaultPersonalization, header)
		if err != nil {
			return nil, err
		}
		if len(sols) == 0 {
			continue
		}
		soln, err := equihash.MinimalFromIndices(p, sols[0])
		if err != nil {
			return nil, err
		}
		found = append(found, Fixture{Header: header, Indices: sols[0], Solution: soln})
	}
	if len(found) < count {
		return nil, fmt.Errorf("equihashtest: found %d fixtures for (%s), want %d", len(found), p, count)
	}
	cache[p] = found
	return found, nil
}

// chunks splits a leaf digest into bitLen-bit big-endian values, one bit
// at a time.
func chunks(leaf []byte, bitLen int) []uint32 {
	out := make([]uint32, len(leaf)*8/bitLen)
	for i := range out {
		var v uint32
		for b := 0; b < bitLen; b++ {
			pos := i*bitLen + b
			v = v<<1 | uint32(leaf[pos/8]>>(7-pos%8)&1)
		}
		out[i] = v
	}
	return out
}

func overlaps(a, b []uint32) bool {
	seen := make(map[uint32]struct{}, len(a))
	for _, x := range a {
		seen[x] = struct{}{}
	}
	for _, y := range b {
		if _, ok := seen[y]; ok {
			return true
		}
	}
	return false
}
