package equihash

import "fmt"

// IndicesFromMinimal unpacks a minimal solution into its 2^K leaf indices.
// Indices are MinimalBitsPerIndex bits wide, packed most significant bit
// first across byte boundaries.
func IndicesFromMinimal(p Params, soln []byte) ([]uint32, error) {
	if want := p.SolutionWidth(); len(soln) != want {
		return nil, fmt.Errorf("%w: %d bytes, want %d for (%s)", ErrMalformedSolution, len(soln), want, p)
	}
	indices := expandBits(soln, p.MinimalBitsPerIndex())
	if len(indices) != p.IndicesPerSolution() {
		return nil, fmt.Errorf("%w: decoded %d indices, want %d", ErrMalformedSolution, len(indices), p.IndicesPerSolution())
	}
	return indices, nil
}

// MinimalFromIndices packs leaf indices into the minimal wire encoding.
func MinimalFromIndices(p Params, indices []uint32) ([]byte, error) {
	if len(indices) != p.IndicesPerSolution() {
		return nil, fmt.Errorf("%w: %d indices, want %d", ErrMalformedSolution, len(indices), p.IndicesPerSolution())
	}
	bits := p.MinimalBitsPerIndex()
	limit := uint32(1) << bits
	for i, idx := range indices {
		if idx >= limit {
			return nil, fmt.Errorf("%w: index %d at position %d exceeds %d bits", ErrMalformedSolution, idx, i, bits)
		}
	}
	return compressBits(indices, bits), nil
}

// expandBits reads consecutive bitLen-bit big-endian values from in.
// Trailing bits that do not fill a whole value are ignored.
func expandBits(in []byte, bitLen int) []uint32 {
	out := make([]uint32, 0, len(in)*8/bitLen)
	mask := uint64(1)<<bitLen - 1
	var acc uint64
	accBits := 0
	for _, b := range in {
		acc = acc<<8 | uint64(b)
		accBits += 8
		if accBits >= bitLen {
			accBits -= bitLen
			out = append(out, uint32(acc>>accBits&mask))
		}
	}
	return out
}

// compressBits is the inverse of expandBits. The final byte is zero padded.
func compressBits(values []uint32, bitLen int) []byte {
	out := make([]byte, (len(values)*bitLen+7)/8)
	mask := uint64(1)<<bitLen - 1
	var acc uint64
	accBits, j := 0, 0
	for _, v := range values {
		acc = acc<<bitLen | uint64(v)&mask
		accBits += bitLen
		for accBits >= 8 {
			accBits -= 8
			out[j] = byte(acc >> accBits)
			j++
		}
	}
	if accBits > 0 {
		out[j] = byte(acc << (8 - accBits))
	}
	return out
}
