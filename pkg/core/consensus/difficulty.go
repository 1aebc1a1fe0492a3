package consensus

import (
	"errors"
	"math/big"

	"github.com/ehverify/ehverify/pkg/core/types"
)

var ErrInvalidBits = errors.New("compact target is out of range")

// CompactToTarget expands the compact "nBits" header field into a 256-bit
// target. Bits = exponent(1 byte) || mantissa(3 bytes); the 0x00800000
// sign bit is not allowed in a PoW target, and the target must be positive
// and fit in 256 bits.
func CompactToTarget(bits uint32) (*big.Int, error) {
	exponent := uint(bits >> 24)
	mantissa := int64(bits & 0x007fffff)
	if bits&0x00800000 != 0 {
		return nil, ErrInvalidBits
	}

	target := big.NewInt(mantissa)
	if exponent <= 3 {
		target.Rsh(target, 8*(3-exponent))
	} else {
		target.Lsh(target, 8*(exponent-3))
	}

	if target.Sign() <= 0 || target.BitLen() > 256 {
		return nil, ErrInvalidBits
	}
	return target, nil
}

// HashMeetsTarget reports whether the hash, read as a little-endian
// 256-bit integer, is at most target.
func HashMeetsTarget(hash types.Hash, target *big.Int) bool {
	var be types.Hash
	for i := range hash {
		be[i] = hash[types.HashSize-1-i]
	}
	return new(big.Int).SetBytes(be[:]).Cmp(target) <= 0
}
