package types

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the length of all hashes in bytes.
const HashSize = 32

// Hash represents a 32-byte hash (block hash, merkle roots, verdict keys).
type Hash [HashSize]byte

// ZeroHash is the all-zeroes hash.
var ZeroHash Hash

// HashFromReverseHex parses a display-order hex string, the inverse of
// ReverseHex.
func HashFromReverseHex(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(b))
	}
	var h Hash
	for i := range b {
		h[i] = b[HashSize-1-i]
	}
	return h, nil
}

// Hex returns the lowercase hex-encoded string in byte order.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// ReverseHex returns the hex string in display order (byte-reversed), as
// block explorers print block hashes.
func (h Hash) ReverseHex() string {
	var r Hash
	for i := range h {
		r[i] = h[HashSize-1-i]
	}
	return r.Hex()
}

// String implements fmt.Stringer.
func (h Hash) String() string {
	return h.ReverseHex()
}

// IsZero returns true if every byte is 0x00.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}
