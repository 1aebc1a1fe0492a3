package consensus

import (
	"encoding/binary"

	sha256 "github.com/minio/sha256-simd"

	"github.com/ehverify/ehverify/pkg/core/types"
)

// BlockHash computes SHA256(SHA256(header || compactSize(len(solution)) || solution)),
// the identity hash of an Equihash block.
func BlockHash(header, solution []byte) types.Hash {
	buf := make([]byte, 0, len(header)+9+len(solution))
	buf = append(buf, header...)
	buf = appendCompactSize(buf, uint64(len(solution)))
	buf = append(buf, solution...)

	first := sha256.Sum256(buf)
	return sha256.Sum256(first[:])
}

// appendCompactSize appends the Bitcoin variable-length integer encoding of n.
func appendCompactSize(buf []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(buf, byte(n))
	case n <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(buf, 0xfd), uint16(n))
	case n <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(buf, 0xfe), uint32(n))
	default:
		return binary.LittleEndian.AppendUint64(append(buf, 0xff), n)
	}
}
