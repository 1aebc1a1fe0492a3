package equihash

import "encoding/binary"

// testHeader returns a deterministic 140-byte header with nonce written
// into the trailing 32-byte nonce field.
func testHeader(nonce uint32) []byte {
	h := make([]byte, HeaderSize)
	copy(h, "equihash verifier test header")
	binary.LittleEndian.PutUint32(h[HeaderSize-32:], nonce)
	return h
}
