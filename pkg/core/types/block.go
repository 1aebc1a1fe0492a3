package types

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the serialized size of a BlockHeader without its solution.
const HeaderSize = 140

// BlockHeader is an Equihash block header. The solution is carried
// separately and is not part of the 140 bytes fed to the PoW digest.
type BlockHeader struct {
	Version       uint32
	PrevBlockHash Hash
	MerkleRoot    Hash
	Reserved      Hash // final sapling root on Zcash, zero on most forks
	Time          uint32
	Bits          uint32
	Nonce         Hash
}

// Serialize returns the 140-byte encoding of the header: Version, the three
// hashes, Time, Bits and Nonce in field order, integers little-endian.
func (h *BlockHeader) Serialize() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Version)
	copy(buf[4:36], h.PrevBlockHash[:])
	copy(buf[36:68], h.MerkleRoot[:])
	copy(buf[68:100], h.Reserved[:])
	binary.LittleEndian.PutUint32(buf[100:104], h.Time)
	binary.LittleEndian.PutUint32(buf[104:108], h.Bits)
	copy(buf[108:140], h.Nonce[:])
	return buf
}

// ParseBlockHeader decodes a 140-byte header.
func ParseBlockHeader(b []byte) (*BlockHeader, error) {
	if len(b) != HeaderSize {
		return nil, fmt.Errorf("header must be %d bytes, got %d", HeaderSize, len(b))
	}
	h := &BlockHeader{
		Version: binary.LittleEndian.Uint32(b[0:4]),
		Time:    binary.LittleEndian.Uint32(b[100:104]),
		Bits:    binary.LittleEndian.Uint32(b[104:108]),
	}
	copy(h.PrevBlockHash[:], b[4:36])
	copy(h.MerkleRoot[:], b[36:68])
	copy(h.Reserved[:], b[68:100])
	copy(h.Nonce[:], b[108:140])
	return h, nil
}
