package equihash

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dchest/blake2b"
)

// DigestState is a personalised BLAKE2b state that has absorbed a block
// header. It is read-only after InitializeDigest, so HashBlock and Expand
// may be called from several goroutines.
type DigestState struct {
	params Params
	config blake2b.Config
	input  []byte
}

// Personalization returns the 16-byte BLAKE2b personalization for p:
// prefix || le32(N) || le32(K).
func Personalization(prefix string, p Params) ([]byte, error) {
	if len(prefix) != blake2b.PersonSize-8 {
		return nil, fmt.Errorf("%w: prefix %q must be %d bytes", ErrInvalidPersonalization, prefix, blake2b.PersonSize-8)
	}
	person := make([]byte, blake2b.PersonSize)
	copy(person, prefix)
	binary.LittleEndian.PutUint32(person[8:12], p.N)
	binary.LittleEndian.PutUint32(person[12:16], p.K)
	return person, nil
}

// InitializeDigest keys BLAKE2b for p and absorbs the header.
func InitializeDigest(p Params, prefix string, header []byte) (*DigestState, error) {
	if len(header) != HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedHeader, len(header), HeaderSize)
	}
	return newDigestState(p, prefix, header)
}

// newDigestState absorbs input of any length.
func newDigestState(p Params, prefix string, input []byte) (*DigestState, error) {
	person, err := Personalization(prefix, p)
	if err != nil {
		return nil, err
	}
	s := &DigestState{
		params: p,
		config: blake2b.Config{
			Size:   uint8(p.HashOutput()),
			Person: person,
		},
		input: bytes.Clone(input),
	}

	// Reject a bad config here so HashBlock only fails on programmer error.
	if _, err := blake2b.New(&s.config); err != nil {
		return nil, fmt.Errorf("equihash: blake2b init: %w", err)
	}
	return s, nil
}

// Params returns the parameter set the state was keyed with.
func (s *DigestState) Params() Params {
	return s.params
}

// HashBlock returns the HashOutput-byte digest for block g, which covers
// leaf indices [g*IndicesPerHashOutput, (g+1)*IndicesPerHashOutput).
func (s *DigestState) HashBlock(g uint32) ([]byte, error) {
	h, err := blake2b.New(&s.config)
	if err != nil {
		return nil, fmt.Errorf("equihash: blake2b init: %w", err)
	}
	h.Write(s.input)
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], g)
	h.Write(le[:])
	return h.Sum(nil), nil
}

// Expand returns the N/8-byte digest of leaf index i.
func (s *DigestState) Expand(i uint32) ([]byte, error) {
	per := uint32(s.params.IndicesPerHashOutput())
	block, err := s.HashBlock(i / per)
	if err != nil {
		return nil, err
	}
	n := s.params.LeafBytes()
	off := int(i%per) * n
	return block[off : off+n], nil
}
