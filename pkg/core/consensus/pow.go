package consensus

import (
	"errors"
	"fmt"

	"github.com/ehverify/ehverify/pkg/core/types"
)

var (
	ErrMalformedPoWInput = errors.New("block header or solution is malformed")
	ErrInvalidSolution   = errors.New("block Equihash solution is invalid")
	ErrHashAboveTarget   = errors.New("block hash does not meet target")
)

// SolutionVerifier checks the Equihash solution of a serialized header.
// *equihash.Verifier is the production implementation.
type SolutionVerifier interface {
	// Verify returns (false, nil) for a well-formed invalid solution and an
	// error only for malformed input.
	Verify(header, solution []byte) (bool, error)
}

// ValidateHeaderPoW checks the header's proof of work: the Equihash
// solution must be valid and the block hash must meet the header's target.
// It returns the block hash on success.
func ValidateHeaderPoW(h *types.BlockHeader, solution []byte, v SolutionVerifier) (types.Hash, error) {
	target, err := CompactToTarget(h.Bits)
	if err != nil {
		return types.Hash{}, err
	}

	header := h.Serialize()
	ok, err := v.Verify(header, solution)
	if err != nil {
		return types.Hash{}, fmt.Errorf("%w: %w", ErrMalformedPoWInput, err)
	}
	if !ok {
		return types.Hash{}, ErrInvalidSolution
	}

	hash := BlockHash(header, solution)
	if !HashMeetsTarget(hash, target) {
		return types.Hash{}, ErrHashAboveTarget
	}
	return hash, nil
}
