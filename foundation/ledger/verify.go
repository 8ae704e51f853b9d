package ledger

import (
	"errors"
	"fmt"
)

// ErrIntegrity is matched by every error Verify returns.
var ErrIntegrity = errors.New("ledger integrity check failed")

// IntegrityError describes the first block that failed verification.
type IntegrityError struct {
	Index  uint64
	Reason string
}

// Error implements the error interface.
func (ie *IntegrityError) Error() string {
	return fmt.Sprintf("block %d: %s", ie.Index, ie.Reason)
}

// Is allows errors.Is to match ErrIntegrity.
func (ie *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// =============================================================================

// Verify walks the chain and checks the block numbering, the hash linkage and
// that every stored hash is well formed and solved. Nonces are not persisted,
// so a stored hash can't be recomputed from its inputs.
func (c *Chain) Verify() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var previousHash string
	for i, block := range c.blocks {
		pos := uint64(i)

		if block.Index != pos {
			return &IntegrityError{Index: pos, Reason: fmt.Sprintf("index mismatch, got %d, exp %d", block.Index, pos)}
		}

		if block.PreviousHash != previousHash {
			return &IntegrityError{Index: pos, Reason: fmt.Sprintf("previous hash doesn't match, got %q, exp %q", block.PreviousHash, previousHash)}
		}

		if !isHexDigest(block.Hash) {
			return &IntegrityError{Index: pos, Reason: fmt.Sprintf("malformed hash %q", block.Hash)}
		}

		if !IsHashSolved(block.Hash) {
			return &IntegrityError{Index: pos, Reason: fmt.Sprintf("hash %s is not solved", block.Hash)}
		}

		previousHash = block.Hash
	}

	c.evHandler("ledger: Verify: blocks[%d]: OK", len(c.blocks))

	return nil
}

// isHexDigest checks the value is 64 lowercase hex characters.
func isHexDigest(hash string) bool {
	if len(hash) != 64 {
		return false
	}

	for i := 0; i < len(hash); i++ {
		switch c := hash[i]; {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}

	return true
}
