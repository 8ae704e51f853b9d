// Package ledger implements a hash-chained ledger. Every block is linked to
// its predecessor by hash and is admitted only when a proof of work computed
// over the predecessor's hash and a nonce satisfies the acceptance rule.
package ledger

import (
	"fmt"
	"regexp"
	"strconv"
)

// Block represents one immutable entry in the ledger.
type Block struct {
	Index        uint64 `json:"index"`         // Zero-based position of the block in the chain.
	PreviousHash string `json:"previous_hash"` // Hash of the block at Index-1, empty for the genesis block.
	Timestamp    int64  `json:"timestamp"`     // Milliseconds since the Unix epoch when the block was pushed.
	Message      string `json:"message"`       // Public payload, opaque to the ledger.
	UserData     string `json:"userdata"`      // Private payload, opaque to the ledger.
	Hash         string `json:"hash"`          // Accepted proof of work hash for this block.
}

// NewBlock constructs a fully populated block. Every input is accepted as is.
func NewBlock(index uint64, previousHash string, timestamp int64, message string, userData string, hash string) Block {
	return Block{
		Index:        index,
		PreviousHash: previousHash,
		Timestamp:    timestamp,
		Message:      message,
		UserData:     userData,
		Hash:         hash,
	}
}

// IsGenesis reports whether the block sits at the start of the chain.
func (b Block) IsGenesis() bool {
	return b.Index == 0
}

// =============================================================================

// minedSuffix is the decoration MineAndPush appends to a message.
const minedSuffix = " ([demo] mined nounce: %d)"

var minedSuffixRE = regexp.MustCompile(` \(\[demo\] mined nounce: (\d+)\)$`)

// MinedMessage returns the message as it is stored when MineAndPush finds
// the specified nonce.
func MinedMessage(message string, nonce uint64) string {
	return message + fmt.Sprintf(minedSuffix, nonce)
}

// SplitMinedMessage reverses MinedMessage. It returns the original message
// and the mined nonce, or false when the message carries no mined suffix.
func SplitMinedMessage(message string) (string, uint64, bool) {
	loc := minedSuffixRE.FindStringSubmatchIndex(message)
	if loc == nil {
		return message, 0, false
	}

	nonce, err := strconv.ParseUint(message[loc[2]:loc[3]], 10, 64)
	if err != nil {
		return message, 0, false
	}

	return message[:loc[0]], nonce, true
}
