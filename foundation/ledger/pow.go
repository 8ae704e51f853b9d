package ledger

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/minio/sha256-simd"
)

// Difficulty is the number of leading '0' characters an accepted hash must
// carry in its hex form. This is a character count, not a bit count.
const Difficulty = 3

// MaxNonce is the exclusive upper bound of the nonce search performed by
// Mine and MineAndPush.
const MaxNonce uint64 = 100_000

// searchLimit bounds the search performed by Mine. It only differs from
// MaxNonce in tests.
var searchLimit = MaxNonce

// cancelCheck is how many attempts pass between checks of the context.
const cancelCheck = 1_000

// solvedPrefix is the literal prefix an accepted hash starts with.
var solvedPrefix = strings.Repeat("0", Difficulty)

// Hash returns the lowercase hex SHA-256 digest of the previous hash
// concatenated with the base-10 form of the nonce. No separator is used.
func Hash(previousHash string, nonce uint64) string {
	sum := sha256.Sum256([]byte(previousHash + strconv.FormatUint(nonce, 10)))
	return hex.EncodeToString(sum[:])
}

// IsHashSolved checks the hash complies with the proof of work rule.
func IsHashSolved(hash string) bool {
	return strings.HasPrefix(hash, solvedPrefix)
}

// Mine performs a linear search over [0, MaxNonce) for the first nonce whose
// hash against the previous hash is solved. When no nonce in range qualifies
// the found value is false. The search stops early if the context is done.
func Mine(ctx context.Context, previousHash string) (nonce uint64, found bool, err error) {
	for nonce := uint64(0); nonce < searchLimit; nonce++ {
		if nonce%cancelCheck == 0 && ctx.Err() != nil {
			return 0, false, ctx.Err()
		}

		if IsHashSolved(Hash(previousHash, nonce)) {
			return nonce, true, nil
		}
	}

	return 0, false, nil
}
