package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// Known solutions for the first blocks mined from an empty chain.
const (
	genesisNonce = 886
	genesisHash  = "000f21ac06aceb9cdd0575e82d0d85fc39bed0a7a1d71970ba1641666a44f530"
	secondNonce  = 703
	secondHash   = "000a6e128390f93847175efe0dd77ec1f0d7a0d84892c5ae5a6f23aa429b88f3"
)

// =============================================================================

func Test_Hash(t *testing.T) {
	type table struct {
		name         string
		previousHash string
		nonce        uint64
		hash         string
		solved       bool
	}

	tt := []table{
		{
			name:         "zero",
			previousHash: "",
			nonce:        0,
			hash:         "5feceb66ffc86f38d952786c6d696c79c2dbc239dd4e91b46729d73a27fb57e9",
			solved:       false,
		},
		{
			name:         "one",
			previousHash: "",
			nonce:        1,
			hash:         "6b86b273ff34fce19d6b804eff5a3f5747ada4eaa22f1d49c01e52ddb7875b4b",
			solved:       false,
		},
		{
			name:         "genesis",
			previousHash: "",
			nonce:        genesisNonce,
			hash:         genesisHash,
			solved:       true,
		},
		{
			name:         "second",
			previousHash: genesisHash,
			nonce:        secondNonce,
			hash:         secondHash,
			solved:       true,
		},
	}

	t.Log("Given the need to hash a previous hash with a nonce.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling nonce %d.", testID, tst.nonce)
			{
				f := func(t *testing.T) {
					hash := ledger.Hash(tst.previousHash, tst.nonce)
					if hash != tst.hash {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, hash)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.hash)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected hash.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected hash.", success, testID)

					if solved := ledger.IsHashSolved(hash); solved != tst.solved {
						t.Fatalf("\t%s\tTest %d:\tShould have solved %v, got %v.", failed, testID, tst.solved, solved)
					}
					t.Logf("\t%s\tTest %d:\tShould have solved %v.", success, testID, tst.solved)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_IsHashSolved(t *testing.T) {
	tt := map[string]bool{
		"000":   true,
		"000f":  true,
		"0000":  true,
		"00f0":  false,
		"00":    false,
		"":      false,
		"f000":  false,
		" 000f": false,
	}

	t.Log("Given the need to apply the acceptance rule to a hash.")
	{
		for hash, exp := range tt {
			if got := ledger.IsHashSolved(hash); got != exp {
				t.Errorf("\t%s\tShould report %v for %q, got %v.", failed, exp, hash, got)
				continue
			}
			t.Logf("\t%s\tShould report %v for %q.", success, exp, hash)
		}
	}
}

func Test_Mine(t *testing.T) {
	t.Log("Given the need to search for a nonce.")
	{
		t.Logf("\tTest 0:\tWhen mining against an empty previous hash.")
		{
			nonce, found, err := ledger.Mine(context.Background(), "")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine: %v", failed, err)
			}
			if !found || nonce != genesisNonce {
				t.Fatalf("\t%s\tTest 0:\tShould find nonce %d, got %d/%v.", failed, genesisNonce, nonce, found)
			}
			t.Logf("\t%s\tTest 0:\tShould find nonce %d.", success, genesisNonce)
		}

		t.Logf("\tTest 1:\tWhen mining against the genesis hash.")
		{
			nonce, found, err := ledger.Mine(context.Background(), genesisHash)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mine: %v", failed, err)
			}
			if !found || nonce != secondNonce {
				t.Fatalf("\t%s\tTest 1:\tShould find nonce %d, got %d/%v.", failed, secondNonce, nonce, found)
			}
			t.Logf("\t%s\tTest 1:\tShould find nonce %d.", success, secondNonce)
		}

		t.Logf("\tTest 2:\tWhen the context is already cancelled.")
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, found, err := ledger.Mine(ctx, "")
			if !errors.Is(err, context.Canceled) || found {
				t.Fatalf("\t%s\tTest 2:\tShould stop with context.Canceled, got %v/%v.", failed, err, found)
			}
			t.Logf("\t%s\tTest 2:\tShould stop with context.Canceled.", success)
		}
	}
}

func Test_MinedMessage(t *testing.T) {
	t.Log("Given the need to decorate and strip mined messages.")
	{
		msg := ledger.MinedMessage("hello", genesisNonce)
		if msg != "hello ([demo] mined nounce: 886)" {
			t.Fatalf("\t%s\tShould decorate the message, got %q.", failed, msg)
		}
		t.Logf("\t%s\tShould decorate the message.", success)

		text, nonce, ok := ledger.SplitMinedMessage(msg)
		if !ok || text != "hello" || nonce != genesisNonce {
			t.Fatalf("\t%s\tShould split the message, got %q/%d/%v.", failed, text, nonce, ok)
		}
		t.Logf("\t%s\tShould split the message.", success)

		if _, _, ok := ledger.SplitMinedMessage("hello"); ok {
			t.Fatalf("\t%s\tShould not split a plain message.", failed)
		}
		t.Logf("\t%s\tShould not split a plain message.", success)
	}
}
