package journal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/business/core/journal"
	"github.com/ardanlabs/ledger/business/sys/metrics"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/storage/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	genesisNonce = 886
	genesisHash  = "000f21ac06aceb9cdd0575e82d0d85fc39bed0a7a1d71970ba1641666a44f530"
)

func open(t *testing.T, strg ledger.Storage, verify bool) (*journal.Journal, error) {
	return journal.Open(journal.Config{
		Storage:      strg,
		File:         "ledger.json",
		VerifyOnOpen: verify,
		Metrics:      metrics.New(),
		EvHandler: func(v string, args ...any) {
			t.Logf(v, args...)
		},
	})
}

func Test_Journal(t *testing.T) {
	t.Log("Given the need to keep the chain file in step with the chain.")
	{
		strg := memory.New()

		t.Logf("\tTest 0:\tWhen opening a journal without a file.")
		{
			j, err := open(t, strg, true)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open: %v", failed, err)
			}
			if j.Len() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould start with an empty chain.", failed)
			}
			if _, err := j.Genesis(); !errors.Is(err, journal.ErrNotFound) {
				t.Fatalf("\t%s\tTest 0:\tShould not find a genesis block, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould start with an empty chain.", success)

			if _, accepted, err := j.Push("hello", "secret", 0); accepted || err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject nonce 0 without error: %v", failed, err)
			}
			if _, err := strg.Read("ledger.json"); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould not write the file on rejection.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not write the file on rejection.", success)

			blk, accepted, err := j.Push("hello", "secret", genesisNonce)
			if err != nil || !accepted || blk.Hash != genesisHash {
				t.Fatalf("\t%s\tTest 0:\tShould accept nonce %d: %v", failed, genesisNonce, err)
			}
			t.Logf("\t%s\tTest 0:\tShould accept nonce %d.", success, genesisNonce)

			blk, mined, err := j.Mine(context.Background(), "world", "")
			if err != nil || !mined || blk.Index != 1 || blk.PreviousHash != genesisHash {
				t.Fatalf("\t%s\tTest 0:\tShould mine the second block, got %+v: %v", failed, blk, err)
			}
			t.Logf("\t%s\tTest 0:\tShould mine the second block.", success)
		}

		t.Logf("\tTest 1:\tWhen reopening the journal.")
		{
			j, err := open(t, strg, true)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to reopen: %v", failed, err)
			}
			if j.Len() != 2 {
				t.Fatalf("\t%s\tTest 1:\tShould load both blocks, got %d.", failed, j.Len())
			}
			t.Logf("\t%s\tTest 1:\tShould load both blocks.", success)

			if _, err := j.Block(2); !errors.Is(err, journal.ErrNotFound) {
				t.Fatalf("\t%s\tTest 1:\tShould not find block 2, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould not find block 2.", success)

			if err := j.SaveAs("copy.json"); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to save a copy: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to save a copy.", success)
		}

		t.Logf("\tTest 2:\tWhen the file was tampered with.")
		{
			strg.Write("ledger.json", []byte(`{"chain": [{"index": 0, "previous_hash": "", "hash": "abc"}]}`))

			if _, err := open(t, strg, true); !errors.Is(err, ledger.ErrIntegrity) {
				t.Fatalf("\t%s\tTest 2:\tShould refuse to open with verification, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould refuse to open with verification.", success)

			j, err := open(t, strg, false)
			if err != nil || j.Len() != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould open without verification: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould open without verification.", success)

			strg.Write("ledger.json", []byte(`not json`))
			if err := j.Reload(); !errors.Is(err, ledger.ErrParse) || j.Len() != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould keep the chain when a reload fails, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould keep the chain when a reload fails.", success)

			if _, err := open(t, strg, false); !errors.Is(err, ledger.ErrParse) {
				t.Fatalf("\t%s\tTest 2:\tShould fail to open unparsable content, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould fail to open unparsable content.", success)
		}
	}
}

// fullDisk reads like memory storage but refuses every write.
type fullDisk struct {
	*memory.Memory
}

func (fullDisk) Write(name string, data []byte) error {
	return errors.New("disk full")
}

func Test_CommitFailure(t *testing.T) {
	t.Log("Given the need to keep the chain unchanged when it can't be saved.")
	{
		j, err := open(t, fullDisk{memory.New()}, false)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to open: %v", failed, err)
		}

		t.Logf("\tTest 0:\tWhen pushing a solved block.")
		{
			_, accepted, err := j.Push("hello", "secret", genesisNonce)
			if accepted || !errors.Is(err, ledger.ErrIO) {
				t.Fatalf("\t%s\tTest 0:\tShould fail with ErrIO, got %v/%v.", failed, accepted, err)
			}
			if j.Len() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould not keep the block, got %d blocks.", failed, j.Len())
			}
			t.Logf("\t%s\tTest 0:\tShould fail without keeping the block.", success)
		}

		t.Logf("\tTest 1:\tWhen mining a block.")
		{
			_, mined, err := j.Mine(context.Background(), "hello", "secret")
			if mined || !errors.Is(err, ledger.ErrIO) {
				t.Fatalf("\t%s\tTest 1:\tShould fail with ErrIO, got %v/%v.", failed, mined, err)
			}
			if j.Len() != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould not keep the block, got %d blocks.", failed, j.Len())
			}
			t.Logf("\t%s\tTest 1:\tShould fail without keeping the block.", success)
		}
	}
}
