package disk_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/storage/disk"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_ReadWrite(t *testing.T) {
	t.Log("Given the need to store chain files on disk.")
	{
		root := filepath.Join(t.TempDir(), "zblock")

		d, err := disk.New(root)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the storage: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the storage.", success)

		t.Logf("\tTest 0:\tWhen reading a file that doesn't exist.")
		{
			if _, err := d.Read("ledger.json"); !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("\t%s\tTest 0:\tShould get fs.ErrNotExist, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get fs.ErrNotExist.", success)
		}

		t.Logf("\tTest 1:\tWhen writing and overwriting a file.")
		{
			if err := d.Write("ledger.json", []byte("first version of the file")); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write: %v", failed, err)
			}
			if err := d.Write("ledger.json", []byte("second")); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to overwrite: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to write and overwrite.", success)

			data, err := d.Read("ledger.json")
			if err != nil || string(data) != "second" {
				t.Fatalf("\t%s\tTest 1:\tShould read the latest content, got %q: %v", failed, data, err)
			}
			t.Logf("\t%s\tTest 1:\tShould read the latest content.", success)

			entries, err := os.ReadDir(root)
			if err != nil || len(entries) != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould leave no temporary files behind, got %d entries.", failed, len(entries))
			}
			t.Logf("\t%s\tTest 1:\tShould leave no temporary files behind.", success)
		}

		t.Logf("\tTest 2:\tWhen using an absolute name.")
		{
			abs := filepath.Join(t.TempDir(), "nested", "copy.json")
			if err := d.Write(abs, []byte("copy")); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to write: %v", failed, err)
			}

			data, err := os.ReadFile(abs)
			if err != nil || string(data) != "copy" {
				t.Fatalf("\t%s\tTest 2:\tShould write outside the root, got %q: %v", failed, data, err)
			}
			t.Logf("\t%s\tTest 2:\tShould write outside the root.", success)
		}
	}
}
