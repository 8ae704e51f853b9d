// Package disk implements the ability to read and write chain files on disk.
package disk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Disk represents the storage implementation for reading and writing chain
// files under a root directory. This implements the ledger.Storage interface.
type Disk struct {
	root string
}

// New constructs a Disk value for use, creating the root directory when it
// doesn't exist.
func New(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}

	return &Disk{root: root}, nil
}

// Root returns the directory relative names are resolved against.
func (d *Disk) Root() string {
	return d.root
}

// Read returns the full content of the named file.
func (d *Disk) Read(name string) ([]byte, error) {
	return os.ReadFile(d.path(name))
}

// Write replaces the content of the named file. The data is written to a
// temporary file in the same directory and renamed into place, so readers see
// either the old or the new content.
func (d *Disk) Write(name string, data []byte) error {
	path := d.path(name)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := writeSync(f, data); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Chmod(tmp, 0600); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}

// path resolves the name against the root. Absolute names are used as is.
func (d *Disk) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(d.root, name)
}

// writeSync writes the data, flushes it to stable storage and closes the file.
func writeSync(f *os.File, data []byte) error {
	_, err := f.Write(data)
	if err == nil {
		err = f.Sync()
	}

	return errors.Join(err, f.Close())
}
