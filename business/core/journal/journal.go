// Package journal is the core API for the ledger service. It binds a chain
// to the file it is persisted in and saves the chain after every block that
// is appended.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/business/sys/metrics"
	"github.com/ardanlabs/ledger/foundation/ledger"
)

// ErrNotFound is returned when a requested block doesn't exist.
var ErrNotFound = errors.New("block not found")

// Config represents the configuration required to open the journal.
type Config struct {
	Storage      ledger.Storage
	File         string
	VerifyOnOpen bool
	EvHandler    ledger.EventHandler
	Metrics      *metrics.Metrics
	Now          func() time.Time
}

// Journal manages the chain and its persisted file.
type Journal struct {
	file      string
	chain     *ledger.Chain
	evHandler ledger.EventHandler
	metrics   *metrics.Metrics

	// mu serializes appends so the file is written in block order.
	mu sync.Mutex
}

// Open constructs the chain and loads the configured file into it. A file
// that doesn't exist yet starts an empty chain.
func Open(cfg Config) (*Journal, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if cfg.File == "" {
		return nil, errors.New("chain file is required")
	}

	chain, err := ledger.New(ledger.Config{
		Storage:   cfg.Storage,
		EvHandler: ev,
		Now:       cfg.Now,
	})
	if err != nil {
		return nil, err
	}

	switch err := chain.Load(cfg.File); {
	case errors.Is(err, fs.ErrNotExist):
		ev("journal: Open: file[%s]: not found, starting empty chain", cfg.File)

	case err != nil:
		return nil, fmt.Errorf("loading chain: %w", err)
	}

	if cfg.VerifyOnOpen {
		if err := chain.Verify(); err != nil {
			return nil, fmt.Errorf("verifying chain: %w", err)
		}
	}

	j := Journal{
		file:      cfg.File,
		chain:     chain,
		evHandler: ev,
		metrics:   cfg.Metrics,
	}

	return &j, nil
}

// File returns the name of the file the chain is saved to.
func (j *Journal) File() string {
	return j.file
}

// =============================================================================

// Push attempts to append a block using the caller's nonce. A rejected nonce
// is not an error; false is returned and nothing is written.
func (j *Journal) Push(message string, userData string, nonce uint64) (ledger.Block, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	accepted := j.chain.TryPush(message, userData, nonce)
	j.metrics.Push(accepted)

	if !accepted {
		return ledger.Block{}, false, nil
	}

	return j.commit()
}

// Mine searches for a nonce and appends a block with it. False is returned
// when the search range is exhausted.
func (j *Journal) Mine(ctx context.Context, message string, userData string) (ledger.Block, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	mined, err := j.chain.MineAndPush(ctx, message, userData)
	switch {
	case err != nil:
		j.metrics.Mine(metrics.MineCancelled)
		return ledger.Block{}, false, fmt.Errorf("mining block: %w", err)

	case !mined:
		j.metrics.Mine(metrics.MineExhausted)
		return ledger.Block{}, false, nil
	}

	j.metrics.Mine(metrics.MineSolved)
	j.metrics.Push(true)

	return j.commit()
}

// commit saves the chain after a successful append and returns the new tip.
// When the save fails the new tip is rolled back so the chain and the file
// stay in step. The caller must hold the lock.
func (j *Journal) commit() (ledger.Block, bool, error) {
	tip, _ := j.chain.Tip()

	if err := j.chain.SaveAs(j.file); err != nil {
		j.chain.Rollback(tip.Hash)
		j.evHandler("journal: commit: blk[%d]: rolled back: %s", tip.Index, err)
		return ledger.Block{}, false, fmt.Errorf("saving chain: %w", err)
	}

	j.evHandler("journal: commit: blk[%d]: hash[%s]: file[%s]", tip.Index, tip.Hash, j.file)

	return tip, true, nil
}

// SaveAs writes a copy of the chain to the destination.
func (j *Journal) SaveAs(destination string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.chain.SaveAs(destination)
}

// Reload replaces the chain with the content of the journal's file. The
// current chain is kept if the file can't be loaded.
func (j *Journal) Reload() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.chain.Load(j.file)
}

// Verify runs the integrity checks over the chain.
func (j *Journal) Verify() error {
	return j.chain.Verify()
}

// =============================================================================

// Genesis returns the first block in the chain.
func (j *Journal) Genesis() (ledger.Block, error) {
	blk, exists := j.chain.Genesis()
	if !exists {
		return ledger.Block{}, ErrNotFound
	}

	return blk, nil
}

// Tip returns the last block in the chain.
func (j *Journal) Tip() (ledger.Block, error) {
	blk, exists := j.chain.Tip()
	if !exists {
		return ledger.Block{}, ErrNotFound
	}

	return blk, nil
}

// Block returns the block at the specified index.
func (j *Journal) Block(index uint64) (ledger.Block, error) {
	blk, exists := j.chain.Block(index)
	if !exists {
		return ledger.Block{}, ErrNotFound
	}

	return blk, nil
}

// Blocks returns every block in the chain.
func (j *Journal) Blocks() []ledger.Block {
	return j.chain.Blocks()
}

// Len returns the number of blocks in the chain.
func (j *Journal) Len() int {
	return j.chain.Len()
}
