package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Set of error variables for loading and saving the chain.
var (
	ErrIO    = errors.New("ledger io failure")
	ErrParse = errors.New("ledger parse failure")
)

// EventHandler defines a function that is called when events occur in the
// processing of the chain.
type EventHandler func(v string, args ...any)

// Storage represents the raw byte level access the chain needs to load and
// save its content. The chain never interprets the names it is given.
type Storage interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// Config represents the configuration required to construct a chain.
type Config struct {
	Storage   Storage
	EvHandler EventHandler
	Now       func() time.Time
}

// Chain manages an ordered, append only sequence of blocks.
type Chain struct {
	storage   Storage
	evHandler EventHandler
	now       func() time.Time

	mu     sync.RWMutex
	blocks []Block
}

// New constructs an empty chain.
func New(cfg Config) (*Chain, error) {
	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	chain := Chain{
		storage:   cfg.Storage,
		evHandler: ev,
		now:       now,
	}

	return &chain, nil
}

// =============================================================================

// document represents what is written to storage.
type document struct {
	Chain *[]Block `json:"chain"`
}

// Load reads the chain stored under source and replaces the in memory blocks
// with it. The current blocks are left untouched if anything fails. No
// integrity checks are performed, see Verify.
func (c *Chain) Load(source string) error {
	data, err := c.storage.Read(source)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrIO, source, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrParse, source, err)
	}

	if doc.Chain == nil {
		return fmt.Errorf("%w: decode %s: missing chain key", ErrParse, source)
	}

	blocks := *doc.Chain

	c.mu.Lock()
	c.blocks = blocks
	c.mu.Unlock()

	c.evHandler("ledger: Load: source[%s]: blocks[%d]", source, len(blocks))

	return nil
}

// SaveAs writes the current blocks to destination, replacing whatever is
// stored there.
func (c *Chain) SaveAs(destination string) error {
	blocks := c.Blocks()

	// Marshal the chain in a more human readable format.
	data, err := json.MarshalIndent(document{Chain: &blocks}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrIO, destination, err)
	}

	if err := c.storage.Write(destination, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, destination, err)
	}

	c.evHandler("ledger: SaveAs: destination[%s]: blocks[%d]", destination, len(blocks))

	return nil
}

// =============================================================================

// Genesis returns the first block in the chain. False is returned when the
// chain is empty.
func (c *Chain) Genesis() (Block, bool) {
	return c.Block(0)
}

// Tip returns the last block in the chain. False is returned when the chain
// is empty.
func (c *Chain) Tip() (Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.blocks) == 0 {
		return Block{}, false
	}

	return c.blocks[len(c.blocks)-1], true
}

// Block returns the block at the specified index.
func (c *Chain) Block(index uint64) (Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if index >= uint64(len(c.blocks)) {
		return Block{}, false
	}

	return c.blocks[index], true
}

// Blocks returns a copy of every block in the chain.
func (c *Chain) Blocks() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)

	return blocks
}

// Len returns the number of blocks in the chain.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.blocks)
}

// =============================================================================

// TryPush appends a new block when the hash of the tip's hash and the nonce
// is solved. A rejected nonce leaves the chain untouched and returns false.
func (c *Chain) TryPush(message string, userData string, nonce uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tryPush(message, userData, nonce)
}

// MineAndPush searches for a nonce that solves the proof of work against the
// current tip and pushes a block with it. False is returned when no nonce
// below MaxNonce qualifies. An error is only returned when the context is
// done before the search completes.
func (c *Chain) MineAndPush(ctx context.Context, message string, userData string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	previousHash := c.tipHash()

	c.evHandler("ledger: MineAndPush: MINING: started: blk[%d]: prevBlk[%s]", len(c.blocks), previousHash)

	nonce, found, err := Mine(ctx, previousHash)
	if err != nil {
		c.evHandler("ledger: MineAndPush: MINING: CANCELLED: %s", err)
		return false, err
	}

	if !found {
		c.evHandler("ledger: MineAndPush: MINING: EXHAUSTED: attempts[%d]", searchLimit)
		return false, nil
	}

	c.evHandler("ledger: MineAndPush: MINING: SOLVED: nonce[%d]: attempts[%d]", nonce, nonce+1)

	return c.tryPush(MinedMessage(message, nonce), userData, nonce), nil
}

// Rollback removes the tip when its hash matches the one provided. It lets
// an owner that persists the chain undo an append it could not save. False
// is returned when the tip is a different block.
func (c *Chain) Rollback(hash string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.blocks)
	if n == 0 || c.blocks[n-1].Hash != hash {
		return false
	}

	c.blocks = c.blocks[:n-1]

	c.evHandler("ledger: Rollback: blk[%d]: hash[%s]", n-1, hash)

	return true
}

// tryPush performs the admission check. The caller must hold the write lock.
func (c *Chain) tryPush(message string, userData string, nonce uint64) bool {
	index := uint64(len(c.blocks))
	previousHash := c.tipHash()

	hash := Hash(previousHash, nonce)
	if !IsHashSolved(hash) {
		c.evHandler("ledger: TryPush: REJECTED: blk[%d]: nonce[%d]: hash[%s]", index, nonce, hash)
		return false
	}

	block := NewBlock(index, previousHash, c.now().UnixMilli(), message, userData, hash)
	c.blocks = append(c.blocks, block)

	c.evHandler("ledger: TryPush: ACCEPTED: blk[%d]: nonce[%d]: hash[%s]", index, nonce, hash)

	return true
}

// tipHash returns the hash of the tip or an empty string for an empty chain.
// The caller must hold a lock.
func (c *Chain) tipHash() string {
	if len(c.blocks) == 0 {
		return ""
	}

	return c.blocks[len(c.blocks)-1].Hash
}
