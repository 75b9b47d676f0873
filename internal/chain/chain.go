// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain maintains the header forest a simplified payment
// verification client builds as it syncs: every header reachable from
// genesis, indexed by hash, with a notion of the single best (longest)
// chain observed so far.
package chain

import (
	"fmt"
	"time"

	"github.com/chainwatch/spvsync/internal/chaincfg"
	"github.com/chainwatch/spvsync/internal/chainhash"
	"github.com/chainwatch/spvsync/internal/tipstore"
	"github.com/chainwatch/spvsync/internal/wire"
)

// entry is one node in the header forest: a header plus its derived
// position in the chain.
type entry struct {
	header wire.BlockHeader
	hash   chainhash.Hash
	height int32
}

// Chain is the in-memory header forest rooted at a network's genesis
// block.  It is not safe for concurrent use; callers (the client event
// loop) are expected to serialize access.
type Chain struct {
	params  *chaincfg.Params
	nodes   map[chainhash.Hash]*entry
	tip     *entry
	genesis *entry
	store   *tipstore.Store
}

// New returns a Chain rooted at params' genesis header. The store is kept
// for SaveTip/LoadTip but is not read here: the header forest always starts
// from genesis, and the client must re-request headers from its peers to
// rebuild the chain up to any previously persisted tip.
func New(params *chaincfg.Params, store *tipstore.Store) *Chain {
	genesisHash := params.GenesisHash()
	genesis := &entry{
		header: params.GenesisHeader,
		hash:   genesisHash,
		height: 0,
	}

	c := &Chain{
		params:  params,
		nodes:   map[chainhash.Hash]*entry{genesisHash: genesis},
		tip:     genesis,
		genesis: genesis,
		store:   store,
	}
	return c
}

// HasBlock reports whether hash is already present in the header forest.
func (c *Chain) HasBlock(hash chainhash.Hash) bool {
	_, ok := c.nodes[hash]
	return ok
}

// TipHash returns the hash of the current best header.
func (c *Chain) TipHash() chainhash.Hash {
	return c.tip.hash
}

// TipHeight returns the height of the current best header; genesis is
// height 0.
func (c *Chain) TipHeight() int32 {
	return c.tip.height
}

// TipTimestamp returns the timestamp embedded in the current best header.
func (c *Chain) TipTimestamp() time.Time {
	return time.Unix(int64(c.tip.header.Timestamp), 0)
}

// TipIsRecent reports whether the tip's timestamp is within maxAge of now,
// the signal a client uses to decide header sync has caught up.
func (c *Chain) TipIsRecent(now time.Time, maxAge time.Duration) bool {
	return now.Sub(c.TipTimestamp()) <= maxAge
}

// PutBlockHeader validates that header connects to an already-known parent
// and, if so, adds it to the forest. It returns the header's derived
// height. Headers that duplicate an already-known block are accepted
// idempotently and return that block's existing height.
func (c *Chain) PutBlockHeader(header wire.BlockHeader) (int32, error) {
	hash := header.BlockHash()
	if existing, ok := c.nodes[hash]; ok {
		return existing.height, nil
	}

	parent, ok := c.nodes[header.PrevBlock]
	if !ok {
		return 0, fmt.Errorf("chain: header %s does not connect to a known parent %s",
			hash, header.PrevBlock)
	}

	node := &entry{
		header: header,
		hash:   hash,
		height: parent.height + 1,
	}
	c.nodes[hash] = node

	if node.height > c.tip.height {
		c.tip = node
	}
	return node.height, nil
}

// Locator returns a block locator for the current tip: the hashes of the
// tip and its 10 most recent predecessors, then exponentially sparser
// hashes further back,
// always ending at genesis. This lets a peer identify the fork point
// regardless of how far the two chains have diverged using a small,
// bounded number of round trips.
func (c *Chain) Locator() []*chainhash.Hash {
	var hashes []*chainhash.Hash

	step := int32(1)
	node := c.tip
	for node != nil {
		h := node.hash
		hashes = append(hashes, &h)

		if node.hash == c.genesis.hash {
			break
		}

		if len(hashes) > 10 {
			step *= 2
		}

		targetHeight := node.height - step
		node = c.ancestorAtOrBefore(node, targetHeight)
	}

	return hashes
}

// ancestorAtOrBefore walks backward from node (which must be on the best
// chain) to the ancestor at targetHeight, or genesis if targetHeight is
// below it. Because nodes only record their own header and not parent
// pointers beyond PrevBlock, the walk proceeds one hash at a time.
func (c *Chain) ancestorAtOrBefore(node *entry, targetHeight int32) *entry {
	if targetHeight <= c.genesis.height {
		return c.genesis
	}
	for node.height > targetHeight {
		parent, ok := c.nodes[node.header.PrevBlock]
		if !ok {
			return c.genesis
		}
		node = parent
	}
	return node
}

// SaveTip persists the current tip so a later run can report where sync
// left off.
func (c *Chain) SaveTip() error {
	if c.store == nil {
		return nil
	}
	return c.store.Save(tipstore.Tip{Hash: c.tip.hash, Height: c.tip.height})
}

// LoadTip reports the previously persisted tip, if any. It does not modify
// the in-memory forest: the caller is responsible for re-syncing headers
// up to the reported height.
func (c *Chain) LoadTip() (tipstore.Tip, bool, error) {
	if c.store == nil {
		return tipstore.Tip{}, false, nil
	}
	return c.store.Load()
}
