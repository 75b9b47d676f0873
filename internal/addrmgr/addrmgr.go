// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addrmgr tracks peer addresses the client has learned about, split
// into addresses learned from a successful handshake or from peers' addr
// gossip ("known") and addresses obtained only from DNS seeding ("seed"),
// and hands out
// candidates for new outbound connections uniformly at random, preferring
// known addresses whenever any are available.
package addrmgr

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/chainwatch/spvsync/internal/uniform"
	"github.com/chainwatch/spvsync/internal/wire"
)

// AddrManager is the address book consulted when the client needs a new
// peer to dial. It is safe for concurrent use.
type AddrManager struct {
	mu    sync.Mutex
	rand  io.Reader
	known map[string]*wire.NetAddr
	seed  map[string]*wire.NetAddr
	tried map[string]struct{}
}

// New returns an empty AddrManager.
func New() *AddrManager {
	return &AddrManager{
		rand:  rand.Reader,
		known: make(map[string]*wire.NetAddr),
		seed:  make(map[string]*wire.NetAddr),
		tried: make(map[string]struct{}),
	}
}

// AddKnown records na as a known address (one learned from a successful
// peer handshake or from addr gossip), promoting it out of the seed set if
// it was there.
func (m *AddrManager) AddKnown(na *wire.NetAddr) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := na.Addr.Key()
	delete(m.seed, key)
	m.known[key] = na
}

// AddSeed records na as an address obtained from DNS seeding. It has no
// effect if the address is already known.
func (m *AddrManager) AddSeed(na *wire.NetAddr) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := na.Addr.Key()
	if _, ok := m.known[key]; ok {
		return
	}
	m.seed[key] = na
}

// MarkAttempted records that a connection attempt to addr was made, so it
// is not immediately re-selected while other untried addresses remain.
func (m *AddrManager) MarkAttempted(addr wire.Addr) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tried[addr.Key()] = struct{}{}
}

// ErrNoAddresses is returned by Select when the address book has nothing
// to offer.
var ErrNoAddresses = fmt.Errorf("addrmgr: no candidate addresses available")

// Select returns a uniformly random candidate address, preferring the
// known set over the seed set whenever the known set is non-empty.
// Addresses already marked attempted are skipped as long as an untried
// alternative exists; once every candidate in the preferred set has been
// tried, Select falls back to choosing uniformly among all of them rather
// than returning no candidate.
func (m *AddrManager) Select() (*wire.NetAddr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if candidate := m.selectFrom(m.known); candidate != nil {
		return candidate, nil
	}
	if candidate := m.selectFrom(m.seed); candidate != nil {
		return candidate, nil
	}
	return nil, ErrNoAddresses
}

// selectFrom picks uniformly at random from set, preferring entries not yet
// marked attempted.
func (m *AddrManager) selectFrom(set map[string]*wire.NetAddr) *wire.NetAddr {
	if len(set) == 0 {
		return nil
	}

	untried := make([]*wire.NetAddr, 0, len(set))
	all := make([]*wire.NetAddr, 0, len(set))
	for key, na := range set {
		all = append(all, na)
		if _, tried := m.tried[key]; !tried {
			untried = append(untried, na)
		}
	}

	pool := untried
	if len(pool) == 0 {
		pool = all
	}

	idx := uniform.Uint32n(m.rand, uint32(len(pool)))
	return pool[idx]
}

// Len returns the total number of addresses known across both the known
// and seed sets.
func (m *AddrManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.known) + len(m.seed)
}
