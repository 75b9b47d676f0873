// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tipstore persists the hash and height of the best known header
// across restarts. Only the tip's identity is stored, not the header
// itself, and the chain package does not seed its header forest from it:
// after a restart header sync begins again at genesis.
package tipstore

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	"github.com/chainwatch/spvsync/internal/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
)

// tipKey is the sole key written to the database; there is never more than
// one tip to track.
var tipKey = []byte("tip")

// Store persists the chain tip in a small on-disk leveldb database.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) the tip database rooted at dataDir.
func Open(dataDir string) (*Store, error) {
	path := filepath.Join(dataDir, "tip.ldb")
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("tipstore: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tip is the persisted best-known header identity.
type Tip struct {
	Hash   chainhash.Hash
	Height int32
}

// Save durably records tip, replacing whatever was previously stored.
func (s *Store) Save(tip Tip) error {
	var buf [chainhash.HashSize + 4]byte
	copy(buf[:chainhash.HashSize], tip.Hash[:])
	binary.LittleEndian.PutUint32(buf[chainhash.HashSize:], uint32(tip.Height))
	return s.db.Put(tipKey, buf[:], nil)
}

// Load returns the previously saved tip, or ok=false if none has ever been
// saved.
func (s *Store) Load() (tip Tip, ok bool, err error) {
	raw, err := s.db.Get(tipKey, nil)
	if err == leveldb.ErrNotFound {
		return Tip{}, false, nil
	}
	if err != nil {
		return Tip{}, false, fmt.Errorf("tipstore: load: %w", err)
	}
	if len(raw) != chainhash.HashSize+4 {
		return Tip{}, false, fmt.Errorf("tipstore: corrupt tip record of length %d", len(raw))
	}

	copy(tip.Hash[:], raw[:chainhash.HashSize])
	tip.Height = int32(binary.LittleEndian.Uint32(raw[chainhash.HashSize:]))
	return tip, true, nil
}
