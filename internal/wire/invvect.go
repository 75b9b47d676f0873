// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/chainwatch/spvsync/internal/chainhash"
)

// InvType identifies the type of item an InvVect refers to.
type InvType uint32

const (
	// InvTypeTx identifies a transaction.
	InvTypeTx InvType = 1

	// InvTypeBlock identifies a block.
	InvTypeBlock InvType = 2

	// InvTypeFilteredBlock identifies a block delivered with a merkle
	// block / filtered transaction set.  Not used for header-only
	// syncing, but accepted on decode.
	InvTypeFilteredBlock InvType = 3
)

// String returns the InvType in human-readable form.
func (t InvType) String() string {
	switch t {
	case InvTypeTx:
		return "MSG_TX"
	case InvTypeBlock:
		return "MSG_BLOCK"
	case InvTypeFilteredBlock:
		return "MSG_FILTERED_BLOCK"
	default:
		return fmt.Sprintf("Unknown InvType (%d)", uint32(t))
	}
}

// InvVect identifies an advertised or requested network item: what kind of
// thing it is and its hash.
type InvVect struct {
	Type InvType
	Hash chainhash.Hash
}

// NewInvVect returns a new InvVect for the given type and hash.
func NewInvVect(typ InvType, hash *chainhash.Hash) *InvVect {
	return &InvVect{Type: typ, Hash: *hash}
}

func readInvVect(r io.Reader, iv *InvVect) error {
	var t uint32
	if err := readUint32LE(r, &t); err != nil {
		return err
	}
	iv.Type = InvType(t)
	_, err := io.ReadFull(r, iv.Hash[:])
	return err
}

func writeInvVect(w io.Writer, iv *InvVect) error {
	if err := writeUint32LE(w, uint32(iv.Type)); err != nil {
		return err
	}
	_, err := w.Write(iv.Hash[:])
	return err
}
