// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/chainwatch/spvsync/internal/chainhash"
)

// BlockHeaderSize is the number of bytes in the serialized, hashable form
// of a block header: 4 version + 32 prev hash + 32 merkle root + 4 time +
// 4 bits + 4 nonce.
const BlockHeaderSize = 80

// BlockHeader holds the fields of a block header in the order they appear
// on the wire.  Hash is derived, never transmitted.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// BlockHash returns the double sha256 hash of the serialized header, the
// value used to identify and chain blocks together.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	var buf [BlockHeaderSize]byte
	h.serialize(buf[:])
	return chainhash.HashH(buf[:])
}

func (h *BlockHeader) serialize(buf []byte) {
	littleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	littleEndian.PutUint32(buf[68:72], h.Timestamp)
	littleEndian.PutUint32(buf[72:76], h.Bits)
	littleEndian.PutUint32(buf[76:80], h.Nonce)
}

// BtcDecode reads a block header from r.
func (h *BlockHeader) BtcDecode(r io.Reader) error {
	var buf [BlockHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	h.Version = int32(littleEndian.Uint32(buf[0:4]))
	copy(h.PrevBlock[:], buf[4:36])
	copy(h.MerkleRoot[:], buf[36:68])
	h.Timestamp = littleEndian.Uint32(buf[68:72])
	h.Bits = littleEndian.Uint32(buf[72:76])
	h.Nonce = littleEndian.Uint32(buf[76:80])
	return nil
}

// BtcEncode writes a block header to w.
func (h *BlockHeader) BtcEncode(w io.Writer) error {
	var buf [BlockHeaderSize]byte
	h.serialize(buf[:])
	_, err := w.Write(buf[:])
	return err
}

// readBlockHeader reads a block header immediately followed by a
// transaction-count varint (always zero on the headers-only wire used
// here, but present for wire compatibility) and discards the count.
func readBlockHeader(r io.Reader) (*BlockHeader, error) {
	bh := new(BlockHeader)
	if err := bh.BtcDecode(r); err != nil {
		return nil, err
	}
	if _, err := ReadVarInt(r); err != nil {
		return nil, err
	}
	return bh, nil
}

// writeBlockHeader writes a block header followed by a zero transaction
// count, matching the wire form a headers message expects per entry.
func writeBlockHeader(w io.Writer, bh *BlockHeader) error {
	if err := bh.BtcEncode(w); err != nil {
		return err
	}
	return WriteVarInt(w, 0)
}
