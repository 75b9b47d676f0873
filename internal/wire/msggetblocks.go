// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/chainwatch/spvsync/internal/chainhash"
)

// MsgGetBlocks implements the Message interface and is used to request a
// batch of full blocks, identical in shape to MsgGetHeaders.
type MsgGetBlocks struct {
	ProtocolVersion    uint32
	BlockLocatorHashes []*chainhash.Hash
	HashStop           chainhash.Hash
}

// AddBlockLocatorHash adds a new block locator hash to the message.
func (m *MsgGetBlocks) AddBlockLocatorHash(hash *chainhash.Hash) error {
	if len(m.BlockLocatorHashes)+1 > MaxBlockLocatorsPerMsg {
		return messageError("MsgGetBlocks.AddBlockLocatorHash", ErrTooManyLocators,
			"too many block locator hashes for message")
	}
	m.BlockLocatorHashes = append(m.BlockLocatorHashes, hash)
	return nil
}

// BtcDecode decodes r into the receiver.
func (m *MsgGetBlocks) BtcDecode(r io.Reader, pver uint32) error {
	if err := readUint32LE(r, &m.ProtocolVersion); err != nil {
		return err
	}
	hashes, err := readLocatorHashes(r, "MsgGetBlocks.BtcDecode")
	if err != nil {
		return err
	}
	m.BlockLocatorHashes = hashes

	_, err = io.ReadFull(r, m.HashStop[:])
	return err
}

// BtcEncode encodes the receiver to w.
func (m *MsgGetBlocks) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeUint32LE(w, m.ProtocolVersion); err != nil {
		return err
	}
	if err := writeLocatorHashes(w, m.BlockLocatorHashes, "MsgGetBlocks.BtcEncode"); err != nil {
		return err
	}
	_, err := w.Write(m.HashStop[:])
	return err
}

// Command returns the protocol command string for the message.
func (m *MsgGetBlocks) Command() string {
	return CmdGetBlocks
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgGetBlocks) MaxPayloadLength(pver uint32) uint32 {
	return 4 + uint32(VarIntSerializeSize(MaxBlockLocatorsPerMsg)) +
		MaxBlockLocatorsPerMsg*chainhash.HashSize + chainhash.HashSize
}
