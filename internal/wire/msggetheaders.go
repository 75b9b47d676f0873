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

// MsgGetHeaders implements the Message interface and is used to request a
// batch of block headers starting after the first hash in BlockLocatorHashes
// known to the receiver, up to HashStop (or MaxHeadersPerMsg headers, if
// HashStop is the zero hash).
type MsgGetHeaders struct {
	ProtocolVersion    uint32
	BlockLocatorHashes []*chainhash.Hash
	HashStop           chainhash.Hash
}

// AddBlockLocatorHash adds a new block locator hash to the message.
func (m *MsgGetHeaders) AddBlockLocatorHash(hash *chainhash.Hash) error {
	if len(m.BlockLocatorHashes)+1 > MaxBlockLocatorsPerMsg {
		return messageError("MsgGetHeaders.AddBlockLocatorHash", ErrTooManyLocators,
			fmt.Sprintf("too many block locator hashes for message [max %d]", MaxBlockLocatorsPerMsg))
	}
	m.BlockLocatorHashes = append(m.BlockLocatorHashes, hash)
	return nil
}

// BtcDecode decodes r into the receiver.
func (m *MsgGetHeaders) BtcDecode(r io.Reader, pver uint32) error {
	if err := readUint32LE(r, &m.ProtocolVersion); err != nil {
		return err
	}
	hashes, err := readLocatorHashes(r, "MsgGetHeaders.BtcDecode")
	if err != nil {
		return err
	}
	m.BlockLocatorHashes = hashes

	_, err = io.ReadFull(r, m.HashStop[:])
	return err
}

// BtcEncode encodes the receiver to w.
func (m *MsgGetHeaders) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeUint32LE(w, m.ProtocolVersion); err != nil {
		return err
	}
	if err := writeLocatorHashes(w, m.BlockLocatorHashes, "MsgGetHeaders.BtcEncode"); err != nil {
		return err
	}
	_, err := w.Write(m.HashStop[:])
	return err
}

// Command returns the protocol command string for the message.
func (m *MsgGetHeaders) Command() string {
	return CmdGetHeaders
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgGetHeaders) MaxPayloadLength(pver uint32) uint32 {
	return 4 + uint32(VarIntSerializeSize(MaxBlockLocatorsPerMsg)) +
		MaxBlockLocatorsPerMsg*chainhash.HashSize + chainhash.HashSize
}

// readLocatorHashes reads a varint count followed by that many raw hashes,
// shared by getheaders and getblocks.
func readLocatorHashes(r io.Reader, op string) ([]*chainhash.Hash, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > MaxBlockLocatorsPerMsg {
		return nil, messageError(op, ErrTooManyLocators,
			fmt.Sprintf("too many block locator hashes for message [count %d, max %d]", count, MaxBlockLocatorsPerMsg))
	}

	hashes := make([]chainhash.Hash, count)
	out := make([]*chainhash.Hash, 0, count)
	for i := uint64(0); i < count; i++ {
		h := &hashes[i]
		if _, err := io.ReadFull(r, h[:]); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// writeLocatorHashes writes a varint count followed by the raw hashes,
// shared by getheaders and getblocks.
func writeLocatorHashes(w io.Writer, hashes []*chainhash.Hash, op string) error {
	count := len(hashes)
	if count > MaxBlockLocatorsPerMsg {
		return messageError(op, ErrTooManyLocators,
			fmt.Sprintf("too many block locator hashes for message [count %d, max %d]", count, MaxBlockLocatorsPerMsg))
	}
	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, h := range hashes {
		if _, err := w.Write(h[:]); err != nil {
			return err
		}
	}
	return nil
}
