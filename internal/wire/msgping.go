// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgPing implements the Message interface and is used to confirm a peer
// connection is still alive, carrying a nonce the peer must echo back in a
// pong.
type MsgPing struct {
	Nonce uint64
}

// BtcDecode decodes r into the receiver.
func (m *MsgPing) BtcDecode(r io.Reader, pver uint32) error {
	return readUint64LE(r, &m.Nonce)
}

// BtcEncode encodes the receiver to w.
func (m *MsgPing) BtcEncode(w io.Writer, pver uint32) error {
	return writeUint64LE(w, m.Nonce)
}

// Command returns the protocol command string for the message.
func (m *MsgPing) Command() string {
	return CmdPing
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgPing) MaxPayloadLength(pver uint32) uint32 {
	return 8
}
