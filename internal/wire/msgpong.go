// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgPong implements the Message interface and is the reply to a ping,
// echoing back the nonce it carried.
type MsgPong struct {
	Nonce uint64
}

// BtcDecode decodes r into the receiver.
func (m *MsgPong) BtcDecode(r io.Reader, pver uint32) error {
	return readUint64LE(r, &m.Nonce)
}

// BtcEncode encodes the receiver to w.
func (m *MsgPong) BtcEncode(w io.Writer, pver uint32) error {
	return writeUint64LE(w, m.Nonce)
}

// Command returns the protocol command string for the message.
func (m *MsgPong) Command() string {
	return CmdPong
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgPong) MaxPayloadLength(pver uint32) uint32 {
	return 8
}
