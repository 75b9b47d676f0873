// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgMemPool implements the Message interface and is used to request the
// hashes of all transactions a peer currently has in its mempool. It
// carries no payload; this client never sends one, but accepts it framed.
type MsgMemPool struct{}

// BtcDecode decodes r into the receiver. There is nothing to decode.
func (m *MsgMemPool) BtcDecode(r io.Reader, pver uint32) error {
	return nil
}

// BtcEncode encodes the receiver to w. There is nothing to encode.
func (m *MsgMemPool) BtcEncode(w io.Writer, pver uint32) error {
	return nil
}

// Command returns the protocol command string for the message.
func (m *MsgMemPool) Command() string {
	return CmdMemPool
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgMemPool) MaxPayloadLength(pver uint32) uint32 {
	return 0
}
