// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgSendHeaders implements the Message interface and announces to a peer
// that block announcements should be sent as headers messages rather than
// inv messages. It carries no payload.
type MsgSendHeaders struct{}

// BtcDecode decodes r into the receiver. There is nothing to decode.
func (m *MsgSendHeaders) BtcDecode(r io.Reader, pver uint32) error {
	return nil
}

// BtcEncode encodes the receiver to w. There is nothing to encode.
func (m *MsgSendHeaders) BtcEncode(w io.Writer, pver uint32) error {
	return nil
}

// Command returns the protocol command string for the message.
func (m *MsgSendHeaders) Command() string {
	return CmdSendHeaders
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgSendHeaders) MaxPayloadLength(pver uint32) uint32 {
	return 0
}
