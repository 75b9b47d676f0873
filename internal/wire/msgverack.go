// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgVerAck implements the Message interface and represents the
// acknowledgement of a received version message.  It carries no payload.
type MsgVerAck struct{}

// BtcDecode decodes r into the receiver. There is nothing to decode.
func (m *MsgVerAck) BtcDecode(r io.Reader, pver uint32) error {
	return nil
}

// BtcEncode encodes the receiver to w. There is nothing to encode.
func (m *MsgVerAck) BtcEncode(w io.Writer, pver uint32) error {
	return nil
}

// Command returns the protocol command string for the message.
func (m *MsgVerAck) Command() string {
	return CmdVerAck
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgVerAck) MaxPayloadLength(pver uint32) uint32 {
	return 0
}
