// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MsgHeaders implements the Message interface and is used to deliver block
// headers in response to a getheaders message. Each header is followed on
// the wire by a transaction count, which is always zero here since this is
// a headers-only protocol.
type MsgHeaders struct {
	Headers []*BlockHeader
}

// AddBlockHeader adds a new block header to the message.
func (m *MsgHeaders) AddBlockHeader(bh *BlockHeader) error {
	if len(m.Headers)+1 > MaxHeadersPerMsg {
		return messageError("MsgHeaders.AddBlockHeader", ErrTooManyHeaders,
			fmt.Sprintf("too many headers in message [max %d]", MaxHeadersPerMsg))
	}
	m.Headers = append(m.Headers, bh)
	return nil
}

// BtcDecode decodes r into the receiver.
func (m *MsgHeaders) BtcDecode(r io.Reader, pver uint32) error {
	const op = "MsgHeaders.BtcDecode"

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxHeadersPerMsg {
		return messageError(op, ErrTooManyHeaders,
			fmt.Sprintf("too many headers for message [count %d, max %d]", count, MaxHeadersPerMsg))
	}

	m.Headers = make([]*BlockHeader, 0, count)
	for i := uint64(0); i < count; i++ {
		bh, err := readBlockHeader(r)
		if err != nil {
			return err
		}
		m.Headers = append(m.Headers, bh)
	}
	return nil
}

// BtcEncode encodes the receiver to w.
func (m *MsgHeaders) BtcEncode(w io.Writer, pver uint32) error {
	count := len(m.Headers)
	if count > MaxHeadersPerMsg {
		return messageError("MsgHeaders.BtcEncode", ErrTooManyHeaders,
			fmt.Sprintf("too many headers for message [count %d, max %d]", count, MaxHeadersPerMsg))
	}

	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, bh := range m.Headers {
		if err := writeBlockHeader(w, bh); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.
func (m *MsgHeaders) Command() string {
	return CmdHeaders
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgHeaders) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(MaxHeadersPerMsg)) + MaxHeadersPerMsg*(BlockHeaderSize+1)
}
