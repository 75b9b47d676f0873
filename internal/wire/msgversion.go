// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MsgVersion implements the Message interface and represents the initial
// handshake message exchanged by both sides of a connection.
type MsgVersion struct {
	ProtocolVersion int32
	Services        ServiceFlag
	Timestamp       int64
	AddrYou         VersionNetAddr
	AddrMe          VersionNetAddr
	Nonce           uint64
	UserAgent       string
	LastBlock       int32
}

// BtcDecode decodes r into the receiver using the version protocol
// encoding.
func (m *MsgVersion) BtcDecode(r io.Reader, pver uint32) error {
	const op = "MsgVersion.BtcDecode"

	var pv uint32
	if err := readUint32LE(r, &pv); err != nil {
		return err
	}
	m.ProtocolVersion = int32(pv)

	if err := readUint64LE(r, (*uint64)(&m.Services)); err != nil {
		return err
	}

	var ts uint64
	if err := readUint64LE(r, &ts); err != nil {
		return err
	}
	m.Timestamp = int64(ts)

	if err := readVersionNetAddr(r, &m.AddrYou); err != nil {
		return err
	}
	if err := readVersionNetAddr(r, &m.AddrMe); err != nil {
		return err
	}
	if err := readUint64LE(r, &m.Nonce); err != nil {
		return err
	}

	ua, err := ReadVarString(r, MaxUserAgentLen)
	if err != nil {
		return err
	}
	if len(ua) > MaxUserAgentLen {
		return messageError(op, ErrUserAgentTooLong,
			fmt.Sprintf("user agent too long [len %d, max %d]", len(ua), MaxUserAgentLen))
	}
	m.UserAgent = ua

	var lb uint32
	if err := readUint32LE(r, &lb); err != nil {
		return err
	}
	m.LastBlock = int32(lb)

	return nil
}

// BtcEncode encodes the receiver to w using the version protocol encoding.
func (m *MsgVersion) BtcEncode(w io.Writer, pver uint32) error {
	if err := writeUint32LE(w, uint32(m.ProtocolVersion)); err != nil {
		return err
	}
	if err := writeUint64LE(w, uint64(m.Services)); err != nil {
		return err
	}
	if err := writeUint64LE(w, uint64(m.Timestamp)); err != nil {
		return err
	}
	if err := writeVersionNetAddr(w, &m.AddrYou); err != nil {
		return err
	}
	if err := writeVersionNetAddr(w, &m.AddrMe); err != nil {
		return err
	}
	if err := writeUint64LE(w, m.Nonce); err != nil {
		return err
	}
	if err := WriteVarString(w, m.UserAgent); err != nil {
		return err
	}
	return writeUint32LE(w, uint32(m.LastBlock))
}

// Command returns the protocol command string for the message.
func (m *MsgVersion) Command() string {
	return CmdVersion
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgVersion) MaxPayloadLength(pver uint32) uint32 {
	// 4 + 8 + 8 + 26 + 26 + 8 + (varint + MaxUserAgentLen) + 4
	return 4 + 8 + 8 + 26 + 26 + 8 + uint32(VarIntSerializeSize(MaxUserAgentLen)) + MaxUserAgentLen + 4
}
