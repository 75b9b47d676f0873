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

// RejectCode represents a numeric reason a peer rejected a message.
type RejectCode uint8

const (
	RejectMalformed   RejectCode = 0x01
	RejectInvalid     RejectCode = 0x10
	RejectObsolete    RejectCode = 0x11
	RejectDuplicate   RejectCode = 0x12
	RejectNonstandard RejectCode = 0x40
	RejectCheckpoint  RejectCode = 0x43
)

// String returns the RejectCode in human-readable form.
func (c RejectCode) String() string {
	switch c {
	case RejectMalformed:
		return "REJECT_MALFORMED"
	case RejectInvalid:
		return "REJECT_INVALID"
	case RejectObsolete:
		return "REJECT_OBSOLETE"
	case RejectDuplicate:
		return "REJECT_DUPLICATE"
	case RejectNonstandard:
		return "REJECT_NONSTANDARD"
	case RejectCheckpoint:
		return "REJECT_CHECKPOINT"
	default:
		return fmt.Sprintf("Unknown RejectCode (%d)", uint8(c))
	}
}

// MsgReject implements the Message interface and notifies the sender that a
// previously sent message was rejected, identifying which command and why.
// Hash is only meaningful when Cmd is CmdGetHeaders, CmdGetBlocks, or
// CmdGetData and is the zero hash otherwise.
type MsgReject struct {
	Cmd    string
	Code   RejectCode
	Reason string
	Hash   chainhash.Hash
}

// BtcDecode decodes r into the receiver.
func (m *MsgReject) BtcDecode(r io.Reader, pver uint32) error {
	cmd, err := ReadVarString(r, MaxUserAgentLen)
	if err != nil {
		return err
	}
	m.Cmd = cmd

	var code uint8
	if err := readUint8(r, &code); err != nil {
		return err
	}
	m.Code = RejectCode(code)

	reason, err := ReadVarString(r, MaxUserAgentLen)
	if err != nil {
		return err
	}
	m.Reason = reason

	switch m.Cmd {
	case CmdGetHeaders, CmdGetBlocks, CmdGetData:
		if _, err := io.ReadFull(r, m.Hash[:]); err != nil {
			return err
		}
	}
	return nil
}

// BtcEncode encodes the receiver to w.
func (m *MsgReject) BtcEncode(w io.Writer, pver uint32) error {
	if err := WriteVarString(w, m.Cmd); err != nil {
		return err
	}
	if err := writeUint8(w, uint8(m.Code)); err != nil {
		return err
	}
	if err := WriteVarString(w, m.Reason); err != nil {
		return err
	}

	switch m.Cmd {
	case CmdGetHeaders, CmdGetBlocks, CmdGetData:
		if _, err := w.Write(m.Hash[:]); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.
func (m *MsgReject) Command() string {
	return CmdReject
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgReject) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(MaxUserAgentLen)) + MaxUserAgentLen + 1 +
		uint32(VarIntSerializeSize(MaxUserAgentLen)) + MaxUserAgentLen + chainhash.HashSize
}
