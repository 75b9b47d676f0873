// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MsgInv implements the Message interface and is used to advertise items a
// peer has available, identified by type and hash.
type MsgInv struct {
	InvList []*InvVect
}

// AddInvVect adds an inventory vector to the message.
func (m *MsgInv) AddInvVect(iv *InvVect) error {
	if len(m.InvList)+1 > MaxInvPerMsg {
		return messageError("MsgInv.AddInvVect", ErrTooManyVectors,
			fmt.Sprintf("too many inv vectors in message [max %d]", MaxInvPerMsg))
	}
	m.InvList = append(m.InvList, iv)
	return nil
}

// BtcDecode decodes r into the receiver.
func (m *MsgInv) BtcDecode(r io.Reader, pver uint32) error {
	const op = "MsgInv.BtcDecode"

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxInvPerMsg {
		return messageError(op, ErrTooManyVectors,
			fmt.Sprintf("too many inv vectors for message [count %d, max %d]", count, MaxInvPerMsg))
	}

	invList := make([]InvVect, count)
	m.InvList = make([]*InvVect, 0, count)
	for i := uint64(0); i < count; i++ {
		iv := &invList[i]
		if err := readInvVect(r, iv); err != nil {
			return err
		}
		m.InvList = append(m.InvList, iv)
	}
	return nil
}

// BtcEncode encodes the receiver to w.
func (m *MsgInv) BtcEncode(w io.Writer, pver uint32) error {
	count := len(m.InvList)
	if count > MaxInvPerMsg {
		return messageError("MsgInv.BtcEncode", ErrTooManyVectors,
			fmt.Sprintf("too many inv vectors for message [count %d, max %d]", count, MaxInvPerMsg))
	}

	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, iv := range m.InvList {
		if err := writeInvVect(w, iv); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.
func (m *MsgInv) Command() string {
	return CmdInv
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgInv) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(MaxInvPerMsg)) + MaxInvPerMsg*36
}
