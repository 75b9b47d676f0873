// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MsgGetData implements the Message interface and is used to request
// specific items (blocks, transactions) previously advertised in an inv
// message. It also serves as the notfound reply shape: the same list of
// inventory vectors, tagged with a different command string.
type MsgGetData struct {
	command string
	InvList []*InvVect
}

// NewMsgGetData returns a new, empty getdata message.
func NewMsgGetData() *MsgGetData {
	return &MsgGetData{command: CmdGetData}
}

// NewMsgNotFound returns a new, empty notfound message.
func NewMsgNotFound() *MsgGetData {
	return &MsgGetData{command: CmdNotFound}
}

// AddInvVect adds an inventory vector to the message.
func (m *MsgGetData) AddInvVect(iv *InvVect) error {
	if len(m.InvList)+1 > MaxInvPerMsg {
		return messageError("MsgGetData.AddInvVect", ErrTooManyVectors,
			fmt.Sprintf("too many inv vectors in message [max %d]", MaxInvPerMsg))
	}
	m.InvList = append(m.InvList, iv)
	return nil
}

// BtcDecode decodes r into the receiver.
func (m *MsgGetData) BtcDecode(r io.Reader, pver uint32) error {
	const op = "MsgGetData.BtcDecode"

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
func (m *MsgGetData) BtcEncode(w io.Writer, pver uint32) error {
	count := len(m.InvList)
	if count > MaxInvPerMsg {
		return messageError("MsgGetData.BtcEncode", ErrTooManyVectors,
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

// Command returns the protocol command string for the message: getdata or
// notfound, depending on how the message was constructed.
func (m *MsgGetData) Command() string {
	if m.command == "" {
		return CmdGetData
	}
	return m.command
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgGetData) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(MaxInvPerMsg)) + MaxInvPerMsg*36
}
