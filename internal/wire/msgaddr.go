// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MsgAddr implements the Message interface and is used to advertise known
// peer addresses.
type MsgAddr struct {
	AddrList []*NetAddr
}

// AddAddress adds a known active peer address to the message.
func (m *MsgAddr) AddAddress(na *NetAddr) error {
	if len(m.AddrList)+1 > MaxAddrPerMsg {
		return messageError("MsgAddr.AddAddress", ErrTooManyAddrs,
			fmt.Sprintf("too many addresses in message [max %d]", MaxAddrPerMsg))
	}
	m.AddrList = append(m.AddrList, na)
	return nil
}

// BtcDecode decodes r into the receiver.
func (m *MsgAddr) BtcDecode(r io.Reader, pver uint32) error {
	const op = "MsgAddr.BtcDecode"

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxAddrPerMsg {
		return messageError(op, ErrTooManyAddrs,
			fmt.Sprintf("too many addresses for message [count %d, max %d]", count, MaxAddrPerMsg))
	}

	addrList := make([]NetAddr, count)
	m.AddrList = make([]*NetAddr, 0, count)
	for i := uint64(0); i < count; i++ {
		na := &addrList[i]
		if err := readNetAddr(r, na); err != nil {
			return err
		}
		m.AddrList = append(m.AddrList, na)
	}
	return nil
}

// BtcEncode encodes the receiver to w.
func (m *MsgAddr) BtcEncode(w io.Writer, pver uint32) error {
	count := len(m.AddrList)
	if count > MaxAddrPerMsg {
		return messageError("MsgAddr.BtcEncode", ErrTooManyAddrs,
			fmt.Sprintf("too many addresses for message [count %d, max %d]", count, MaxAddrPerMsg))
	}

	if err := WriteVarInt(w, uint64(count)); err != nil {
		return err
	}
	for _, na := range m.AddrList {
		if err := writeNetAddr(w, na); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the protocol command string for the message.
func (m *MsgAddr) Command() string {
	return CmdAddr
}

// MaxPayloadLength returns the maximum allowed payload size for the
// message.
func (m *MsgAddr) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(MaxAddrPerMsg)) + MaxAddrPerMsg*30
}
