// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
	"net"
	"time"
)

// ServiceFlag identifies the services supported by a peer.
type ServiceFlag uint64

const (
	// SFNodeNetwork indicates a peer is a full node capable of serving
	// blocks and headers.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO indicates a peer supports the getutxo protocol
	// extension.
	SFNodeGetUTXO

	// SFNodeBloom indicates a peer supports bloom filtering.
	SFNodeBloom
)

// ipv4MappedPrefix is the fixed 96-bit ::ffff:0:0/96 prefix used to embed an
// IPv4 address in the 16-byte address field of the wire encoding.
var ipv4MappedPrefix = [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// Addr is a network address: an IP (v4 or v6) plus a TCP port.  It is always
// encoded on the wire as 16 bytes (IPv4 addresses use the ::ffff:0:0/96
// mapped prefix) followed by a 2-byte big endian port.
type Addr struct {
	IP   net.IP
	Port uint16
}

// String returns addr in host:port form, suitable for net.Dial.
func (a Addr) String() string {
	return net.JoinHostPort(a.IP.String(), fmt.Sprintf("%d", a.Port))
}

// Key returns a canonical string suitable for use as a map key.
func (a Addr) Key() string {
	return a.String()
}

func readNetIPPort(r io.Reader) (net.IP, uint16, error) {
	var raw [16]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, 0, err
	}

	var port uint16
	if err := readUint16BE(r, &port); err != nil {
		return nil, 0, err
	}

	ip := make(net.IP, 16)
	copy(ip, raw[:])
	return ip, port, nil
}

func writeNetIPPort(w io.Writer, ip net.IP, port uint16) error {
	var raw [16]byte
	if ip4 := ip.To4(); ip4 != nil {
		copy(raw[:12], ipv4MappedPrefix[:])
		copy(raw[12:], ip4)
	} else if ip16 := ip.To16(); ip16 != nil {
		copy(raw[:], ip16)
	}
	if _, err := w.Write(raw[:]); err != nil {
		return err
	}
	return writeUint16BE(w, port)
}

func readUint16BE(r io.Reader, value *uint16) error {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	*value = bigEndian.Uint16(b[:])
	return nil
}

func writeUint16BE(w io.Writer, value uint16) error {
	var b [2]byte
	bigEndian.PutUint16(b[:], value)
	_, err := w.Write(b[:])
	return err
}

// VersionNetAddr is the address representation carried inside a version
// message: services plus an address, with no timestamp.
type VersionNetAddr struct {
	Services ServiceFlag
	Addr     Addr
}

func readVersionNetAddr(r io.Reader, na *VersionNetAddr) error {
	if err := readUint64LE(r, (*uint64)(&na.Services)); err != nil {
		return err
	}
	ip, port, err := readNetIPPort(r)
	if err != nil {
		return err
	}
	na.Addr = Addr{IP: ip, Port: port}
	return nil
}

func writeVersionNetAddr(w io.Writer, na *VersionNetAddr) error {
	if err := writeUint64LE(w, uint64(na.Services)); err != nil {
		return err
	}
	return writeNetIPPort(w, na.Addr.IP, na.Addr.Port)
}

// NetAddr is the address representation carried inside addr messages and
// persisted peer lists: a last-seen timestamp, services, and an address.
type NetAddr struct {
	Timestamp time.Time
	Services  ServiceFlag
	Addr      Addr
}

// NewNetAddr returns a NetAddr for ip:port with the given services, stamped
// with the current time truncated to one-second precision (the protocol
// does not support finer granularity).
func NewNetAddr(ip net.IP, port uint16, services ServiceFlag) NetAddr {
	return NetAddr{
		Timestamp: time.Unix(time.Now().Unix(), 0),
		Services:  services,
		Addr:      Addr{IP: ip, Port: port},
	}
}

func readNetAddr(r io.Reader, na *NetAddr) error {
	var ts uint32
	if err := readUint32LE(r, &ts); err != nil {
		return err
	}
	na.Timestamp = time.Unix(int64(ts), 0)

	if err := readUint64LE(r, (*uint64)(&na.Services)); err != nil {
		return err
	}
	ip, port, err := readNetIPPort(r)
	if err != nil {
		return err
	}
	na.Addr = Addr{IP: ip, Port: port}
	return nil
}

func writeNetAddr(w io.Writer, na *NetAddr) error {
	if err := writeUint32LE(w, uint32(na.Timestamp.Unix())); err != nil {
		return err
	}
	if err := writeUint64LE(w, uint64(na.Services)); err != nil {
		return err
	}
	return writeNetIPPort(w, na.Addr.IP, na.Addr.Port)
}
