// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// MaxVarIntPayload is the maximum payload size for a variable length
// integer.
const MaxVarIntPayload = 9

var (
	littleEndian = binary.LittleEndian
	bigEndian    = binary.BigEndian
)

// readUint8 reads a single byte from r.
func readUint8(r io.Reader, value *uint8) error {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	*value = b[0]
	return nil
}

// readUint16LE reads a little endian uint16 from r.
func readUint16LE(r io.Reader, value *uint16) error {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	*value = littleEndian.Uint16(b[:])
	return nil
}

// readUint32LE reads a little endian uint32 from r.
func readUint32LE(r io.Reader, value *uint32) error {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	*value = littleEndian.Uint32(b[:])
	return nil
}

// readUint64LE reads a little endian uint64 from r.
func readUint64LE(r io.Reader, value *uint64) error {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	*value = littleEndian.Uint64(b[:])
	return nil
}

// writeUint8 writes a single byte to w.
func writeUint8(w io.Writer, value uint8) error {
	_, err := w.Write([]byte{value})
	return err
}

// writeUint16LE writes a little endian uint16 to w.
func writeUint16LE(w io.Writer, value uint16) error {
	var b [2]byte
	littleEndian.PutUint16(b[:], value)
	_, err := w.Write(b[:])
	return err
}

// writeUint32LE writes a little endian uint32 to w.
func writeUint32LE(w io.Writer, value uint32) error {
	var b [4]byte
	littleEndian.PutUint32(b[:], value)
	_, err := w.Write(b[:])
	return err
}

// writeUint64LE writes a little endian uint64 to w.
func writeUint64LE(w io.Writer, value uint64) error {
	var b [8]byte
	littleEndian.PutUint64(b[:], value)
	_, err := w.Write(b[:])
	return err
}

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64.  Decoding rejects non-canonical encodings: a value that could have
// been represented with a shorter discriminant is a protocol violation.
func ReadVarInt(r io.Reader) (uint64, error) {
	const op = "ReadVarInt"
	var discriminant uint8
	if err := readUint8(r, &discriminant); err != nil {
		return 0, err
	}

	var rv uint64
	switch discriminant {
	case 0xff:
		var sv uint64
		if err := readUint64LE(r, &sv); err != nil {
			return 0, err
		}
		rv = sv
		if rv < 0x100000000 {
			return 0, messageError(op, ErrNonCanonicalVarInt, "varint not minimally encoded")
		}

	case 0xfe:
		var sv uint32
		if err := readUint32LE(r, &sv); err != nil {
			return 0, err
		}
		rv = uint64(sv)
		if rv < 0x10000 {
			return 0, messageError(op, ErrNonCanonicalVarInt, "varint not minimally encoded")
		}

	case 0xfd:
		var sv uint16
		if err := readUint16LE(r, &sv); err != nil {
			return 0, err
		}
		rv = uint64(sv)
		if rv < 0xfd {
			return 0, messageError(op, ErrNonCanonicalVarInt, "varint not minimally encoded")
		}

	default:
		rv = uint64(discriminant)
	}

	return rv, nil
}

// WriteVarInt serializes val to w using the minimal number of bytes needed
// to represent it.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return writeUint8(w, uint8(val))
	}
	if val <= math.MaxUint16 {
		if err := writeUint8(w, 0xfd); err != nil {
			return err
		}
		return writeUint16LE(w, uint16(val))
	}
	if val <= math.MaxUint32 {
		if err := writeUint8(w, 0xfe); err != nil {
			return err
		}
		return writeUint32LE(w, uint32(val))
	}
	if err := writeUint8(w, 0xff); err != nil {
		return err
	}
	return writeUint64LE(w, val)
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= math.MaxUint16:
		return 3
	case val <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// ReadVarString reads a variable length string from r: a varint length
// prefix followed by that many raw bytes, with no terminator.
func ReadVarString(r io.Reader, maxAllowed uint64) (string, error) {
	const op = "ReadVarString"
	count, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if count > maxAllowed {
		return "", messageError(op, ErrVarStringTooLong, "variable length string is too long")
	}
	buf := make([]byte, count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteVarString serializes str to w as a varint length prefix followed by
// the raw bytes of the string.
func WriteVarString(w io.Writer, str string) error {
	if err := WriteVarInt(w, uint64(len(str))); err != nil {
		return err
	}
	_, err := io.WriteString(w, str)
	return err
}

// ReadVarBytes reads a variable length byte slice: a varint length prefix
// followed by that many raw bytes.
func ReadVarBytes(r io.Reader, maxAllowed uint64) ([]byte, error) {
	const op = "ReadVarBytes"
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, messageError(op, ErrVarBytesTooLong, "variable length byte slice is too long")
	}
	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteVarBytes serializes data to w as a varint length prefix followed by
// the raw bytes.
func WriteVarBytes(w io.Writer, data []byte) error {
	if err := WriteVarInt(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// isStrictAscii reports whether s contains only printable ASCII characters.
func isStrictAscii(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// newBuffer wraps b in a *bytes.Buffer for callers that need an io.Reader
// with a known remaining length.
func newBuffer(b []byte) *bytes.Buffer {
	return bytes.NewBuffer(b)
}
