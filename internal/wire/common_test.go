// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, ^uint64(0)}
	for _, val := range tests {
		var buf bytes.Buffer
		if err := WriteVarInt(&buf, val); err != nil {
			t.Fatalf("WriteVarInt(%d): %v", val, err)
		}
		if buf.Len() != VarIntSerializeSize(val) {
			t.Fatalf("VarIntSerializeSize(%d) = %d, wrote %d bytes", val, VarIntSerializeSize(val), buf.Len())
		}

		got, err := ReadVarInt(&buf)
		if err != nil {
			t.Fatalf("ReadVarInt(%d): %v", val, err)
		}
		if got != val {
			t.Fatalf("round trip mismatch: got %d want %d", got, val)
		}
	}
}

func TestVarIntRejectsNonCanonical(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"0xfd prefix encoding a value under 0xfd", []byte{0xfd, 0x00, 0x00}},
		{"0xfe prefix encoding a value under 0x10000", []byte{0xfe, 0xff, 0xff, 0x00, 0x00}},
		{"0xff prefix encoding a value under 0x100000000", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00}},
	}
	for _, test := range tests {
		_, err := ReadVarInt(bytes.NewReader(test.buf))
		var kindErr MessageError
		if !errors.As(err, &kindErr) || kindErr.Err != ErrNonCanonicalVarInt {
			t.Errorf("%s: expected ErrNonCanonicalVarInt, got %v", test.name, err)
		}
	}
}

func TestVarStringTooLong(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, 100); err != nil {
		t.Fatal(err)
	}
	buf.Write(make([]byte, 100))

	_, err := ReadVarString(bytes.NewReader(buf.Bytes()), 10)
	var kindErr MessageError
	if !errors.As(err, &kindErr) || kindErr.Err != ErrVarStringTooLong {
		t.Fatalf("expected ErrVarStringTooLong, got %v", err)
	}
}

func TestVarBytesRoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	var buf bytes.Buffer
	if err := WriteVarBytes(&buf, data); err != nil {
		t.Fatal(err)
	}
	got, err := ReadVarBytes(&buf, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %x want %x", got, data)
	}
}
