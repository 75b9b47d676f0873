// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"bytes"
	"testing"
)

func TestHashStringReversesDisplay(t *testing.T) {
	var h Hash
	for i := range h {
		h[i] = byte(i)
	}

	s := h.String()
	got, err := NewHashFromStr(s)
	if err != nil {
		t.Fatalf("NewHashFromStr: %v", err)
	}
	if *got != h {
		t.Fatalf("round trip mismatch: got %x want %x", *got, h)
	}

	// The displayed string must be the hex of the byte-reversed hash.
	var reversed Hash
	for i, b := range h {
		reversed[HashSize-1-i] = b
	}
	if s != hexString(reversed[:]) {
		t.Fatalf("display mismatch: got %s want %s", s, hexString(reversed[:]))
	}
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = digits[v>>4]
		out[i*2+1] = digits[v&0x0f]
	}
	return string(out)
}

func TestHashBHashHAgree(t *testing.T) {
	data := []byte("testing double sha256")
	hb := HashB(data)
	hh := HashH(data)
	if !bytes.Equal(hb, hh[:]) {
		t.Fatalf("HashB and HashH disagree")
	}
}

func TestZeroHash(t *testing.T) {
	var h Hash
	if !h.IsZero() {
		t.Fatal("zero-value Hash should be IsZero")
	}
	h[0] = 1
	if h.IsZero() {
		t.Fatal("non-zero Hash reported as IsZero")
	}
}
