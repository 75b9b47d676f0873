// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/chainwatch/spvsync/internal/chainhash"
)

func sampleHeader() *BlockHeader {
	return &BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.HashH([]byte("prev")),
		MerkleRoot: chainhash.HashH([]byte("merkle")),
		Timestamp:  1700000000,
		Bits:       0x1d00ffff,
		Nonce:      12345,
	}
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	bh := sampleHeader()

	var buf bytes.Buffer
	if err := bh.BtcEncode(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != BlockHeaderSize {
		t.Fatalf("encoded size = %d, want %d", buf.Len(), BlockHeaderSize)
	}

	var got BlockHeader
	if err := got.BtcDecode(&buf); err != nil {
		t.Fatal(err)
	}
	if got != *bh {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, *bh)
	}
}

func TestBlockHashIsDeterministic(t *testing.T) {
	bh := sampleHeader()
	h1 := bh.BlockHash()
	h2 := bh.BlockHash()
	if h1 != h2 {
		t.Fatal("BlockHash is not deterministic")
	}

	bh.Nonce++
	if bh.BlockHash() == h1 {
		t.Fatal("changing the nonce did not change the hash")
	}
}

func TestMsgHeadersRoundTrip(t *testing.T) {
	msg := &MsgHeaders{}
	for i := 0; i < 3; i++ {
		bh := sampleHeader()
		bh.Nonce = uint32(i)
		if err := msg.AddBlockHeader(bh); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := WriteMessage(&buf, msg, testPver, TestNet); err != nil {
		t.Fatal(err)
	}

	decoded, consumed, err := DecodeFrame(buf.Bytes(), testPver, TestNet)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != buf.Len() {
		t.Fatalf("consumed = %d, want %d", consumed, buf.Len())
	}
	got, ok := decoded.(*MsgHeaders)
	if !ok {
		t.Fatalf("wrong type %T", decoded)
	}
	if len(got.Headers) != 3 {
		t.Fatalf("got %d headers, want 3", len(got.Headers))
	}
	for i, bh := range got.Headers {
		if bh.Nonce != uint32(i) {
			t.Fatalf("header %d nonce = %d, want %d", i, bh.Nonce, i)
		}
	}
}
