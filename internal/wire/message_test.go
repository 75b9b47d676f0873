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

const testPver = 70001

func TestDecodeFrameRoundTrip(t *testing.T) {
	ping := &MsgPing{Nonce: 0xdeadbeefcafebabe}

	var buf bytes.Buffer
	if err := WriteMessage(&buf, ping, testPver, TestNet); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	msg, consumed, err := DecodeFrame(buf.Bytes(), testPver, TestNet)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if consumed != buf.Len() {
		t.Fatalf("consumed = %d, want %d", consumed, buf.Len())
	}
	got, ok := msg.(*MsgPing)
	if !ok {
		t.Fatalf("decoded message has wrong type %T", msg)
	}
	if got.Nonce != ping.Nonce {
		t.Fatalf("nonce mismatch: got %x want %x", got.Nonce, ping.Nonce)
	}
}

func TestDecodeFrameNeedsMoreOnPartialHeader(t *testing.T) {
	ping := &MsgPing{Nonce: 1}
	var buf bytes.Buffer
	if err := WriteMessage(&buf, ping, testPver, TestNet); err != nil {
		t.Fatal(err)
	}

	// Only the first few bytes of the header are present.
	_, consumed, err := DecodeFrame(buf.Bytes()[:10], testPver, TestNet)
	if !errors.Is(err, ErrNeedMore) {
		t.Fatalf("expected ErrNeedMore, got %v", err)
	}
	if consumed != 0 {
		t.Fatalf("consumed = %d, want 0", consumed)
	}
}

func TestDecodeFrameNeedsMoreOnPartialPayload(t *testing.T) {
	ping := &MsgPing{Nonce: 1}
	var buf bytes.Buffer
	if err := WriteMessage(&buf, ping, testPver, TestNet); err != nil {
		t.Fatal(err)
	}

	// Header is complete but the payload is short by a byte.
	_, _, err := DecodeFrame(buf.Bytes()[:buf.Len()-1], testPver, TestNet)
	if !errors.Is(err, ErrNeedMore) {
		t.Fatalf("expected ErrNeedMore, got %v", err)
	}
}

func TestDecodeFrameRejectsBadChecksum(t *testing.T) {
	ping := &MsgPing{Nonce: 1}
	var buf bytes.Buffer
	if err := WriteMessage(&buf, ping, testPver, TestNet); err != nil {
		t.Fatal(err)
	}

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xff

	_, consumed, err := DecodeFrame(corrupted, testPver, TestNet)
	var kindErr MessageError
	if !errors.As(err, &kindErr) || kindErr.Err != ErrPayloadChecksum {
		t.Fatalf("expected ErrPayloadChecksum, got %v", err)
	}
	if consumed != len(corrupted) {
		t.Fatalf("consumed = %d, want %d (frame should still be skippable)", consumed, len(corrupted))
	}
}

func TestDecodeFrameRejectsWrongNetwork(t *testing.T) {
	ping := &MsgPing{Nonce: 1}
	var buf bytes.Buffer
	if err := WriteMessage(&buf, ping, testPver, MainNet); err != nil {
		t.Fatal(err)
	}

	_, _, err := DecodeFrame(buf.Bytes(), testPver, TestNet)
	var kindErr MessageError
	if !errors.As(err, &kindErr) || kindErr.Err != ErrWrongNetwork {
		t.Fatalf("expected ErrWrongNetwork, got %v", err)
	}
}

func TestDecodeFrameDropsUnknownCommandWithoutError(t *testing.T) {
	var payloadBuf bytes.Buffer
	payloadBuf.WriteString("unrecognized payload")
	payload := payloadBuf.Bytes()

	var frame bytes.Buffer
	if err := writeMessageHeader(&frame, TestNet, "bogus", uint32(len(payload)), checksum(payload)); err != nil {
		t.Fatal(err)
	}
	frame.Write(payload)

	msg, consumed, err := DecodeFrame(frame.Bytes(), testPver, TestNet)
	if err != nil {
		t.Fatalf("expected nil error for unknown command, got %v", err)
	}
	if msg != nil {
		t.Fatalf("expected nil message for unknown command, got %#v", msg)
	}
	if consumed != frame.Len() {
		t.Fatalf("consumed = %d, want %d", consumed, frame.Len())
	}
}

func TestDecodeFrameRejectsOversizePayload(t *testing.T) {
	var frame bytes.Buffer
	if err := writeMessageHeader(&frame, TestNet, CmdPing, MaxMessagePayload+1, [4]byte{}); err != nil {
		t.Fatal(err)
	}

	_, consumed, err := DecodeFrame(frame.Bytes(), testPver, TestNet)
	var kindErr MessageError
	if !errors.As(err, &kindErr) || kindErr.Err != ErrPayloadTooLarge {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
	if consumed != MessageHeaderSize {
		t.Fatalf("consumed = %d, want %d", consumed, MessageHeaderSize)
	}
}
