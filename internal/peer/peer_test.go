// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/chainwatch/spvsync/internal/chaincfg"
	"github.com/chainwatch/spvsync/internal/wire"
)

func testConfig() Config {
	return Config{
		Params:          &chaincfg.RegNetParams,
		ProtocolVersion: 70001,
		Self:            wire.VersionNetAddr{Addr: wire.Addr{IP: net.ParseIP("127.0.0.1"), Port: 18444}},
		UserAgent:       "/spvsync-test:0.1.0/",
	}
}

// scriptedRemote plays the other side of the handshake over one end of a
// net.Pipe: it reads the client's version message, replies with its own
// version and a verack, and then waits for the client's verack.
func scriptedRemote(t *testing.T, conn net.Conn, net_ wire.CurrencyNet) {
	t.Helper()

	var buf []byte
	read := func() wire.Message {
		for {
			msg, consumed, err := wire.DecodeFrame(buf, 70001, net_)
			if err == wire.ErrNeedMore {
				chunk := make([]byte, 4096)
				n, rerr := conn.Read(chunk)
				if rerr != nil {
					t.Fatalf("scriptedRemote read: %v", rerr)
				}
				buf = append(buf, chunk[:n]...)
				continue
			}
			if err != nil {
				t.Fatalf("scriptedRemote decode: %v", err)
			}
			buf = buf[consumed:]
			return msg
		}
	}

	msg := read()
	if _, ok := msg.(*wire.MsgVersion); !ok {
		t.Fatalf("expected version message, got %T", msg)
	}

	remoteVersion := &wire.MsgVersion{
		ProtocolVersion: 70001,
		AddrYou:         wire.VersionNetAddr{},
		AddrMe:          wire.VersionNetAddr{},
		Nonce:           0xabc,
		UserAgent:       "/remote:0.0.1/",
	}
	if err := wire.WriteMessage(conn, remoteVersion, 70001, net_); err != nil {
		t.Fatalf("writing remote version: %v", err)
	}
	if err := wire.WriteMessage(conn, &wire.MsgVerAck{}, 70001, net_); err != nil {
		t.Fatalf("writing remote verack: %v", err)
	}

	msg = read()
	if _, ok := msg.(*wire.MsgVerAck); !ok {
		t.Fatalf("expected verack from client, got %T", msg)
	}
}

func TestHandshakeCompletesOverScriptedPeer(t *testing.T) {
	clientSide, remoteSide := net.Pipe()
	defer clientSide.Close()
	defer remoteSide.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		scriptedRemote(t, remoteSide, chaincfg.RegNetParams.Net)
	}()

	p := NewOutbound(clientSide, testConfig())
	events := make(chan Event, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Start(ctx, events); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if p.State() != StateVersionSent {
		t.Fatalf("state after Start = %s, want %s", p.State(), StateVersionSent)
	}

	var sawVersion, sawVerAck bool
	deadline := time.After(2 * time.Second)
	for !sawVersion || !sawVerAck {
		select {
		case ev := <-events:
			if ev.Err != nil {
				t.Fatalf("unexpected peer error: %v", ev.Err)
			}
			switch m := ev.Msg.(type) {
			case *wire.MsgVersion:
				p.HandleVersion(m)
				sawVersion = true
			case *wire.MsgVerAck:
				if err := p.CompleteHandshake(); err != nil {
					t.Fatalf("CompleteHandshake: %v", err)
				}
				sawVerAck = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for handshake messages")
		}
	}

	if p.State() != StateConnected {
		t.Fatalf("final state = %s, want %s", p.State(), StateConnected)
	}

	<-done
	p.Shutdown()
}

func TestShutdownIsIdempotent(t *testing.T) {
	clientSide, remoteSide := net.Pipe()
	defer remoteSide.Close()

	p := NewOutbound(clientSide, testConfig())
	p.Shutdown()
	p.Shutdown()
	p.Shutdown()
}
