// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/chainwatch/spvsync/internal/addrmgr"
	"github.com/chainwatch/spvsync/internal/chain"
	"github.com/chainwatch/spvsync/internal/chaincfg"
	"github.com/chainwatch/spvsync/internal/chainhash"
	"github.com/chainwatch/spvsync/internal/wire"
)

// fakeDialer hands out one end of a net.Pipe per dial, regardless of the
// requested address, and hands the other end back to the test over conns.
type fakeDialer struct {
	conns chan net.Conn
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{conns: make(chan net.Conn, 8)}
}

func (d *fakeDialer) DialContext(ctx context.Context, addr string) (net.Conn, error) {
	clientSide, remoteSide := net.Pipe()
	select {
	case d.conns <- remoteSide:
	default:
	}
	return clientSide, nil
}

// scriptedPeer drives the remote side of a handshake plus a single round
// of header sync that immediately reports the chain as caught up.
func scriptedPeer(t *testing.T, conn net.Conn, net_ wire.CurrencyNet, headers []*wire.BlockHeader) {
	t.Helper()

	var buf []byte
	read := func() wire.Message {
		for {
			msg, consumed, err := wire.DecodeFrame(buf, 70001, net_)
			if err == wire.ErrNeedMore {
				chunk := make([]byte, 4096)
				n, rerr := conn.Read(chunk)
				if rerr != nil {
					return nil
				}
				buf = append(buf, chunk[:n]...)
				continue
			}
			if err != nil {
				t.Logf("scriptedPeer decode error: %v", err)
				return nil
			}
			buf = buf[consumed:]
			if msg != nil {
				return msg
			}
		}
	}

	if _, ok := read().(*wire.MsgVersion); !ok {
		t.Error("expected version first")
		return
	}
	if err := wire.WriteMessage(conn, &wire.MsgVersion{ProtocolVersion: 70001}, 70001, net_); err != nil {
		t.Errorf("writing version: %v", err)
		return
	}
	if err := wire.WriteMessage(conn, &wire.MsgVerAck{}, 70001, net_); err != nil {
		t.Errorf("writing verack: %v", err)
		return
	}
	if _, ok := read().(*wire.MsgVerAck); !ok {
		t.Error("expected verack from client")
		return
	}

	if _, ok := read().(*wire.MsgGetHeaders); !ok {
		t.Error("expected getheaders from client")
		return
	}

	headersMsg := &wire.MsgHeaders{}
	for _, bh := range headers {
		if err := headersMsg.AddBlockHeader(bh); err != nil {
			t.Errorf("AddBlockHeader: %v", err)
			return
		}
	}
	if err := wire.WriteMessage(conn, headersMsg, 70001, net_); err != nil {
		t.Errorf("writing headers: %v", err)
	}
}

func buildHeaderChain(t *testing.T, genesisHash chainhash.Hash, n int) []*wire.BlockHeader {
	t.Helper()
	out := make([]*wire.BlockHeader, n)
	prev := genesisHash
	now := uint32(time.Now().Unix())
	for i := 0; i < n; i++ {
		bh := &wire.BlockHeader{
			Version:    1,
			PrevBlock:  prev,
			MerkleRoot: prev,
			Timestamp:  now,
			Bits:       0x207fffff,
			Nonce:      uint32(i),
		}
		out[i] = bh
		prev = bh.BlockHash()
	}
	return out
}

func TestManagerSyncsHeadersToRecentTip(t *testing.T) {
	params := chaincfg.RegNetParams
	c := chain.New(&params, nil)
	am := addrmgr.New()

	na := wire.NewNetAddr(net.ParseIP("192.0.2.10"), 18444, 0)
	am.AddSeed(&na)

	fd := newFakeDialer()
	mgr := New(Config{
		Params:         &params,
		MaxConnections: 1,
		Dialer:         fd,
		Chain:          c,
		AddrMgr:        am,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runDone := make(chan struct{})
	go func() {
		mgr.Run(ctx)
		close(runDone)
	}()

	var remote net.Conn
	select {
	case remote = <-fd.conns:
	case <-time.After(2 * time.Second):
		t.Fatal("manager never dialed the fake peer")
	}

	headers := buildHeaderChain(t, params.GenesisHash(), 3)
	scriptDone := make(chan struct{})
	go func() {
		defer close(scriptDone)
		scriptedPeer(t, remote, params.Net, headers)
	}()

	// scriptedPeer's last write only guarantees the headers frame has been
	// read off the wire, not that the manager's single event-loop goroutine
	// has finished applying it to the chain; give it a moment to do so.
	// Shutdown below then blocks on doneCh, which happens-after every chain
	// mutation the event loop makes, so reading the tip afterward is safe.
	<-scriptDone
	time.Sleep(200 * time.Millisecond)

	mgr.Shutdown()
	<-runDone

	if got := c.TipHeight(); got != int32(len(headers)) {
		t.Fatalf("tip height = %d, want %d", got, len(headers))
	}
}

func TestManagerShutdownIsIdempotent(t *testing.T) {
	params := chaincfg.RegNetParams
	c := chain.New(&params, nil)
	am := addrmgr.New()

	mgr := New(Config{Params: &params, Dialer: newFakeDialer(), Chain: c, AddrMgr: am})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan struct{})
	go func() {
		mgr.Run(ctx)
		close(runDone)
	}()

	time.Sleep(20 * time.Millisecond)
	mgr.Shutdown()
	mgr.Shutdown()
	<-runDone
}
