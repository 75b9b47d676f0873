// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrmgr

import (
	"net"
	"testing"

	"github.com/chainwatch/spvsync/internal/wire"
)

func netAddr(ip string, port uint16) *wire.NetAddr {
	na := wire.NewNetAddr(net.ParseIP(ip), port, wire.SFNodeNetwork)
	return &na
}

func TestSelectReturnsErrNoAddressesWhenEmpty(t *testing.T) {
	m := New()
	if _, err := m.Select(); err != ErrNoAddresses {
		t.Fatalf("expected ErrNoAddresses, got %v", err)
	}
}

func TestSelectPrefersKnownOverSeed(t *testing.T) {
	m := New()
	m.AddSeed(netAddr("192.0.2.1", 8333))
	m.AddKnown(netAddr("192.0.2.2", 8333))

	got, err := m.Select()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Addr.IP.Equal(net.ParseIP("192.0.2.2")) {
		t.Fatalf("expected the known address, got %v", got.Addr)
	}
}

func TestAddKnownPromotesFromSeed(t *testing.T) {
	m := New()
	addr := netAddr("192.0.2.1", 8333)
	m.AddSeed(addr)
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}

	m.AddKnown(addr)
	if len(m.seed) != 0 {
		t.Fatal("address should have been removed from the seed set")
	}
	if len(m.known) != 1 {
		t.Fatal("address should be present in the known set")
	}
}

func TestSelectFallsBackToTriedWhenExhausted(t *testing.T) {
	m := New()
	addr := netAddr("192.0.2.1", 8333)
	m.AddKnown(addr)
	m.MarkAttempted(addr.Addr)

	got, err := m.Select()
	if err != nil {
		t.Fatalf("expected a candidate even though all addresses are tried, got error %v", err)
	}
	if !got.Addr.IP.Equal(net.ParseIP("192.0.2.1")) {
		t.Fatalf("unexpected candidate %v", got.Addr)
	}
}
