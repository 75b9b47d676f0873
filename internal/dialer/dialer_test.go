// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dialer

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestDirectDialContextConnects(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	d := NewDirect(2 * time.Second)
	conn, err := d.DialContext(context.Background(), ln.Addr().String())
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	conn.Close()
}

func TestDirectDialContextRespectsCancellation(t *testing.T) {
	d := NewDirect(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 203.0.113.0/24 is reserved documentation space; the dial should
	// fail quickly regardless, but a canceled context must not hang.
	_, err := d.DialContext(ctx, "203.0.113.1:8333")
	if err == nil {
		t.Fatal("expected an error from a canceled context dial")
	}
}
