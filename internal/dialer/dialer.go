// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dialer provides the outbound connection strategies the client can
// use to reach a peer: a direct TCP dial, or a dial routed through a SOCKS5
// proxy (for example, Tor) for callers that need to avoid exposing their
// own address.
package dialer

import (
	"context"
	"net"
	"time"

	"github.com/decred/go-socks/socks"
)

// Dialer opens outbound TCP connections to peer addresses.
type Dialer interface {
	DialContext(ctx context.Context, addr string) (net.Conn, error)
}

// Direct dials peers with the standard library's net.Dialer.
type Direct struct {
	net.Dialer
}

// NewDirect returns a Dialer that connects directly, with the given
// per-attempt timeout.
func NewDirect(timeout time.Duration) *Direct {
	return &Direct{Dialer: net.Dialer{Timeout: timeout}}
}

// DialContext dials addr ("host:port") directly.
func (d *Direct) DialContext(ctx context.Context, addr string) (net.Conn, error) {
	return d.Dialer.DialContext(ctx, "tcp", addr)
}

// Socks5 dials peers through a SOCKS5 proxy, the mechanism used to route
// connections over Tor without leaking the client's own address.
type Socks5 struct {
	proxy *socks.Proxy
}

// NewSocks5 returns a Dialer that connects through the SOCKS5 proxy
// listening at proxyAddr ("host:port").
func NewSocks5(proxyAddr, username, password string) *Socks5 {
	return &Socks5{proxy: &socks.Proxy{
		Addr:     proxyAddr,
		Username: username,
		Password: password,
	}}
}

// DialContext dials addr ("host:port") through the configured SOCKS5 proxy.
// The proxy library does not accept a context directly; cancellation is
// honored by racing the dial against ctx.Done in a goroutine and closing
// the connection if it loses.
func (d *Socks5) DialContext(ctx context.Context, addr string) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	done := make(chan result, 1)
	go func() {
		conn, err := d.proxy.Dial("tcp", addr)
		done <- result{conn, err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if r := <-done; r.conn != nil {
				r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	case r := <-done:
		return r.conn, r.err
	}
}
