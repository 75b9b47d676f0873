// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer implements the per-connection state machine a simplified
// payment verification client drives against a single network peer: the
// version/verack handshake, a framed message reader, and a ping/pong
// liveness heartbeat. The peer's background goroutines hand decoded
// messages and errors to the client event loop across a channel; the
// state they do touch themselves (connection state, the outstanding ping
// nonce) is guarded by the Peer's mutex.
package peer

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/chainwatch/spvsync/internal/chaincfg"
	"github.com/chainwatch/spvsync/internal/chainhash"
	"github.com/chainwatch/spvsync/internal/uniform"
	"github.com/chainwatch/spvsync/internal/wire"
)

// State identifies where a Peer is in its connection lifecycle.
type State int

const (
	// StateConnecting is the state immediately after a TCP connection is
	// established but before a version message has been sent.
	StateConnecting State = iota

	// StateVersionSent is the state after this client has sent its own
	// version message but has not yet received the peer's.
	StateVersionSent

	// StateVersionReceived is the state after both version messages have
	// been exchanged but before the handshake-completing verack has been
	// sent and received.
	StateVersionReceived

	// StateConnected is the state once the handshake is fully complete
	// and normal message exchange may proceed.
	StateConnected

	// StateClosing is the state once Shutdown has been called or the
	// connection has failed; no further sends are permitted.
	StateClosing
)

// String returns a human-readable state name, used in logging.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateVersionSent:
		return "version-sent"
	case StateVersionReceived:
		return "version-received"
	case StateConnected:
		return "connected"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Default heartbeat tuning, grounded in standard Bitcoin-network peer
// behavior: ping every two minutes, and consider the peer dead if it fails
// to reply within one minute.
const (
	DefaultPingInterval = 2 * time.Minute
	DefaultPongTimeout  = 60 * time.Second

	// maxFrameBuffer bounds how much unparsed data a single peer may hold
	// in memory awaiting a complete frame, a guard against a peer that
	// claims an enormous payload length and then trickles bytes in.
	maxFrameBuffer = wire.MaxMessagePayload + wire.MessageHeaderSize
)

// Event is delivered from a Peer's background goroutines to the client
// event loop channel supplied to Start.
type Event struct {
	Peer *Peer
	Msg  wire.Message
	Err  error
}

// Peer drives the wire protocol for a single network connection.
type Peer struct {
	conn   net.Conn
	params *chaincfg.Params
	pver   uint32
	self   wire.VersionNetAddr
	agent  string
	nonce  uint64

	mu    sync.Mutex
	state State

	outbound bool
	addr     string

	events  chan<- Event
	closeCh chan struct{}
	closeOnce sync.Once

	pingTimer     *time.Timer
	pongTimer     *time.Timer
	pongCh        chan struct{}
	lastPingNonce uint64
}

// Config carries the fields needed to construct a Peer.
type Config struct {
	Params          *chaincfg.Params
	ProtocolVersion uint32
	Self            wire.VersionNetAddr
	UserAgent       string
}

// NewOutbound wraps an already-established outbound TCP connection in a
// Peer ready to begin the handshake.
func NewOutbound(conn net.Conn, cfg Config) *Peer {
	var nonceBuf [8]byte
	if _, err := io.ReadFull(rand.Reader, nonceBuf[:]); err != nil {
		panic(fmt.Errorf("peer: reading nonce: %w", err))
	}

	return &Peer{
		conn:     conn,
		params:   cfg.Params,
		pver:     cfg.ProtocolVersion,
		self:     cfg.Self,
		agent:    cfg.UserAgent,
		nonce:    uniform.Uint64(rand.Reader),
		state:    StateConnecting,
		outbound: true,
		addr:     conn.RemoteAddr().String(),
		closeCh:  make(chan struct{}),
		pongCh:   make(chan struct{}, 1),
	}
}

// Addr returns the remote address this peer is connected to.
func (p *Peer) Addr() string {
	return p.addr
}

// State returns the peer's current connection state.
func (p *Peer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Peer) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Start begins the handshake and launches the background goroutines that
// read frames from the connection and maintain the ping/pong heartbeat.
// Every decoded message, and any fatal read/write error, is delivered to
// events; the client event loop is the sole consumer.
func (p *Peer) Start(ctx context.Context, events chan<- Event) error {
	p.events = events

	version := p.buildVersionMsg()
	if err := p.send(version); err != nil {
		return fmt.Errorf("peer: sending version: %w", err)
	}
	p.setState(StateVersionSent)

	go p.readLoop()
	go p.heartbeatLoop(ctx)

	return nil
}

func (p *Peer) buildVersionMsg() *wire.MsgVersion {
	return &wire.MsgVersion{
		ProtocolVersion: int32(p.pver),
		Services:        0,
		Timestamp:       time.Now().Unix(),
		AddrYou:         wire.VersionNetAddr{Addr: wire.Addr{IP: net.ParseIP("0.0.0.0")}},
		AddrMe:          p.self,
		Nonce:           p.nonce,
		UserAgent:       p.agent,
		LastBlock:       0,
	}
}

// HandleVersion processes an inbound version message by advancing to
// StateVersionReceived. The message's fields (protocol version, user
// agent, start height) are not retained. The caller (client event loop)
// decides whether and when to send verack.
func (p *Peer) HandleVersion(msg *wire.MsgVersion) {
	p.setState(StateVersionReceived)
}

// CompleteHandshake sends verack and marks the peer fully connected. The
// caller must only invoke this once both sides' version messages have been
// observed.
func (p *Peer) CompleteHandshake() error {
	if err := p.send(&wire.MsgVerAck{}); err != nil {
		return err
	}
	p.setState(StateConnected)
	return nil
}

// SendGetHeaders requests headers starting after locator, stopping at
// hashStop (the zero hash requests as many as the peer will send).
func (p *Peer) SendGetHeaders(locator []*chainhash.Hash, hashStop chainhash.Hash) error {
	msg := &wire.MsgGetHeaders{ProtocolVersion: p.pver, HashStop: hashStop}
	for _, h := range locator {
		if err := msg.AddBlockLocatorHash(h); err != nil {
			return err
		}
	}
	return p.send(msg)
}

// SendGetData requests the items identified by invs.
func (p *Peer) SendGetData(invs []*wire.InvVect) error {
	msg := wire.NewMsgGetData()
	for _, iv := range invs {
		if err := msg.AddInvVect(iv); err != nil {
			return err
		}
	}
	return p.send(msg)
}

// Send writes an arbitrary message to the peer.
func (p *Peer) Send(msg wire.Message) error {
	return p.send(msg)
}

func (p *Peer) send(msg wire.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateClosing {
		return fmt.Errorf("peer: send on closed peer %s", p.addr)
	}
	return wire.WriteMessage(p.conn, msg, p.pver, p.params.Net)
}

// readLoop blocks reading from the connection, decoding complete frames as
// they arrive and forwarding each to the events channel. It runs until the
// connection is closed or a fatal framing error occurs; either way it
// reports the terminal condition as an Event with a non-nil Err before
// returning. The heartbeat can report its own terminal error as well, so
// the client event loop may see more than one error Event for a peer.
func (p *Peer) readLoop() {
	br := bufio.NewReaderSize(p.conn, 64*1024)
	var buf []byte
	chunk := make([]byte, 32*1024)

	for {
		for {
			msg, consumed, err := wire.DecodeFrame(buf, p.pver, p.params.Net)
			if err == wire.ErrNeedMore {
				break
			}
			if err != nil {
				p.deliver(Event{Peer: p, Err: err})
				p.shutdownConn()
				return
			}
			buf = buf[consumed:]
			if msg != nil {
				p.deliver(Event{Peer: p, Msg: msg})
			}
		}

		if len(buf) > maxFrameBuffer {
			p.deliver(Event{Peer: p, Err: fmt.Errorf("peer: frame buffer exceeded %d bytes", maxFrameBuffer)})
			p.shutdownConn()
			return
		}

		n, err := br.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if err != io.EOF {
				p.deliver(Event{Peer: p, Err: fmt.Errorf("peer: read: %w", err)})
			} else {
				p.deliver(Event{Peer: p, Err: io.EOF})
			}
			p.shutdownConn()
			return
		}
	}
}

// heartbeatLoop sends a ping every DefaultPingInterval and expects a pong
// within DefaultPongTimeout; missing one is treated as a dead connection.
// Every timer arm is paired with a corresponding stop on every exit path to
// avoid leaking the underlying runtime timer.
func (p *Peer) heartbeatLoop(ctx context.Context) {
	p.pingTimer = time.NewTimer(DefaultPingInterval)
	defer p.stopTimer(p.pingTimer)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.closeCh:
			return
		case <-p.pingTimer.C:
			nonce := uniform.Uint64(rand.Reader)
			p.mu.Lock()
			p.lastPingNonce = nonce
			p.mu.Unlock()

			if err := p.send(&wire.MsgPing{Nonce: nonce}); err != nil {
				p.deliver(Event{Peer: p, Err: fmt.Errorf("peer: sending ping: %w", err)})
				p.shutdownConn()
				return
			}

			p.pongTimer = time.NewTimer(DefaultPongTimeout)
			select {
			case <-ctx.Done():
				p.stopTimer(p.pongTimer)
				return
			case <-p.closeCh:
				p.stopTimer(p.pongTimer)
				return
			case <-p.pongCh:
				p.stopTimer(p.pongTimer)
			case <-p.pongTimer.C:
				p.deliver(Event{Peer: p, Err: fmt.Errorf("peer: pong timeout after %s", DefaultPongTimeout)})
				p.shutdownConn()
				return
			}
		}

		p.resetTimer(p.pingTimer, DefaultPingInterval)
	}
}

// HandlePong signals the heartbeat goroutine that a reply matching the most
// recently sent ping nonce has arrived, canceling the pending pong timeout.
func (p *Peer) HandlePong(nonce uint64) {
	p.mu.Lock()
	match := nonce == p.lastPingNonce
	p.mu.Unlock()
	if !match {
		return
	}
	select {
	case p.pongCh <- struct{}{}:
	default:
	}
}

func (p *Peer) stopTimer(t *time.Timer) {
	if t == nil {
		return
	}
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func (p *Peer) resetTimer(t *time.Timer, d time.Duration) {
	p.stopTimer(t)
	t.Reset(d)
}

func (p *Peer) deliver(ev Event) {
	if p.events == nil {
		return
	}
	select {
	case p.events <- ev:
	case <-p.closeCh:
	}
}

func (p *Peer) shutdownConn() {
	p.closeOnce.Do(func() {
		p.setState(StateClosing)
		close(p.closeCh)
		p.conn.Close()
	})
}

// Shutdown idempotently tears down the connection and stops all background
// goroutines. It is safe to call more than once and from any goroutine.
func (p *Peer) Shutdown() {
	p.shutdownConn()
}
