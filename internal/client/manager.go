// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client implements the simplified payment verification client's
// connection manager: it maintains a pool of outbound peer connections,
// drives header sync against a single chosen sync peer, and persists sync
// progress. All mutable state is owned by a single goroutine (Run) that
// serializes every external event — peer messages, connect results, and
// timer firings — through channels, the same actor pattern used by this
// codebase's full-node connection and sync managers.
package client

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/chainwatch/spvsync/internal/addrmgr"
	"github.com/chainwatch/spvsync/internal/chain"
	"github.com/chainwatch/spvsync/internal/chaincfg"
	"github.com/chainwatch/spvsync/internal/chainhash"
	"github.com/chainwatch/spvsync/internal/dialer"
	"github.com/chainwatch/spvsync/internal/peer"
	"github.com/chainwatch/spvsync/internal/progresslog"
	"github.com/chainwatch/spvsync/internal/tipstore"
	"github.com/chainwatch/spvsync/internal/wire"
	"github.com/decred/slog"
)

// Default tuning values, overridable through Config.
const (
	DefaultMaxConnections = 8
	DefaultConnectTimeout = time.Second
	DefaultHdrTimeout     = 19 * time.Second
	DefaultUserAgent      = "/spvsync:0.1.0/"
	DefaultProtocolVer    = 70001

	// tipRecentWindow bounds how stale the best header's timestamp may be
	// while still being considered "caught up" to the network tip.
	tipRecentWindow = 24 * time.Hour
)

// Config holds every tunable the Manager needs at construction time.
type Config struct {
	Params          *chaincfg.Params
	MaxConnections  int
	ConnectTimeout  time.Duration
	HdrTimeout      time.Duration
	UserAgent       string
	ProtocolVersion uint32
	Dialer          dialer.Dialer
	Chain           *chain.Chain
	AddrMgr         *addrmgr.AddrManager
	TipStore        *tipstore.Store
	Logger          slog.Logger
}

func (c *Config) setDefaults() {
	if c.MaxConnections == 0 {
		c.MaxConnections = DefaultMaxConnections
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.HdrTimeout == 0 {
		c.HdrTimeout = DefaultHdrTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.ProtocolVersion == 0 {
		c.ProtocolVersion = DefaultProtocolVer
	}
	if c.Dialer == nil {
		c.Dialer = dialer.NewDirect(c.ConnectTimeout)
	}
	if c.Logger == nil {
		c.Logger = slog.Disabled
	}
}

// peerInfo tracks manager-side bookkeeping for one connected peer, kept
// separate from the peer.Peer itself since only the manager's event loop
// goroutine ever touches it.
type peerInfo struct {
	p    *peer.Peer
	addr string
}

// connectResult is delivered on connectResults once a dial attempt (success
// or failure) completes.
type connectResult struct {
	addr string
	conn net.Conn
	err  error
}

// Manager owns the connection pool and drives header sync.
type Manager struct {
	cfg Config

	peerEvents     chan peer.Event
	connectResults chan connectResult
	shutdownCh     chan struct{}
	doneCh         chan struct{}

	peers         map[*peer.Peer]*peerInfo
	inFlight      int
	syncPeer      *peer.Peer
	hdrTimeout    *time.Timer
	pendingInv    map[chainhash.Hash]struct{}
	progress      *progresslog.Logger
	seededFromDNS bool
}

// New constructs a Manager ready to Run. Callers must call Run to begin
// connecting to peers and processing events.
func New(cfg Config) *Manager {
	cfg.setDefaults()
	return &Manager{
		cfg:            cfg,
		peerEvents:     make(chan peer.Event, 64),
		connectResults: make(chan connectResult, cfg.MaxConnections),
		shutdownCh:     make(chan struct{}),
		doneCh:         make(chan struct{}),
		peers:          make(map[*peer.Peer]*peerInfo),
		pendingInv:     make(map[chainhash.Hash]struct{}),
		progress:       progresslog.New("Synced", cfg.Logger),
	}
}

// Run is the manager's single event loop. It blocks until ctx is canceled
// or Shutdown is called, and always closes doneCh on the way out so
// callers can wait for a clean stop.
func (m *Manager) Run(ctx context.Context) error {
	defer close(m.doneCh)

	if tip, ok, err := m.cfg.Chain.LoadTip(); err == nil && ok {
		m.cfg.Logger.Infof("Resuming from previously persisted tip at height %d (%s)",
			tip.Height, tip.Hash)
	}

	m.seedFromDNS(ctx)
	m.maintainConnections(ctx)

	for {
		select {
		case <-ctx.Done():
			m.teardown()
			return ctx.Err()

		case <-m.shutdownCh:
			m.teardown()
			return nil

		case res := <-m.connectResults:
			m.handleConnectResult(ctx, res)
			m.maintainConnections(ctx)

		case ev := <-m.peerEvents:
			m.handlePeerEvent(ctx, ev)

		case <-m.hdrTimeoutC():
			m.handleHdrTimeout(ctx)
		}
	}
}

// hdrTimeoutC returns the header-sync stall timer's channel, or nil (which
// blocks forever in a select) if no timer is currently armed.
func (m *Manager) hdrTimeoutC() <-chan time.Time {
	if m.hdrTimeout == nil {
		return nil
	}
	return m.hdrTimeout.C
}

// Shutdown idempotently requests the event loop stop and waits for it to
// finish tearing down every connection.
func (m *Manager) Shutdown() {
	select {
	case <-m.shutdownCh:
	default:
		close(m.shutdownCh)
	}
	<-m.doneCh
}

func (m *Manager) teardown() {
	m.stopHdrTimeout()
	for p := range m.peers {
		p.Shutdown()
	}
	if err := m.cfg.Chain.SaveTip(); err != nil {
		m.cfg.Logger.Errorf("Failed to persist chain tip on shutdown: %v", err)
	}
}

// seedFromDNS resolves every configured DNS seed host and adds the results
// to the address book as seed-tier candidates, the bootstrap mechanism used
// before any peer has been confirmed by a successful handshake.
func (m *Manager) seedFromDNS(ctx context.Context) {
	if m.seededFromDNS {
		return
	}
	m.seededFromDNS = true

	for _, seed := range m.cfg.Params.DNSSeeds {
		ips, err := net.DefaultResolver.LookupIP(ctx, "ip", seed.Host)
		if err != nil {
			m.cfg.Logger.Debugf("DNS seed lookup for %s failed: %v", seed.Host, err)
			continue
		}

		var port uint64
		_, _ = fmt.Sscanf(m.cfg.Params.DefaultPort, "%d", &port)

		for _, ip := range ips {
			na := wire.NewNetAddr(ip, uint16(port), 0)
			m.cfg.AddrMgr.AddSeed(&na)
		}
	}
}

// maintainConnections launches dial attempts until either the connection
// pool (including attempts still in flight) is full or the address book has
// nothing left to offer.
func (m *Manager) maintainConnections(ctx context.Context) {
	for len(m.peers)+m.inFlight < m.cfg.MaxConnections {
		na, err := m.cfg.AddrMgr.Select()
		if err != nil {
			return
		}
		m.cfg.AddrMgr.MarkAttempted(na.Addr)
		m.dial(ctx, na.Addr.String())
	}
}

func (m *Manager) dial(ctx context.Context, addr string) {
	m.inFlight++
	go func() {
		dialCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
		defer cancel()

		conn, err := m.cfg.Dialer.DialContext(dialCtx, addr)
		select {
		case m.connectResults <- connectResult{addr: addr, conn: conn, err: err}:
		case <-m.shutdownCh:
			if conn != nil {
				conn.Close()
			}
		}
	}()
}

func (m *Manager) handleConnectResult(ctx context.Context, res connectResult) {
	m.inFlight--
	if res.err != nil {
		m.cfg.Logger.Debugf("Connection attempt to %s failed: %v", res.addr, res.err)
		return
	}

	cfg := peer.Config{
		Params:          m.cfg.Params,
		ProtocolVersion: m.cfg.ProtocolVersion,
		UserAgent:       m.cfg.UserAgent,
	}
	p := peer.NewOutbound(res.conn, cfg)
	if err := p.Start(ctx, m.peerEvents); err != nil {
		m.cfg.Logger.Debugf("Handshake start with %s failed: %v", res.addr, err)
		res.conn.Close()
		return
	}

	m.peers[p] = &peerInfo{p: p, addr: res.addr}
	m.cfg.Logger.Infof("Connected to peer %s", res.addr)
}

func (m *Manager) handlePeerEvent(ctx context.Context, ev peer.Event) {
	if ev.Err != nil {
		m.handlePeerGone(ctx, ev.Peer, ev.Err)
		return
	}

	switch msg := ev.Msg.(type) {
	case *wire.MsgVersion:
		ev.Peer.HandleVersion(msg)

	case *wire.MsgVerAck:
		if err := ev.Peer.CompleteHandshake(); err != nil {
			m.handlePeerGone(ctx, ev.Peer, err)
			return
		}
		if na, ok := parseNetAddr(ev.Peer.Addr()); ok {
			m.cfg.AddrMgr.AddKnown(&na)
		}
		if m.syncPeer == nil {
			m.startHeaderSync(ev.Peer)
		}

	case *wire.MsgPing:
		_ = ev.Peer.Send(&wire.MsgPong{Nonce: msg.Nonce})

	case *wire.MsgPong:
		ev.Peer.HandlePong(msg.Nonce)

	case *wire.MsgHeaders:
		m.handleHeaders(ctx, ev.Peer, msg)

	case *wire.MsgInv:
		m.handleInv(ev.Peer, msg)

	case *wire.MsgAddr:
		m.handleAddr(ctx, msg)

	case *wire.MsgReject:
		m.handleReject(ctx, ev.Peer, msg)

	case nil:
		// A recognized frame with no mapped type (or a deliberately
		// unknown command the wire layer already accounted for): nothing
		// to act on.
	}
}

// handleAddr learns every advertised address as a known candidate and tops
// the connection pool back up if it has room for more peers.
func (m *Manager) handleAddr(ctx context.Context, msg *wire.MsgAddr) {
	for _, na := range msg.AddrList {
		m.cfg.AddrMgr.AddKnown(na)
	}
	m.maintainConnections(ctx)
}

// handleReject logs a peer's rejection of a previously sent message. Only a
// rejected version message is fatal to the connection; every other reject
// is purely informational.
func (m *Manager) handleReject(ctx context.Context, p *peer.Peer, msg *wire.MsgReject) {
	m.cfg.Logger.Debugf("Peer %s rejected %s (%s): %s", p.Addr(), msg.Cmd, msg.Code, msg.Reason)
	if msg.Cmd == wire.CmdVersion {
		m.handlePeerGone(ctx, p, fmt.Errorf("peer rejected version: %s", msg.Reason))
	}
}

func (m *Manager) handlePeerGone(ctx context.Context, p *peer.Peer, err error) {
	if _, ok := m.peers[p]; !ok {
		return
	}
	delete(m.peers, p)
	p.Shutdown()
	m.cfg.Logger.Infof("Peer %s disconnected: %v", p.Addr(), err)

	if p == m.syncPeer {
		m.syncPeer = nil
		m.stopHdrTimeout()
		m.pickNewSyncPeer(ctx, nil)
	}

	m.maintainConnections(ctx)
}

func (m *Manager) startHeaderSync(p *peer.Peer) {
	m.syncPeer = p
	locator := m.cfg.Chain.Locator()
	if err := p.SendGetHeaders(locator, chainhash.ZeroHash); err != nil {
		m.cfg.Logger.Debugf("Requesting headers from %s failed: %v", p.Addr(), err)
		return
	}
	m.resetHdrTimeout()
}

// pickNewSyncPeer starts header sync with a connected peer other than
// avoid, falling back to avoid itself only when no other peer is connected.
func (m *Manager) pickNewSyncPeer(ctx context.Context, avoid *peer.Peer) {
	for p := range m.peers {
		if p != avoid && p.State() == peer.StateConnected {
			m.startHeaderSync(p)
			return
		}
	}
	if avoid != nil && avoid.State() == peer.StateConnected {
		m.startHeaderSync(avoid)
	}
}

func (m *Manager) handleHeaders(ctx context.Context, p *peer.Peer, msg *wire.MsgHeaders) {
	if p != m.syncPeer {
		return
	}
	m.stopHdrTimeout()

	for _, bh := range msg.Headers {
		if _, err := m.cfg.Chain.PutBlockHeader(*bh); err != nil {
			m.cfg.Logger.Debugf("Dropping header from %s with unknown parent: %v", p.Addr(), err)
			continue
		}
	}

	caughtUp := m.cfg.Chain.TipIsRecent(time.Now(), tipRecentWindow)
	m.progress.LogHeaderProgress(uint64(len(msg.Headers)), caughtUp, m.headerSyncProgress)

	if err := m.cfg.Chain.SaveTip(); err != nil {
		m.cfg.Logger.Errorf("Failed to persist chain tip: %v", err)
	}

	if caughtUp {
		m.cfg.Logger.Infof("Header sync caught up to recent tip at height %d",
			m.cfg.Chain.TipHeight())
		return
	}

	locator := m.cfg.Chain.Locator()
	if err := p.SendGetHeaders(locator, chainhash.ZeroHash); err != nil {
		m.cfg.Logger.Debugf("Continuing header sync with %s failed: %v", p.Addr(), err)
		return
	}
	m.resetHdrTimeout()
}

// headerSyncProgress estimates sync completion as the fraction of time
// between genesis and now that the current tip's timestamp covers.
func (m *Manager) headerSyncProgress() float64 {
	genesis := m.cfg.Params.GenesisHeader.Timestamp
	now := time.Now().Unix()
	if now <= int64(genesis) {
		return 1
	}
	tip := m.cfg.Chain.TipTimestamp().Unix()
	frac := float64(tip-int64(genesis)) / float64(now-int64(genesis))
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

func (m *Manager) handleHdrTimeout(ctx context.Context) {
	m.hdrTimeout = nil
	if m.syncPeer == nil {
		return
	}
	m.cfg.Logger.Debugf("Header sync with %s timed out, re-dispatching to another peer",
		m.syncPeer.Addr())
	stalled := m.syncPeer
	m.syncPeer = nil
	m.pickNewSyncPeer(ctx, stalled)
}

func (m *Manager) resetHdrTimeout() {
	m.stopHdrTimeout()
	m.hdrTimeout = time.NewTimer(m.cfg.HdrTimeout)
}

func (m *Manager) stopHdrTimeout() {
	if m.hdrTimeout == nil {
		return
	}
	if !m.hdrTimeout.Stop() {
		select {
		case <-m.hdrTimeout.C:
		default:
		}
	}
	m.hdrTimeout = nil
}

// parseNetAddr converts a "host:port" string, as reported by a live
// connection's remote address, into a wire.NetAddr suitable for promoting
// an address book entry to known.
func parseNetAddr(hostport string) (wire.NetAddr, bool) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return wire.NetAddr{}, false
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return wire.NetAddr{}, false
	}
	var port uint64
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return wire.NetAddr{}, false
	}
	return wire.NewNetAddr(ip, uint16(port), 0), true
}

// handleInv requests any newly advertised block that isn't already known or
// outstanding. pendingInv dedupes so a hash repeatedly advertised by several
// peers — or the same peer twice — is only ever requested once.
func (m *Manager) handleInv(p *peer.Peer, msg *wire.MsgInv) {
	var need []*wire.InvVect
	for _, iv := range msg.InvList {
		if iv.Type != wire.InvTypeBlock {
			continue
		}
		if m.cfg.Chain.HasBlock(iv.Hash) {
			continue
		}
		if _, pending := m.pendingInv[iv.Hash]; pending {
			continue
		}
		m.pendingInv[iv.Hash] = struct{}{}
		need = append(need, iv)
	}
	if len(need) == 0 {
		return
	}
	if err := p.SendGetData(need); err != nil {
		m.cfg.Logger.Debugf("Requesting data from %s failed: %v", p.Addr(), err)
	}
}
