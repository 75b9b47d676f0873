// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the network parameters a client needs in order
// to speak to a particular chain: its wire magic, default port, DNS seeds,
// genesis header, and the protocol version it advertises.
package chaincfg

import (
	"fmt"

	"github.com/chainwatch/spvsync/internal/chainhash"
	"github.com/chainwatch/spvsync/internal/wire"
)

// DNSSeed identifies a DNS seed host used to bootstrap peer discovery.
type DNSSeed struct {
	Host string
}

// Params defines the network parameters for a specific chain the client can
// be configured to follow.
type Params struct {
	Name          string
	Net           wire.CurrencyNet
	DefaultPort   string
	DNSSeeds      []DNSSeed
	GenesisHeader wire.BlockHeader
	PowLimitBits  uint32

	// ProtocolVersion is the version number advertised in this client's
	// own version message.
	ProtocolVersion uint32
}

// GenesisHash returns the hash of the network's genesis block header, the
// value every header chain must ultimately trace back to.
func (p *Params) GenesisHash() chainhash.Hash {
	h := p.GenesisHeader
	return h.BlockHash()
}

// MainNetParams defines the parameters for the production network.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         wire.MainNet,
	DefaultPort: "8333",
	DNSSeeds: []DNSSeed{
		{Host: "seed.chainwatch.example"},
		{Host: "seed2.chainwatch.example"},
	},
	GenesisHeader: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.ZeroHash,
		MerkleRoot: mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33"),
		Timestamp:  1231006505,
		Bits:       0x1d00ffff,
		Nonce:      2083236893,
	},
	PowLimitBits:    0x1d00ffff,
	ProtocolVersion: 70001,
}

// TestNetParams defines the parameters for the public test network.
var TestNetParams = Params{
	Name:        "testnet",
	Net:         wire.TestNet,
	DefaultPort: "18333",
	DNSSeeds: []DNSSeed{
		{Host: "testnet-seed.chainwatch.example"},
	},
	GenesisHeader: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.ZeroHash,
		MerkleRoot: mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33"),
		Timestamp:  1296688602,
		Bits:       0x1d00ffff,
		Nonce:      414098458,
	},
	PowLimitBits:    0x1d00ffff,
	ProtocolVersion: 70001,
}

// RegNetParams defines the parameters for a private, local regression test
// network with no DNS seeds and a trivial proof-of-work limit.
var RegNetParams = Params{
	Name:        "regnet",
	Net:         wire.RegNet,
	DefaultPort: "18444",
	DNSSeeds:    nil,
	GenesisHeader: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.ZeroHash,
		MerkleRoot: mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33"),
		Timestamp:  1296688602,
		Bits:       0x207fffff,
		Nonce:      0,
	},
	PowLimitBits:    0x207fffff,
	ProtocolVersion: 70001,
}

func mustHash(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return *h
}

// ByName returns the Params registered under name, or an error if the name
// is not recognized.
func ByName(name string) (*Params, error) {
	switch name {
	case MainNetParams.Name:
		return &MainNetParams, nil
	case TestNetParams.Name:
		return &TestNetParams, nil
	case RegNetParams.Name:
		return &RegNetParams, nil
	default:
		return nil, fmt.Errorf("chaincfg: unknown network %q", name)
	}
}
