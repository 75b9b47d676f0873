// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"
	"testing"

	"github.com/chainwatch/spvsync/internal/chaincfg"
)

// setup clears os.Args of the testing package's own flags so loadConfig,
// which parses os.Args itself via go-flags, sees only what each test adds.
func setup() {
	flag.Parse()
	os.Args = os.Args[:1]
}

func TestLoadConfigDefaults(t *testing.T) {
	setup()
	cfg, _, err := loadConfig("spvsync")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.params.Name != chaincfg.MainNetParams.Name {
		t.Errorf("default network = %s, want %s", cfg.params.Name, chaincfg.MainNetParams.Name)
	}
	if cfg.MaxPeers <= 0 {
		t.Errorf("MaxPeers = %d, want a positive default", cfg.MaxPeers)
	}
}

func TestLoadConfigTestNet(t *testing.T) {
	setup()
	old := os.Args
	os.Args = append(os.Args, "--testnet")
	defer func() { os.Args = old }()

	cfg, _, err := loadConfig("spvsync")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.params.Name != chaincfg.TestNetParams.Name {
		t.Errorf("network = %s, want %s", cfg.params.Name, chaincfg.TestNetParams.Name)
	}
}

func TestLoadConfigRejectsConflictingNetworks(t *testing.T) {
	setup()
	old := os.Args
	os.Args = append(os.Args, "--testnet", "--regnet")
	defer func() { os.Args = old }()

	if _, _, err := loadConfig("spvsync"); err == nil {
		t.Fatal("expected an error when both --testnet and --regnet are set")
	}
}

func TestLoadConfigMaxPeers(t *testing.T) {
	setup()
	old := os.Args
	os.Args = append(os.Args, "--maxpeers=3")
	defer func() { os.Args = old }()

	cfg, _, err := loadConfig("spvsync")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.MaxPeers != 3 {
		t.Errorf("MaxPeers = %d, want 3", cfg.MaxPeers)
	}
}
