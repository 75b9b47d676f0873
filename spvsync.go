// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/chainwatch/spvsync/internal/addrmgr"
	"github.com/chainwatch/spvsync/internal/chain"
	"github.com/chainwatch/spvsync/internal/client"
	"github.com/chainwatch/spvsync/internal/dialer"
	"github.com/chainwatch/spvsync/internal/tipstore"
	"github.com/chainwatch/spvsync/internal/version"
)

// spvsyncMain is the real main function. It is necessary to work around the
// fact that deferred functions do not run when os.Exit() is called.
func spvsyncMain() error {
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))

	cfg, _, err := loadConfig(appName)
	if err != nil {
		usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
		fmt.Fprintln(os.Stderr, err)
		var e errSuppressUsage
		if !errors.As(err, &e) {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	ctx := shutdownListener()
	defer spvsyncLog.Info("Shutdown complete")

	spvsyncLog.Infof("Version %s (Go version %s %s/%s)", version.String(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
	spvsyncLog.Infof("Home dir: %s", cfg.HomeDir)
	spvsyncLog.Infof("Network: %s", cfg.params.Name)
	if cfg.NoFileLogging {
		spvsyncLog.Info("File logging disabled")
	}

	store, err := tipstore.Open(cfg.DataDir)
	if err != nil {
		spvsyncLog.Errorf("Unable to open tip store: %v", err)
		return err
	}
	defer func() {
		spvsyncLog.Info("Closing tip store...")
		store.Close()
	}()

	if shutdownRequested(ctx) {
		return nil
	}

	chn := chain.New(cfg.params, store)
	addrMgr := addrmgr.New()

	var dial dialer.Dialer
	if cfg.Proxy != "" {
		dial = dialer.NewSocks5(cfg.Proxy, cfg.ProxyUser, cfg.ProxyPass)
		spvsyncLog.Infof("Dialing peers through SOCKS5 proxy %s", cfg.Proxy)
	} else {
		dial = dialer.NewDirect(client.DefaultConnectTimeout)
	}

	mgr := client.New(client.Config{
		Params:          cfg.params,
		MaxConnections:  cfg.MaxPeers,
		UserAgent:       cfg.UserAgent,
		ProtocolVersion: cfg.params.ProtocolVersion,
		Dialer:          dial,
		Chain:           chn,
		AddrMgr:         addrMgr,
		TipStore:        store,
		Logger:          clientLog,
	})

	if shutdownRequested(ctx) {
		return nil
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- mgr.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		mgr.Shutdown()
		<-runErr
	case err := <-runErr:
		if err != nil {
			spvsyncLog.Errorf("Client manager exited: %v", err)
		}
	}

	return nil
}

func main() {
	if err := spvsyncMain(); err != nil {
		os.Exit(1)
	}
}
