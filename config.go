// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainwatch/spvsync/internal/chaincfg"
	"github.com/chainwatch/spvsync/internal/client"
	"github.com/chainwatch/spvsync/internal/version"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "spvsync.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "spvsync.log"
)

var (
	defaultHomeDir   = appDataDir("spvsync", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(defaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// errSuppressUsage wraps an error that should not trigger printing the
// command usage message a second time; loadConfig's caller already prints
// the wrapped error itself.
type errSuppressUsage struct {
	err error
}

func (e errSuppressUsage) Error() string { return e.err.Error() }
func (e errSuppressUsage) Unwrap() error { return e.err }

// config defines the configuration options for spvsync.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	HomeDir     string `long:"homedir" description:"Path to application home directory"`
	DataDir     string `short:"b" long:"datadir" description:"Directory to store the persisted chain tip"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	NoFileLogging bool `long:"nofilelogging" description:"Disable file logging"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- Specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`

	TestNet bool `long:"testnet" description:"Use the test network"`
	RegNet  bool `long:"regnet" description:"Use the regression test network"`

	MaxPeers  int    `long:"maxpeers" description:"Max number of outbound peers"`
	UserAgent string `long:"useragent" description:"User agent comment to advertise in the version message"`

	Proxy     string `long:"proxy" description:"Connect via SOCKS5 proxy (eg. 127.0.0.1:9050)"`
	ProxyUser string `long:"proxyuser" description:"Username for proxy server"`
	ProxyPass string `long:"proxypass" description:"Password for proxy server"`

	params *chaincfg.Params
}

// netName is used to map a network to the name used in directory paths,
// distinguishing the testnet directory from the regnet directory even
// though both are frequently referred to as "testnet" colloquially.
func netName(params *chaincfg.Params) string {
	return params.Name
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	return filepath.Clean(os.ExpandEnv(path))
}

// loadConfig initializes and parses the config using command line options
// and, if present, a configuration file. It returns the parsed config, the
// command-line arguments left over after flag parsing, and any error
// encountered.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sensible settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load the configuration file overwriting defaults with any specified
//     options
//  4. Parse CLI options and overwrite/add any specified options
func loadConfig(appName string) (*config, []string, error) {
	cfg := config{
		HomeDir:    defaultHomeDir,
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		MaxPeers:   client.DefaultMaxConnections,
		UserAgent:  client.DefaultUserAgent,
	}

	// Pre-parse to pick up an alternate config file or home dir, mirroring
	// go-flags-based CLIs that must know the config path before reading it.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.Default)
	_, err := preParser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	if preCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, version.String())
		os.Exit(0)
	}

	if preCfg.HomeDir != "" {
		preCfg.HomeDir = cleanAndExpandPath(preCfg.HomeDir)
		if preCfg.HomeDir != defaultHomeDir {
			preCfg.ConfigFile = filepath.Join(preCfg.HomeDir, defaultConfigFilename)
			preCfg.DataDir = filepath.Join(preCfg.HomeDir, defaultDataDirname)
			preCfg.LogDir = filepath.Join(preCfg.HomeDir, defaultLogDirname)
		}
	}

	if _, err := os.Stat(preCfg.ConfigFile); err == nil {
		if err := flags.NewIniParser(flags.NewParser(&cfg, flags.Default)).ParseFile(preCfg.ConfigFile); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return nil, nil, errSuppressUsage{err}
			}
		}
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	if cfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, version.String())
		os.Exit(0)
	}

	if cfg.TestNet && cfg.RegNet {
		return nil, nil, errSuppressUsage{
			fmt.Errorf("the testnet and regnet params can't be used together"),
		}
	}

	switch {
	case cfg.TestNet:
		cfg.params = &chaincfg.TestNetParams
	case cfg.RegNet:
		cfg.params = &chaincfg.RegNetParams
	default:
		cfg.params = &chaincfg.MainNetParams
	}

	cfg.HomeDir = cleanAndExpandPath(cfg.HomeDir)
	if cfg.HomeDir != defaultHomeDir {
		// A custom home dir was supplied; re-root any path left at its
		// default rather than the stale path derived from defaultHomeDir.
		if cfg.DataDir == defaultDataDir {
			cfg.DataDir = filepath.Join(cfg.HomeDir, defaultDataDirname)
		}
		if cfg.LogDir == defaultLogDir {
			cfg.LogDir = filepath.Join(cfg.HomeDir, defaultLogDirname)
		}
	}
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfg.DataDir), netName(cfg.params))
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir), netName(cfg.params))

	if cfg.MaxPeers <= 0 {
		cfg.MaxPeers = client.DefaultMaxConnections
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, errSuppressUsage{
			fmt.Errorf("unable to create data directory: %w", err),
		}
	}

	initLogRotator(cfg)

	setLogLevels(defaultLogLevel)
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, nil, errSuppressUsage{err}
	}

	return &cfg, remainingArgs, nil
}

// parseAndSetDebugLevels parses the debug level string, either a single
// level applied to every subsystem or a comma-separated list of
// subsystem=level pairs, and applies it via setLogLevel/setLogLevels.
func parseAndSetDebugLevels(debugLevel string) error {
	levelValid := func(level string) bool {
		switch level {
		case "trace", "debug", "info", "warn", "error", "critical":
			return true
		}
		return false
	}

	if levelValid(debugLevel) {
		setLogLevels(debugLevel)
		return nil
	}

	for _, pair := range strings.Split(debugLevel, ",") {
		fields := strings.Split(pair, "=")
		if len(fields) != 2 {
			return fmt.Errorf("the specified debug level contains an invalid "+
				"subsystem/level pair %q", pair)
		}
		subsysID, level := fields[0], fields[1]
		if !levelValid(level) {
			return fmt.Errorf("the specified debug level %q is invalid", level)
		}
		setLogLevel(subsysID, level)
	}

	return nil
}
