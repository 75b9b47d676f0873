// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// logRotator is one of the logging outputs. It should be closed on
// application shutdown.
var logRotator *rotator.Rotator

// logWriter implements an io.Writer that outputs to both standard output and
// the log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// backendLog is the logging backend used to create all subsystem loggers.
var backendLog = slog.NewBackend(logWriter{})

// subsystemLoggers maps each subsystem identifier to its logger so debug
// levels can be set on individual subsystems.
var subsystemLoggers = make(map[string]slog.Logger)

var (
	spvsyncLog = backendLog.Logger("SPVS")
	clientLog  = backendLog.Logger("CMGR")
	peerLog    = backendLog.Logger("PEER")
	wireLog    = backendLog.Logger("WIRE")
	chainLog   = backendLog.Logger("CHAN")
	addrLog    = backendLog.Logger("ADXR")
)

func init() {
	subsystemLoggers["SPVS"] = spvsyncLog
	subsystemLoggers["CMGR"] = clientLog
	subsystemLoggers["PEER"] = peerLog
	subsystemLoggers["WIRE"] = wireLog
	subsystemLoggers["CHAN"] = chainLog
	subsystemLoggers["ADXR"] = addrLog
}

// initLogRotator initializes the logging rotator to write logs to the
// configured log directory, unless file logging has been disabled.
func initLogRotator(cfg config) {
	if cfg.NoFileLogging {
		return
	}

	if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		os.Exit(1)
	}

	logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log rotator: %v\n", err)
		os.Exit(1)
	}
	logRotator = r
}

// setLogLevel sets the logging level for the logger associated with the
// named subsystem. Invalid subsystems are ignored.
func setLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	level, ok := slog.LevelFromString(logLevel)
	if !ok {
		return
	}
	logger.SetLevel(level)
}

// setLogLevels sets the logging level for every registered subsystem logger.
func setLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, logLevel)
	}
}

// discardLogger is a logger satisfying slog.Logger that writes nowhere,
// touching neither stdout nor the log rotator.
var discardLogger = slog.NewBackend(io.Discard).Logger("TEST")
