// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"sync"
	"time"

	"github.com/decred/slog"
)

// Logger provides periodic logging of progress towards header sync.
type Logger struct {
	sync.Mutex
	subsystemLogger slog.Logger
	progressAction  string

	// lastLogTime tracks the last time a log statement was shown.
	lastLogTime time.Time

	// receivedHeaders accumulates the number of headers processed since
	// the last log statement.
	receivedHeaders uint64
}

// New returns a new header sync progress logger.
func New(progressAction string, logger slog.Logger) *Logger {
	return &Logger{
		lastLogTime:     time.Now(),
		progressAction:  progressAction,
		subsystemLogger: logger,
	}
}

// LogHeaderProgress accumulates numHeaders newly processed headers and
// periodically (every 10 seconds, or immediately once forceLog is set)
// logs an information message showing how far through header sync the
// client has progressed. progressFn returns a fraction in [0,1] estimating
// overall sync completion, typically derived by comparing the newest
// header's timestamp against the current time.
func (l *Logger) LogHeaderProgress(numHeaders uint64, forceLog bool, progressFn func() float64) {
	l.Lock()
	defer l.Unlock()

	l.receivedHeaders += numHeaders
	now := time.Now()
	duration := now.Sub(l.lastLogTime)
	if !forceLog && duration < time.Second*10 {
		return
	}

	noun := "headers"
	if l.receivedHeaders == 1 {
		noun = "header"
	}
	l.subsystemLogger.Infof("%s %d %s in the last %0.2fs (%.2f%% complete)",
		l.progressAction, l.receivedHeaders, noun, duration.Seconds(),
		progressFn()*100)

	l.receivedHeaders = 0
	l.lastLogTime = now
}

// SetLastLogTime updates the last time data was logged to the provided time.
func (l *Logger) SetLastLogTime(time time.Time) {
	l.Lock()
	l.lastLogTime = time
	l.Unlock()
}
