/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"sync"

	"go.uber.org/zap"
)

// ProgressObserver is told how many units are still pending at the start of
// every write round.
type ProgressObserver interface {
	Pending(count int)
}

// ProgressFunc adapts a function to ProgressObserver.
type ProgressFunc func(count int)

func (f ProgressFunc) Pending(count int) {
	f(count)
}

type lockedProgress struct {
	mu       sync.Mutex
	observer ProgressObserver
}

func (l *lockedProgress) Pending(count int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observer.Pending(count)
}

type logProgress struct {
	logger *zap.Logger
}

// LogProgress returns an observer that logs pending counts at debug level.
func LogProgress(logger *zap.Logger) ProgressObserver {
	return logProgress{logger: logger}
}

func (l logProgress) Pending(count int) {
	l.logger.Debug("bulk write progress", zap.Int("pending", count))
}
