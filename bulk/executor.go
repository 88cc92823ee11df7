/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suparena/bulkstore/backoff"
	"github.com/suparena/bulkstore/datastore"
	"github.com/suparena/bulkstore/errors"
)

const (
	// MaxGetBatchSize is the maximum number of keys per backend batch get.
	MaxGetBatchSize = 100

	// MaxWriteBatchSize is the maximum number of write requests per backend
	// batch write.
	MaxWriteBatchSize = 25
)

// Executor runs bulk operations against a [datastore.Backend]. Each call is
// sequential: at most one backend request is in flight per call. An Executor
// is safe for concurrent use; concurrent calls share nothing but the backoff
// tuning.
type Executor struct {
	backend        datastore.Backend
	logger         *zap.Logger
	onChunkFailure ChunkFailurePolicy
	sleep          backoff.SleepFunc

	mu     sync.RWMutex
	tuning backoff.Config
}

// New creates an Executor for backend.
func New(backend datastore.Backend, opts ...Option) (*Executor, error) {
	if backend == nil {
		return nil, errors.NewValidationError("backend", "must not be nil")
	}

	options := newOptions()
	for _, o := range opts {
		o(options)
	}

	if err := options.validate(); err != nil {
		return nil, fmt.Errorf("invalid executor options: %w", err)
	}

	return &Executor{
		backend:        backend,
		logger:         options.logger,
		onChunkFailure: options.onChunkFailure,
		sleep:          options.sleep,
		tuning:         options.backoff,
	}, nil
}

// Tuning overrides backoff settings. Zero fields leave the current value
// unchanged.
type Tuning struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64
}

// Configure merges t into the backoff tuning. Calls already running keep the
// tuning they started with.
func (e *Executor) Configure(t Tuning) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.tuning
	if t.Initial != 0 {
		next.Initial = t.Initial
	}
	if t.Max != 0 {
		next.Max = t.Max
	}
	if t.Factor != 0 {
		next.Factor = t.Factor
	}

	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid backoff tuning: %w", err)
	}

	e.tuning = next
	e.logger.Debug("backoff tuning changed",
		zap.Duration("initial", next.Initial),
		zap.Duration("max", next.Max),
		zap.Float64("factor", next.Factor))
	return nil
}

// Tuning returns the current backoff tuning.
func (e *Executor) Tuning() backoff.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tuning
}

// Logger returns the executor's logger.
func (e *Executor) Logger() *zap.Logger {
	return e.logger
}

func (e *Executor) newPolicy() *backoff.Policy {
	return backoff.New(e.Tuning(), e.sleep)
}

// settle applies the backoff transition for a finished round.
func settle(ctx context.Context, logger *zap.Logger, policy *backoff.Policy, residual int) error {
	if residual == 0 {
		policy.Success()
		return nil
	}

	logger.Warn("backend left units unprocessed",
		zap.Int("unprocessed", residual),
		zap.Duration("backoff", policy.Current()))
	return policy.Failure(ctx)
}

// singleTable returns the only entry of a table-keyed request map. ok is false
// for an empty map.
func singleTable[V any](requestItems map[string]V) (table string, value V, ok bool, err error) {
	if len(requestItems) > 1 {
		tables := make([]string, 0, len(requestItems))
		for t := range requestItems {
			tables = append(tables, t)
		}
		return "", value, false, errors.NewUnsupportedMultiTableError(tables)
	}

	for t, v := range requestItems {
		return t, v, true, nil
	}
	return "", value, false, nil
}
