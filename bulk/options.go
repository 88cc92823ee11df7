/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/suparena/bulkstore/backoff"
	"github.com/suparena/bulkstore/errors"
)

// ChunkFailurePolicy decides what a bulk write does when the backend call for
// a chunk returns an error.
type ChunkFailurePolicy int

const (
	// LogAndDrop logs the failed chunk and continues with the next one. The
	// chunk is neither retried nor reported to the caller.
	LogAndDrop ChunkFailurePolicy = iota
	// Raise aborts the bulk write and returns the backend error.
	Raise
)

func (p ChunkFailurePolicy) String() string {
	switch p {
	case LogAndDrop:
		return "logAndDrop"
	case Raise:
		return "raise"
	default:
		return fmt.Sprintf("ChunkFailurePolicy(%d)", int(p))
	}
}

// ParseChunkFailurePolicy parses "logAndDrop" or "raise", case-insensitively.
func ParseChunkFailurePolicy(s string) (ChunkFailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loganddrop", "log_and_drop", "":
		return LogAndDrop, nil
	case "raise":
		return Raise, nil
	default:
		return LogAndDrop, errors.NewValidationError("onChunkFailure", fmt.Sprintf("unknown policy %q", s))
	}
}

// Option is a functional option for configuring an [Executor].
type Option func(*Options)

// Options holds the configuration of an [Executor].
type Options struct {
	logger         *zap.Logger
	backoff        backoff.Config
	onChunkFailure ChunkFailurePolicy
	sleep          backoff.SleepFunc
}

func newOptions() *Options {
	return &Options{
		logger:         zap.NewNop(),
		backoff:        backoff.DefaultConfig(),
		onChunkFailure: LogAndDrop,
		sleep:          backoff.Sleep,
	}
}

func (o *Options) validate() error {
	if o.logger == nil {
		return errors.NewValidationError("logger", "must not be nil")
	}
	if o.sleep == nil {
		return errors.NewValidationError("sleep", "must not be nil")
	}
	if o.onChunkFailure != LogAndDrop && o.onChunkFailure != Raise {
		return errors.NewValidationError("onChunkFailure", fmt.Sprintf("unknown policy %s", o.onChunkFailure))
	}
	return o.backoff.Validate()
}

// WithLogger sets the logger receiving round, residual and dropped-chunk
// events. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithBackoff sets the initial backoff tuning. It can be changed later with
// [Executor.Configure].
func WithBackoff(cfg backoff.Config) Option {
	return func(o *Options) {
		o.backoff = cfg
	}
}

// WithChunkFailurePolicy sets how bulk writes react to a failed backend call.
// The default is [LogAndDrop].
func WithChunkFailurePolicy(p ChunkFailurePolicy) Option {
	return func(o *Options) {
		o.onChunkFailure = p
	}
}

// WithSleepFunc replaces the backoff wait. This is useful for controlling
// time in tests.
func WithSleepFunc(sleep backoff.SleepFunc) Option {
	return func(o *Options) {
		o.sleep = sleep
	}
}

// WriteOption configures a single PutAll or DeleteAll call.
type WriteOption func(*writeOptions)

type writeOptions struct {
	progress ProgressObserver
}

// WithProgress registers an observer told the pending unit count once per
// round, before the backend call. Calls to observer are serialized across
// every bulk call the returned option is passed to, so one option can be
// shared by concurrent writes.
func WithProgress(observer ProgressObserver) WriteOption {
	if observer == nil {
		return func(*writeOptions) {}
	}
	locked := &lockedProgress{observer: observer}
	return func(o *writeOptions) {
		o.progress = locked
	}
}
