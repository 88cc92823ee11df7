/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package backoff implements the wait policy applied between retry rounds of
// a bulk operation: exponential growth from Initial, capped at Max, reset to
// Initial after a fully successful round.
package backoff

import (
	"context"
	"time"

	"github.com/suparena/bulkstore/errors"
)

// Config holds the tuning of a Policy.
type Config struct {
	Initial time.Duration `yaml:"initial"`
	Max     time.Duration `yaml:"max"`
	Factor  float64       `yaml:"factor"`
}

// DefaultConfig returns the default tuning: 1s initial, 30s max, factor 2.
func DefaultConfig() Config {
	return Config{
		Initial: time.Second,
		Max:     30 * time.Second,
		Factor:  2,
	}
}

// Validate checks that Initial is positive, Max is not below Initial and
// Factor does not shrink the wait.
func (c Config) Validate() error {
	if c.Initial <= 0 {
		return errors.NewValidationError("initial", "must be greater than zero")
	}
	if c.Max < c.Initial {
		return errors.NewValidationError("max", "must not be less than initial")
	}
	if c.Factor < 1 {
		return errors.NewValidationError("factor", "must be at least 1")
	}
	return nil
}

// SleepFunc suspends the caller for d, returning early with the context error
// when ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Policy is the per-call backoff state. It is not safe for concurrent use;
// each bulk call owns its own Policy.
type Policy struct {
	cfg     Config
	current time.Duration
	sleep   SleepFunc
}

// New creates a Policy in its initial state. A nil sleep uses Sleep.
func New(cfg Config, sleep SleepFunc) *Policy {
	if sleep == nil {
		sleep = Sleep
	}
	return &Policy{
		cfg:     cfg,
		current: cfg.Initial,
		sleep:   sleep,
	}
}

// Current returns the wait the next Failure will apply.
func (p *Policy) Current() time.Duration {
	return p.current
}

// Failure waits for the current backoff and then grows it by Factor, capped
// at Max.
func (p *Policy) Failure(ctx context.Context) error {
	if err := p.sleep(ctx, p.current); err != nil {
		return err
	}

	next := time.Duration(float64(p.current) * p.cfg.Factor)
	if next > p.cfg.Max || next < p.current {
		next = p.cfg.Max
	}
	p.current = next
	return nil
}

// Success resets the backoff to Initial without waiting.
func (p *Policy) Success() {
	p.current = p.cfg.Initial
}
