/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/bulkstore/errors"
)

type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

func TestPolicyGrowsAndCaps(t *testing.T) {
	rec := &recordingSleeper{}
	p := New(Config{Initial: time.Second, Max: 30 * time.Second, Factor: 2}, rec.sleep)

	for i := 0; i < 6; i++ {
		require.NoError(t, p.Failure(context.Background()))
	}

	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
	}, rec.waits)
	assert.Equal(t, 30*time.Second, p.Current())
}

func TestPolicySuccessResets(t *testing.T) {
	rec := &recordingSleeper{}
	p := New(DefaultConfig(), rec.sleep)

	require.NoError(t, p.Failure(context.Background()))
	require.NoError(t, p.Failure(context.Background()))
	assert.Equal(t, 4*time.Second, p.Current())

	p.Success()
	assert.Equal(t, time.Second, p.Current())

	require.NoError(t, p.Failure(context.Background()))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, time.Second}, rec.waits)
}

func TestPolicySuccessDoesNotWait(t *testing.T) {
	rec := &recordingSleeper{}
	p := New(DefaultConfig(), rec.sleep)

	p.Success()
	p.Success()

	assert.Empty(t, rec.waits)
}

func TestPolicyFractionalFactor(t *testing.T) {
	rec := &recordingSleeper{}
	p := New(Config{Initial: 100 * time.Millisecond, Max: time.Second, Factor: 1.5}, rec.sleep)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Failure(context.Background()))
	}

	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		150 * time.Millisecond,
		225 * time.Millisecond,
	}, rec.waits)
}

func TestPolicyFailureCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(DefaultConfig(), nil)
	err := p.Failure(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, time.Second, p.Current(), "backoff must not grow when the wait was interrupted")
}

func TestSleepReturnsAfterDuration(t *testing.T) {
	start := time.Now()
	require.NoError(t, Sleep(context.Background(), 5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "zero initial", cfg: Config{Initial: 0, Max: time.Second, Factor: 2}, field: "initial"},
		{name: "max below initial", cfg: Config{Initial: time.Second, Max: time.Millisecond, Factor: 2}, field: "max"},
		{name: "shrinking factor", cfg: Config{Initial: time.Second, Max: time.Second, Factor: 0.5}, field: "factor"},
		{name: "constant wait", cfg: Config{Initial: time.Second, Max: time.Second, Factor: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.True(t, errors.IsValidationError(err))
			var vErr *errors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
