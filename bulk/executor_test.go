/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suparena/bulkstore/backoff"
	"github.com/suparena/bulkstore/datastore/mock"
	"github.com/suparena/bulkstore/errors"
	"github.com/suparena/bulkstore/storagemodels"
)

func TestNew_NilBackend(t *testing.T) {
	_, err := New(nil)

	assert.True(t, errors.IsValidationError(err))
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "nil logger", opt: WithLogger(nil)},
		{name: "nil sleep", opt: WithSleepFunc(nil)},
		{name: "bad backoff", opt: WithBackoff(backoff.Config{Initial: time.Second, Max: time.Millisecond, Factor: 2})},
		{name: "unknown policy", opt: WithChunkFailurePolicy(ChunkFailurePolicy(7))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(mock.New(), tt.opt)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	exec, err := New(mock.New())

	require.NoError(t, err)
	assert.Equal(t, backoff.DefaultConfig(), exec.Tuning())
	assert.Equal(t, LogAndDrop, exec.onChunkFailure)
}

func TestConfigure_MergesNonZeroFields(t *testing.T) {
	exec, err := New(mock.New())
	require.NoError(t, err)

	require.NoError(t, exec.Configure(Tuning{Initial: 200 * time.Millisecond}))
	assert.Equal(t, backoff.Config{Initial: 200 * time.Millisecond, Max: 30 * time.Second, Factor: 2}, exec.Tuning())

	require.NoError(t, exec.Configure(Tuning{Max: 5 * time.Second, Factor: 3}))
	assert.Equal(t, backoff.Config{Initial: 200 * time.Millisecond, Max: 5 * time.Second, Factor: 3}, exec.Tuning())
}

func TestConfigure_RejectsInvalidTuning(t *testing.T) {
	exec, err := New(mock.New())
	require.NoError(t, err)

	err = exec.Configure(Tuning{Max: time.Millisecond})

	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, backoff.DefaultConfig(), exec.Tuning(), "a rejected tuning leaves the old one in place")
}

func TestConfigure_AppliesToNextCallOnly(t *testing.T) {
	backend := mock.New().WithGetUnprocessedFunc(func(round int, keys []storagemodels.Key) []storagemodels.Key {
		if round <= 3 {
			return keys[:1]
		}
		return nil
	})
	backend.SetItems("items", testItems(3))
	exec, sleeper, _ := newTestExecutor(t, backend)

	configured := false
	sleeper.hook = func(time.Duration) {
		if !configured {
			configured = true
			require.NoError(t, exec.Configure(Tuning{Initial: 5 * time.Second, Max: time.Minute}))
		}
	}

	_, err := exec.GetAll(context.Background(), storagemodels.NewBatchGetRequest("items", testKeys(3)))
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sleeper.recorded())

	backend.Clear()
	backend.SetItems("items", testItems(3))
	sleeper.waits = nil

	_, err = exec.GetAll(context.Background(), storagemodels.NewBatchGetRequest("items", testKeys(3)))
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second, 20 * time.Second}, sleeper.recorded())
}

func TestExecutor_ConcurrentCalls(t *testing.T) {
	backend := mock.New()
	exec, err := New(backend, WithSleepFunc(func(context.Context, time.Duration) error { return nil }))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			items := testItems(30)
			for _, item := range items {
				item["Worker"] = testKey(i)["PK"]
			}
			assert.NoError(t, exec.PutAll(context.Background(), "items", items))
			assert.NoError(t, exec.Configure(Tuning{Factor: float64(2 + i%2)}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 30, backend.Count("items"))
	assert.Len(t, backend.WriteInputs(), 16)
}

func TestParseChunkFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ChunkFailurePolicy
		wantErr bool
	}{
		{in: "logAndDrop", want: LogAndDrop},
		{in: "LOG_AND_DROP", want: LogAndDrop},
		{in: "", want: LogAndDrop},
		{in: "raise", want: Raise},
		{in: " Raise ", want: Raise},
		{in: "retry", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChunkFailurePolicy(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.String(), mustRoundTrip(t, got))
		})
	}
}

func mustRoundTrip(t *testing.T, p ChunkFailurePolicy) string {
	t.Helper()
	parsed, err := ParseChunkFailurePolicy(p.String())
	require.NoError(t, err)
	return parsed.String()
}

func TestLogProgress(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	LogProgress(zap.New(core)).Pending(42)

	entries := logs.FilterMessage("bulk write progress").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(42), entries[0].ContextMap()["pending"])
}
