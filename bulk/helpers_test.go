/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suparena/bulkstore/datastore"
	"github.com/suparena/bulkstore/storagemodels"
)

// recordingSleeper replaces the backoff wait and records every duration.
type recordingSleeper struct {
	mu    sync.Mutex
	waits []time.Duration
	hook  func(d time.Duration)
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.waits = append(r.waits, d)
	hook := r.hook
	r.mu.Unlock()

	if hook != nil {
		hook(d)
	}
	return ctx.Err()
}

func (r *recordingSleeper) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.waits...)
}

func newTestExecutor(t *testing.T, backend datastore.Backend, opts ...Option) (*Executor, *recordingSleeper, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	sleeper := &recordingSleeper{}

	all := append([]Option{
		WithLogger(zap.New(core)),
		WithSleepFunc(sleeper.sleep),
	}, opts...)

	exec, err := New(backend, all...)
	require.NoError(t, err)
	return exec, sleeper, logs
}

func testKey(i int) storagemodels.Key {
	return storagemodels.Key{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("ITEM#%04d", i)},
		"SK": &types.AttributeValueMemberS{Value: "META"},
	}
}

func testItem(i int) storagemodels.Item {
	item := testKey(i)
	item["Payload"] = &types.AttributeValueMemberN{Value: fmt.Sprint(i)}
	return item
}

func testKeys(n int) []storagemodels.Key {
	keys := make([]storagemodels.Key, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, testKey(i))
	}
	return keys
}

func testItems(n int) []storagemodels.Item {
	items := make([]storagemodels.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, testItem(i))
	}
	return items
}

// funcBackend is a datastore.Backend whose methods are plain function fields.
type funcBackend struct {
	batchGetFunc   func(ctx context.Context, input *storagemodels.BatchGetInput) (*storagemodels.BatchGetOutput, error)
	batchWriteFunc func(ctx context.Context, input *storagemodels.BatchWriteInput) (*storagemodels.BatchWriteOutput, error)
	scanFunc       func(ctx context.Context, input *storagemodels.ScanInput) (*storagemodels.ScanOutput, error)
}

func (f *funcBackend) BatchGet(ctx context.Context, input *storagemodels.BatchGetInput) (*storagemodels.BatchGetOutput, error) {
	if f.batchGetFunc != nil {
		return f.batchGetFunc(ctx, input)
	}
	return &storagemodels.BatchGetOutput{}, nil
}

func (f *funcBackend) BatchWrite(ctx context.Context, input *storagemodels.BatchWriteInput) (*storagemodels.BatchWriteOutput, error) {
	if f.batchWriteFunc != nil {
		return f.batchWriteFunc(ctx, input)
	}
	return &storagemodels.BatchWriteOutput{}, nil
}

func (f *funcBackend) Scan(ctx context.Context, input *storagemodels.ScanInput) (*storagemodels.ScanOutput, error) {
	if f.scanFunc != nil {
		return f.scanFunc(ctx, input)
	}
	return &storagemodels.ScanOutput{}, nil
}
