/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulkstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/bulkstore/bulk"
	"github.com/suparena/bulkstore/config"
	"github.com/suparena/bulkstore/datastore"
	"github.com/suparena/bulkstore/datastore/ddb"
	"github.com/suparena/bulkstore/errors"
	"github.com/suparena/bulkstore/storagemodels"
)

// Store binds a bulk executor to a default table.
type Store struct {
	exec   *bulk.Executor
	table  string
	logger *zap.Logger
}

// New creates a Store over backend. Options are passed to the executor.
func New(backend datastore.Backend, table string, opts ...bulk.Option) (*Store, error) {
	if table == "" {
		return nil, errors.NewValidationError("table", "table name is required")
	}

	exec, err := bulk.New(backend, opts...)
	if err != nil {
		return nil, err
	}

	return &Store{
		exec:   exec,
		table:  table,
		logger: exec.Logger(),
	}, nil
}

// NewFromConfig creates a DynamoDB-backed Store from cfg.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	client, err := ddb.NewDynamoDBClient(ctx, ddb.ClientConfig{
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKey,
		SecretKey: cfg.AWS.SecretKey,
		Endpoint:  cfg.AWS.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	return New(ddb.NewBackend(client), cfg.Table,
		bulk.WithLogger(logger),
		bulk.WithBackoff(cfg.Backoff),
		bulk.WithChunkFailurePolicy(cfg.ChunkFailurePolicy()),
	)
}

// Executor returns the underlying executor, for calls against other tables.
func (s *Store) Executor() *bulk.Executor {
	return s.exec
}

// Table returns the default table.
func (s *Store) Table() string {
	return s.table
}

// Configure adjusts the backoff tuning of subsequent calls.
func (s *Store) Configure(t bulk.Tuning) error {
	return s.exec.Configure(t)
}

// Get fetches keys from the default table.
func (s *Store) Get(ctx context.Context, keys []storagemodels.Key, opts ...storagemodels.GetOption) ([]storagemodels.Record, error) {
	return s.exec.GetAll(ctx, storagemodels.NewBatchGetRequest(s.table, keys, opts...))
}

// Put writes items to the default table.
func (s *Store) Put(ctx context.Context, items []storagemodels.Item, opts ...bulk.WriteOption) error {
	return s.exec.PutAll(ctx, s.table, items, opts...)
}

// Delete removes keys from the default table.
func (s *Store) Delete(ctx context.Context, keys []storagemodels.Key, opts ...bulk.WriteOption) error {
	return s.exec.DeleteAll(ctx, s.table, keys, opts...)
}

// Scan reads the whole default table. A non-nil req supplies filters and
// projections; its TableName is ignored.
func (s *Store) Scan(ctx context.Context, req *storagemodels.ScanRequest) ([]storagemodels.Record, error) {
	return s.exec.ScanAll(ctx, s.scanRequest(req))
}

// ScanEach streams the default table to fn.
func (s *Store) ScanEach(ctx context.Context, req *storagemodels.ScanRequest, fn func(storagemodels.Record) error) error {
	return s.exec.ScanEach(ctx, s.scanRequest(req), fn)
}

func (s *Store) scanRequest(req *storagemodels.ScanRequest) *storagemodels.ScanRequest {
	r := storagemodels.ScanRequest{}
	if req != nil {
		r = *req
	}
	r.TableName = s.table
	return &r
}

// PutTables writes several tables concurrently, one single-table PutAll per
// table. The first failure cancels the remaining writes. A progress observer
// in opts is shared by all tables; bulk.WithProgress serializes its calls.
func (s *Store) PutTables(ctx context.Context, batches map[string][]storagemodels.Item, opts ...bulk.WriteOption) error {
	g, gctx := errgroup.WithContext(ctx)
	for table, items := range batches {
		table, items := table, items
		g.Go(func() error {
			if err := s.exec.PutAll(gctx, table, items, opts...); err != nil {
				return fmt.Errorf("table %s: %w", table, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Debug("tables written", zap.Int("tables", len(batches)))
	return nil
}
