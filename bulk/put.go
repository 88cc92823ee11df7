/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/bulkstore/errors"
	"github.com/suparena/bulkstore/storagemodels"
)

// PutAll writes every item to table in chunks of [MaxWriteBatchSize],
// resubmitting unprocessed items until none are left.
//
// When a backend call fails, the executor's [ChunkFailurePolicy] applies.
// Under [LogAndDrop] the chunk is logged and abandoned and PutAll still
// returns nil once the queue drains. Under [Raise] the wrapped backend error
// is returned.
func (e *Executor) PutAll(ctx context.Context, table string, items []storagemodels.Item, opts ...WriteOption) error {
	units := make([]storagemodels.WriteRequest, 0, len(items))
	for _, item := range items {
		units = append(units, storagemodels.WriteRequest{
			PutRequest: &storagemodels.PutRequest{Item: item},
		})
	}
	return e.writeAll(ctx, "PutAll", table, units, opts)
}

// DeleteAll deletes every key from table with the same chunking, retry and
// failure policy as [Executor.PutAll].
func (e *Executor) DeleteAll(ctx context.Context, table string, keys []storagemodels.Key, opts ...WriteOption) error {
	units := make([]storagemodels.WriteRequest, 0, len(keys))
	for _, key := range keys {
		units = append(units, storagemodels.WriteRequest{
			DeleteRequest: &storagemodels.DeleteRequest{Key: key},
		})
	}
	return e.writeAll(ctx, "DeleteAll", table, units, opts)
}

func (e *Executor) writeAll(ctx context.Context, op, table string, units []storagemodels.WriteRequest, opts []WriteOption) error {
	if table == "" {
		return errors.NewValidationError("table", "must not be empty")
	}

	options := &writeOptions{}
	for _, o := range opts {
		o(options)
	}

	table, units, ok, err := singleTable(map[string][]storagemodels.WriteRequest{table: units})
	if err != nil {
		return err
	}
	if !ok || len(units) == 0 {
		return nil
	}

	logger := e.logger.With(zap.String("operation", op), zap.String("table", table))
	logger.Debug("start", zap.Int("units", len(units)))

	policy := e.newPolicy()
	pending := newQueue(units)
	dropped := 0

	for round := 1; pending.len() > 0; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if options.progress != nil {
			options.progress.Pending(pending.len())
		}

		chunk := pending.take(MaxWriteBatchSize)
		logger.Debug("submitting chunk",
			zap.Int("round", round),
			zap.Int("size", len(chunk)),
			zap.Int("pending", pending.len()))

		out, err := e.backend.BatchWrite(ctx, &storagemodels.BatchWriteInput{
			RequestItems: map[string][]storagemodels.WriteRequest{table: chunk},
		})
		if err != nil {
			if e.onChunkFailure == Raise {
				return errors.NewBackendCallError("BatchWrite", table, err)
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			logger.Error("dropping failed write chunk",
				zap.Error(err),
				zap.Int("round", round),
				zap.Int("size", len(chunk)),
				zap.Strings("preview", previewWrites(chunk)))
			dropped += len(chunk)
			policy.Success()
			continue
		}
		if out == nil {
			out = &storagemodels.BatchWriteOutput{}
		}

		residual := out.UnprocessedItems[table]
		pending.prepend(residual)
		if err := settle(ctx, logger, policy, len(residual)); err != nil {
			return err
		}
	}

	if dropped > 0 {
		logger.Warn("finished with dropped units", zap.Int("dropped", dropped), zap.Int("units", len(units)))
	} else {
		logger.Debug("done", zap.Int("units", len(units)))
	}
	return nil
}
