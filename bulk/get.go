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

// GetAll reads every key of req, in chunks of [MaxGetBatchSize], resubmitting
// unprocessed keys until none are left. The request must target exactly one
// table. Records are returned in backend order; missing keys are simply
// absent from the result.
//
// A backend error aborts the call and is returned as a
// [errors.BackendCallError]; records read so far are discarded.
func (e *Executor) GetAll(ctx context.Context, req *storagemodels.BatchGetRequest) ([]storagemodels.Record, error) {
	if req == nil {
		return nil, errors.NewValidationError("request", "must not be nil")
	}

	table, target, ok, err := singleTable(req.RequestItems)
	if err != nil {
		return nil, err
	}
	if !ok || len(target.Keys) == 0 {
		return []storagemodels.Record{}, nil
	}

	logger := e.logger.With(zap.String("operation", "GetAll"), zap.String("table", table))
	logger.Debug("start", zap.Int("keys", len(target.Keys)))

	policy := e.newPolicy()
	pending := newQueue(target.Keys)
	records := make([]storagemodels.Record, 0, len(target.Keys))

	for round := 1; pending.len() > 0; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunk := pending.take(MaxGetBatchSize)
		logger.Debug("submitting chunk",
			zap.Int("round", round),
			zap.Int("size", len(chunk)),
			zap.Int("pending", pending.len()))

		out, err := e.backend.BatchGet(ctx, &storagemodels.BatchGetInput{
			RequestItems: map[string]storagemodels.KeysAndOptions{
				table: target.WithKeys(chunk),
			},
		})
		if err != nil {
			return nil, errors.NewBackendCallError("BatchGet", table, err)
		}
		if out == nil {
			out = &storagemodels.BatchGetOutput{}
		}

		for _, rs := range out.Responses {
			records = append(records, rs...)
		}

		residual := out.UnprocessedKeys[table].Keys
		pending.prepend(residual)
		if err := settle(ctx, logger, policy, len(residual)); err != nil {
			return nil, err
		}
	}

	logger.Debug("done", zap.Int("records", len(records)))
	return records, nil
}
