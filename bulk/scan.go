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

// ScanAll walks the scan page by page, following LastEvaluatedKey until the
// backend stops returning one, and returns every record. Scans are not
// retried; a backend error is returned as a [errors.BackendCallError].
func (e *Executor) ScanAll(ctx context.Context, req *storagemodels.ScanRequest) ([]storagemodels.Record, error) {
	var records []storagemodels.Record
	err := e.ScanEach(ctx, req, func(r storagemodels.Record) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []storagemodels.Record{}
	}
	return records, nil
}

// ScanEach walks the scan like [Executor.ScanAll] but hands each record to fn
// as its page arrives. An error from fn stops the walk and is returned as is.
func (e *Executor) ScanEach(ctx context.Context, req *storagemodels.ScanRequest, fn func(storagemodels.Record) error) error {
	if req == nil {
		return errors.NewValidationError("request", "must not be nil")
	}
	if req.TableName == "" {
		return errors.NewValidationError("table", "must not be empty")
	}

	logger := e.logger.With(zap.String("operation", "ScanAll"), zap.String("table", req.TableName))
	input := &storagemodels.ScanInput{ScanRequest: *req}
	total := 0

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		out, err := e.backend.Scan(ctx, input)
		if err != nil {
			return errors.NewBackendCallError("Scan", req.TableName, err)
		}
		if out == nil {
			out = &storagemodels.ScanOutput{}
		}

		for _, item := range out.Items {
			if err := fn(item); err != nil {
				return err
			}
		}
		total += len(out.Items)

		logger.Debug("scanned page",
			zap.Int("page", page),
			zap.Int("items", len(out.Items)),
			zap.Bool("more", len(out.LastEvaluatedKey) > 0))

		if len(out.LastEvaluatedKey) == 0 {
			logger.Debug("done", zap.Int("records", total), zap.Int("pages", page))
			return nil
		}

		input = &storagemodels.ScanInput{
			ScanRequest:       *req,
			ExclusiveStartKey: out.LastEvaluatedKey,
		}
	}
}
