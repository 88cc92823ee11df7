/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/bulkstore/storagemodels"
)

// Backend is the bounded, partially-failing batch primitive the bulk executors
// drive. Implementations may return fewer results than requested and report
// the rest as unprocessed; they must not retry on their own behalf.
type Backend interface {
	// BatchGet reads the keys of one request. Keys it did not read are returned
	// in UnprocessedKeys under the same table name.
	BatchGet(ctx context.Context, input *storagemodels.BatchGetInput) (*storagemodels.BatchGetOutput, error)

	// BatchWrite applies the write requests. Requests it did not apply are
	// returned in UnprocessedItems under the same table name.
	BatchWrite(ctx context.Context, input *storagemodels.BatchWriteInput) (*storagemodels.BatchWriteOutput, error)

	// Scan returns one page. An empty LastEvaluatedKey ends the scan.
	Scan(ctx context.Context, input *storagemodels.ScanInput) (*storagemodels.ScanOutput, error)
}
