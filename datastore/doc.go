/*
Package datastore defines the batch backend consumed by bulkstore's executors.

The main interface is Backend, the three native batch capabilities of a
partitioned key-value store:

	type Backend interface {
	    BatchGet(ctx context.Context, input *storagemodels.BatchGetInput) (*storagemodels.BatchGetOutput, error)
	    BatchWrite(ctx context.Context, input *storagemodels.BatchWriteInput) (*storagemodels.BatchWriteOutput, error)
	    Scan(ctx context.Context, input *storagemodels.ScanInput) (*storagemodels.ScanOutput, error)
	}

A backend call may succeed partially; the residual is reported through
UnprocessedKeys / UnprocessedItems and is resubmitted by the caller.

Implementations:
  - ddb: DynamoDB implementation on the AWS SDK for Go v2
  - mock: In-memory scripted implementation for testing
*/
package datastore
