/*
Package bulkstore provides bulk get, write and scan operations over a
partitioned key-value store such as DynamoDB.

A single backend call accepts a bounded number of keys or items and may leave
some of them unprocessed. The bulk executor hides both limits: requests of
any size are chunked, residuals are resubmitted first with exponential
backoff, and scans are drained page by page.

Basic Usage:

	cfg, _ := config.Load("bulkstore.yaml")
	store, _ := bulkstore.NewFromConfig(ctx, cfg)

	// Raw items
	err := store.Put(ctx, items, bulk.WithProgress(progress))
	records, err := store.Get(ctx, keys, storagemodels.WithConsistentRead(true))

	// Typed entities, keyed by their registered index map
	registry.RegisterIndexMap[Player](registry.IndexMap{"PK": "CLUB#{Club}", "SK": "PLAYER#{ID}"})
	err = bulkstore.PutEntities(ctx, store, players)
	players, err := bulkstore.ScanEntities[Player](ctx, store)

Packages:
  - bulk: the executors, chunking and retry loop
  - backoff: the wait policy between rounds
  - datastore/ddb: the DynamoDB backend and entity codec
  - datastore/mock: a scripted in-memory backend for tests
  - config: YAML, .env and environment configuration
*/
package bulkstore
