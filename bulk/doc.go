/*
Package bulk turns the bounded, partially-failing batch calls of a
datastore.Backend into unbounded, eventually-complete bulk operations.

An Executor carves the request into chunks (100 keys per get, 25 requests per
write), submits them one at a time, puts every unprocessed key or item back at
the head of the pending queue and waits according to the backoff policy before
the next round:

	exec, err := bulk.New(backend,
	    bulk.WithLogger(logger),
	    bulk.WithBackoff(backoff.Config{Initial: time.Second, Max: 30 * time.Second, Factor: 2}),
	)

	records, err := exec.GetAll(ctx, storagemodels.NewBatchGetRequest("users", keys))
	err = exec.PutAll(ctx, "users", items, bulk.WithProgress(bulk.LogProgress(logger)))
	records, err = exec.ScanAll(ctx, &storagemodels.ScanRequest{TableName: "users"})

Failure handling is deliberately asymmetric. GetAll and ScanAll return the
first backend error. PutAll and DeleteAll, under the default LogAndDrop
policy, log a failed chunk and move on without retrying it; the Raise policy
makes them fail fast instead.

There is no cap on retry rounds. A backend that never drains its residual
keeps the call looping at the maximum backoff; bound such calls with a
context deadline.
*/
package bulk
