/*
Package errors provides semantic error types for the bulkstore library.

The package defines the failure modes of bulk operations with specific types
that can be checked using the standard errors.Is() function or the provided
helper functions.

Common Errors:

	var (
	    ErrUnsupportedMultiTable = errors.New("bulk request spans more than one table")
	    ErrBackendCall           = errors.New("backend call failed")
	    ErrInvalidInput          = errors.New("invalid input")
	    ErrNoIndexMap            = errors.New("no index map found for type")
	)

Usage:

	records, err := executor.GetAll(ctx, req)
	if err != nil {
	    if errors.IsUnsupportedMultiTable(err) {
	        // split the request per table
	    }
	    var callErr *errors.BackendCallError
	    if stderrors.As(err, &callErr) {
	        log.Printf("%s failed on %s", callErr.Op, callErr.Table)
	    }
	    return nil, err
	}

Unprocessed keys and items reported by the backend are not errors; they are
retried by the executors. BackendCallError unwraps to the original backend
error, so SDK error types remain reachable with errors.As.
*/
package errors
