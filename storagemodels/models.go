/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Key identifies a single item by its primary key attributes.
type Key = map[string]types.AttributeValue

// Item is a full set of attributes to be written.
type Item = map[string]types.AttributeValue

// Record is an item returned by the backend.
type Record = map[string]types.AttributeValue

// KeysAndOptions is the per-table part of a batch get. The options are applied
// uniformly to every sub-batch carved from Keys.
type KeysAndOptions struct {
	// Keys are the primary keys to fetch, in request order.
	Keys []Key
	// ConsistentRead requests strongly consistent reads when true.
	ConsistentRead *bool
	// ProjectionExpression limits the returned attributes.
	ProjectionExpression *string
	// ExpressionAttributeNames substitutes names in ProjectionExpression.
	ExpressionAttributeNames map[string]string
}

// WithKeys returns a copy of k that carries keys instead of k.Keys.
func (k KeysAndOptions) WithKeys(keys []Key) KeysAndOptions {
	k.Keys = keys
	return k
}

// GetOption configures the options of a KeysAndOptions.
type GetOption func(*KeysAndOptions)

// WithConsistentRead sets ConsistentRead
func WithConsistentRead(consistent bool) GetOption {
	return func(k *KeysAndOptions) {
		k.ConsistentRead = &consistent
	}
}

// WithProjection sets the projection expression and its attribute names
func WithProjection(expr string, names map[string]string) GetOption {
	return func(k *KeysAndOptions) {
		k.ProjectionExpression = &expr
		k.ExpressionAttributeNames = names
	}
}

// BatchGetRequest is the caller-facing bulk get request, keyed by table name.
// Bulk executors accept exactly one table.
type BatchGetRequest struct {
	RequestItems map[string]KeysAndOptions
}

// NewBatchGetRequest builds a single-table BatchGetRequest.
func NewBatchGetRequest(table string, keys []Key, opts ...GetOption) *BatchGetRequest {
	ko := KeysAndOptions{Keys: keys}
	for _, opt := range opts {
		opt(&ko)
	}
	return &BatchGetRequest{
		RequestItems: map[string]KeysAndOptions{table: ko},
	}
}

// PutRequest writes a whole item.
type PutRequest struct {
	Item Item
}

// DeleteRequest removes the item identified by Key.
type DeleteRequest struct {
	Key Key
}

// WriteRequest is one unit of a batch write. Exactly one of PutRequest and
// DeleteRequest is set.
type WriteRequest struct {
	PutRequest    *PutRequest
	DeleteRequest *DeleteRequest
}

// Attributes returns the item of a put or the key of a delete.
func (w WriteRequest) Attributes() map[string]types.AttributeValue {
	switch {
	case w.PutRequest != nil:
		return w.PutRequest.Item
	case w.DeleteRequest != nil:
		return w.DeleteRequest.Key
	default:
		return nil
	}
}

// BatchGetInput is one physical batch get sent to the backend.
type BatchGetInput struct {
	RequestItems map[string]KeysAndOptions
}

// BatchGetOutput is the backend's answer to a BatchGetInput. UnprocessedKeys
// holds the keys the backend did not read and that must be resubmitted.
type BatchGetOutput struct {
	Responses       map[string][]Record
	UnprocessedKeys map[string]KeysAndOptions
}

// BatchWriteInput is one physical batch write sent to the backend.
type BatchWriteInput struct {
	RequestItems map[string][]WriteRequest
}

// BatchWriteOutput is the backend's answer to a BatchWriteInput.
type BatchWriteOutput struct {
	UnprocessedItems map[string][]WriteRequest
}
