/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ScanRequest defines a full-table scan. The continuation cursor is owned by
// the walker and is never written back into the request.
type ScanRequest struct {
	// TableName is the table to scan.
	TableName string
	// IndexName is optional if you wish to scan a secondary index.
	IndexName *string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ProjectionExpression limits the returned attributes.
	ProjectionExpression *string
	// ExpressionAttributeNames contains the names for expression placeholders.
	ExpressionAttributeNames map[string]string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// Limit defines an optional limit per scan page.
	Limit *int32
	// ConsistentRead requests strongly consistent reads when true.
	ConsistentRead *bool
}

// ScanInput is one page request sent to the backend.
type ScanInput struct {
	ScanRequest
	// ExclusiveStartKey is the cursor of the previous page, nil on the first call.
	ExclusiveStartKey Key
}

// ScanOutput is one page of scan results. An empty LastEvaluatedKey means the
// scan is exhausted.
type ScanOutput struct {
	Items            []Record
	LastEvaluatedKey Key
}
