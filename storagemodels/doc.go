/*
Package storagemodels defines the data structures used throughout bulkstore.

Values are DynamoDB attribute maps (map[string]types.AttributeValue), aliased
as Key, Item and Record depending on the role they play.

Key Types:

BatchGetRequest:
A bulk get keyed by table name. Executors accept a single table:

	req := NewBatchGetRequest("users", keys,
	    WithConsistentRead(true),
	    WithProjection("#n, Email", map[string]string{"#n": "Name"}),
	)

WriteRequest:
One unit of a batch write, either a put or a delete:

	WriteRequest{PutRequest: &PutRequest{Item: item}}
	WriteRequest{DeleteRequest: &DeleteRequest{Key: key}}

ScanRequest:
Parameters for a scan that is walked page by page until the backend stops
returning a LastEvaluatedKey:

	req := &ScanRequest{
	    TableName:        "users",
	    FilterExpression: aws.String("Active = :t"),
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":t": &types.AttributeValueMemberBOOL{Value: true},
	    },
	    Limit: aws.Int32(100),
	}

The *Input and *Output types are the shapes exchanged with a batch backend,
mirroring the DynamoDB batch APIs (Responses, UnprocessedKeys,
UnprocessedItems, LastEvaluatedKey).
*/
package storagemodels
