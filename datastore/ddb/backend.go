/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/bulkstore/storagemodels"
)

// API is the subset of the DynamoDB client used by Backend. It is satisfied
// by *dynamodb.Client and by mocks in tests.
type API interface {
	BatchGetItem(ctx context.Context, params *sdk.BatchGetItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchGetItemOutput, error)
	BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

// Backend implements datastore.Backend on top of DynamoDB's BatchGetItem,
// BatchWriteItem and Scan. It performs exactly one API call per method call;
// retries of unprocessed keys and items are left to the bulk executors.
type Backend struct {
	client API
}

// NewBackend wraps a DynamoDB client.
func NewBackend(client API) *Backend {
	return &Backend{client: client}
}

// ClientConfig holds what is needed to build a DynamoDB client.
type ClientConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are
// used when both keys are set; otherwise the default AWS credential chain
// applies.
func NewDynamoDBClient(ctx context.Context, cc ClientConfig) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cc.Region),
	}
	if cc.AccessKey != "" && cc.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cc.AccessKey, cc.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if cc.Endpoint != "" {
			o.BaseEndpoint = aws.String(cc.Endpoint)
		}
	}), nil
}

// BatchGet issues one BatchGetItem call.
func (b *Backend) BatchGet(ctx context.Context, input *storagemodels.BatchGetInput) (*storagemodels.BatchGetOutput, error) {
	requestItems := make(map[string]types.KeysAndAttributes, len(input.RequestItems))
	for table, ko := range input.RequestItems {
		requestItems[table] = toKeysAndAttributes(ko)
	}

	out, err := b.client.BatchGetItem(ctx, &sdk.BatchGetItemInput{
		RequestItems: requestItems,
	})
	if err != nil {
		return nil, fmt.Errorf("BatchGetItem error: %w", err)
	}

	result := &storagemodels.BatchGetOutput{
		Responses:       make(map[string][]storagemodels.Record, len(out.Responses)),
		UnprocessedKeys: make(map[string]storagemodels.KeysAndOptions, len(out.UnprocessedKeys)),
	}
	for table, items := range out.Responses {
		result.Responses[table] = items
	}
	for table, ka := range out.UnprocessedKeys {
		if len(ka.Keys) == 0 {
			continue
		}
		result.UnprocessedKeys[table] = fromKeysAndAttributes(ka)
	}
	return result, nil
}

// BatchWrite issues one BatchWriteItem call.
func (b *Backend) BatchWrite(ctx context.Context, input *storagemodels.BatchWriteInput) (*storagemodels.BatchWriteOutput, error) {
	requestItems := make(map[string][]types.WriteRequest, len(input.RequestItems))
	for table, requests := range input.RequestItems {
		converted := make([]types.WriteRequest, 0, len(requests))
		for _, r := range requests {
			converted = append(converted, toWriteRequest(r))
		}
		requestItems[table] = converted
	}

	out, err := b.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
		RequestItems: requestItems,
	})
	if err != nil {
		return nil, fmt.Errorf("BatchWriteItem error: %w", err)
	}

	result := &storagemodels.BatchWriteOutput{
		UnprocessedItems: make(map[string][]storagemodels.WriteRequest, len(out.UnprocessedItems)),
	}
	for table, requests := range out.UnprocessedItems {
		if len(requests) == 0 {
			continue
		}
		converted := make([]storagemodels.WriteRequest, 0, len(requests))
		for _, r := range requests {
			converted = append(converted, fromWriteRequest(r))
		}
		result.UnprocessedItems[table] = converted
	}
	return result, nil
}

// Scan issues one Scan call.
func (b *Backend) Scan(ctx context.Context, input *storagemodels.ScanInput) (*storagemodels.ScanOutput, error) {
	out, err := b.client.Scan(ctx, &sdk.ScanInput{
		TableName:                 aws.String(input.TableName),
		IndexName:                 input.IndexName,
		FilterExpression:          input.FilterExpression,
		ProjectionExpression:      input.ProjectionExpression,
		ExpressionAttributeNames:  input.ExpressionAttributeNames,
		ExpressionAttributeValues: input.ExpressionAttributeValues,
		Limit:                     input.Limit,
		ConsistentRead:            input.ConsistentRead,
		ExclusiveStartKey:         input.ExclusiveStartKey,
	})
	if err != nil {
		return nil, fmt.Errorf("Scan error: %w", err)
	}

	return &storagemodels.ScanOutput{
		Items:            out.Items,
		LastEvaluatedKey: out.LastEvaluatedKey,
	}, nil
}

func toKeysAndAttributes(ko storagemodels.KeysAndOptions) types.KeysAndAttributes {
	return types.KeysAndAttributes{
		Keys:                     ko.Keys,
		ConsistentRead:           ko.ConsistentRead,
		ProjectionExpression:     ko.ProjectionExpression,
		ExpressionAttributeNames: ko.ExpressionAttributeNames,
	}
}

func fromKeysAndAttributes(ka types.KeysAndAttributes) storagemodels.KeysAndOptions {
	return storagemodels.KeysAndOptions{
		Keys:                     ka.Keys,
		ConsistentRead:           ka.ConsistentRead,
		ProjectionExpression:     ka.ProjectionExpression,
		ExpressionAttributeNames: ka.ExpressionAttributeNames,
	}
}

func toWriteRequest(r storagemodels.WriteRequest) types.WriteRequest {
	var w types.WriteRequest
	if r.PutRequest != nil {
		w.PutRequest = &types.PutRequest{Item: r.PutRequest.Item}
	}
	if r.DeleteRequest != nil {
		w.DeleteRequest = &types.DeleteRequest{Key: r.DeleteRequest.Key}
	}
	return w
}

func fromWriteRequest(w types.WriteRequest) storagemodels.WriteRequest {
	var r storagemodels.WriteRequest
	if w.PutRequest != nil {
		r.PutRequest = &storagemodels.PutRequest{Item: w.PutRequest.Item}
	}
	if w.DeleteRequest != nil {
		r.DeleteRequest = &storagemodels.DeleteRequest{Key: w.DeleteRequest.Key}
	}
	return r
}
