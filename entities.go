/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulkstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/bulkstore/bulk"
	"github.com/suparena/bulkstore/datastore/ddb"
	"github.com/suparena/bulkstore/registry"
	"github.com/suparena/bulkstore/storagemodels"
)

// PutEntities marshals entities with the index map registered for T and
// writes them to the store's table.
func PutEntities[T any](ctx context.Context, s *Store, entities []T, opts ...bulk.WriteOption) error {
	items, err := ddb.MarshalEntities(entities)
	if err != nil {
		return err
	}
	return s.Put(ctx, items, opts...)
}

// GetEntities fetches the T's identified by keyInputs. Each input is a T or
// any struct or map carrying the fields the PK and SK templates reference.
// Entities that do not exist are absent from the result.
func GetEntities[T any](ctx context.Context, s *Store, keyInputs []any, opts ...storagemodels.GetOption) ([]T, error) {
	keys, err := ddb.EntityKeys[T](keyInputs)
	if err != nil {
		return nil, err
	}
	records, err := s.Get(ctx, keys, opts...)
	if err != nil {
		return nil, err
	}
	return ddb.UnmarshalRecords[T](records)
}

// DeleteEntities removes the T's identified by keyInputs.
func DeleteEntities[T any](ctx context.Context, s *Store, keyInputs []any, opts ...bulk.WriteOption) error {
	keys, err := ddb.EntityKeys[T](keyInputs)
	if err != nil {
		return err
	}
	return s.Delete(ctx, keys, opts...)
}

// ScanEntities reads every T stored in the table, selecting on the
// EntityType attribute.
func ScanEntities[T any](ctx context.Context, s *Store) ([]T, error) {
	records, err := s.Scan(ctx, &storagemodels.ScanRequest{
		FilterExpression:         aws.String("#et = :et"),
		ExpressionAttributeNames: map[string]string{"#et": ddb.EntityTypeAttribute},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":et": &types.AttributeValueMemberS{Value: registry.TypeName[T]()},
		},
	})
	if err != nil {
		return nil, err
	}
	return ddb.UnmarshalRecords[T](records)
}
