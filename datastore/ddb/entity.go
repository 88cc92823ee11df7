/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/bulkstore/errors"
	"github.com/suparena/bulkstore/registry"
	"github.com/suparena/bulkstore/storagemodels"
)

// EntityTypeAttribute carries the Go type name of persisted entities.
const EntityTypeAttribute = "EntityType"

// KeyAttributes are the index map entries that form the primary key.
var KeyAttributes = []string{"PK", "SK"}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros renders every template of indexMap against av. A macro naming
// an attribute that is absent or not scalar is an error.
func expandMacros(indexMap registry.IndexMap, av map[string]types.AttributeValue) (map[string]string, error) {
	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		var missing []string
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			// macro is something like "{ID}"
			key := strings.Trim(macro, "{}")

			switch tv := av[key].(type) {
			case *types.AttributeValueMemberS:
				if tv.Value != "" {
					return tv.Value
				}
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			}
			missing = append(missing, key)
			return ""
		})
		if len(missing) > 0 {
			return nil, storeerrors.NewValidationError(fieldName,
				fmt.Sprintf("template %q references missing or non-scalar attributes %v", template, missing))
		}
		res[fieldName] = expanded
	}

	return res, nil
}

func indexMapFor[T any]() (registry.IndexMap, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w for %s", storeerrors.ErrNoIndexMap, registry.TypeName[T]())
	}
	return indexMap, nil
}

// MarshalEntity converts entity into an item whose key and index attributes
// are expanded from the index map registered for T. The item also carries
// the EntityType attribute.
func MarshalEntity[T any](entity T) (storagemodels.Item, error) {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return nil, err
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(indexMap, av)
	if err != nil {
		return nil, err
	}

	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: registry.TypeName[T]()}
	return av, nil
}

// MarshalEntities applies MarshalEntity to each entity, stopping at the
// first failure.
func MarshalEntities[T any](entities []T) ([]storagemodels.Item, error) {
	items := make([]storagemodels.Item, 0, len(entities))
	for i, e := range entities {
		item, err := MarshalEntity(e)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// EntityKey builds the primary key of a T from keyInput, which may be a T or
// any struct or map carrying the attributes the PK and SK templates use.
func EntityKey[T any](keyInput any) (storagemodels.Key, error) {
	indexMap, err := indexMapFor[T]()
	if err != nil {
		return nil, err
	}

	keyTemplates := make(registry.IndexMap, len(KeyAttributes))
	for _, name := range KeyAttributes {
		if template, ok := indexMap[name]; ok {
			keyTemplates[name] = template
		}
	}
	if _, ok := keyTemplates["PK"]; !ok {
		return nil, storeerrors.NewValidationError("PK", "index map has no PK template")
	}

	av, err := attributevalue.MarshalMap(keyInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key input: %w", err)
	}

	expanded, err := expandMacros(keyTemplates, av)
	if err != nil {
		return nil, err
	}

	key := make(storagemodels.Key, len(expanded))
	for name, value := range expanded {
		key[name] = &types.AttributeValueMemberS{Value: value}
	}
	return key, nil
}

// EntityKeys applies EntityKey to each input.
func EntityKeys[T any](keyInputs []any) ([]storagemodels.Key, error) {
	keys := make([]storagemodels.Key, 0, len(keyInputs))
	for i, in := range keyInputs {
		key, err := EntityKey[T](in)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// UnmarshalRecords decodes records into T values. Records whose EntityType
// names another type are skipped, so a scan over a shared table yields only
// T's.
func UnmarshalRecords[T any](records []storagemodels.Record) ([]T, error) {
	want := registry.TypeName[T]()
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if s, ok := rec[EntityTypeAttribute].(*types.AttributeValueMemberS); ok && s.Value != want {
			continue
		}
		var v T
		if err := attributevalue.UnmarshalMap(rec, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", want, err)
		}
		out = append(out, v)
	}
	return out, nil
}
