/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Backend for testing
package mock

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/bulkstore/errors"
	"github.com/suparena/bulkstore/storagemodels"
)

// DefaultKeyAttributes are the key attribute names used for tables without an
// explicit key schema.
var DefaultKeyAttributes = []string{"PK", "SK"}

type table struct {
	order []string
	items map[string]storagemodels.Item
}

// Backend is an in-memory datastore.Backend. Items are kept per table in
// insertion order. Hooks let tests script unprocessed residuals and call
// failures per round; every input is recorded.
type Backend struct {
	mu        sync.Mutex
	tables    map[string]*table
	keySchema map[string][]string
	pageSize  int

	getUnprocessedFunc   func(round int, keys []storagemodels.Key) []storagemodels.Key
	getErrorFunc         func(round int) error
	writeUnprocessedFunc func(round int, requests []storagemodels.WriteRequest) []storagemodels.WriteRequest
	writeErrorFunc       func(round int, requests []storagemodels.WriteRequest) error
	scanErrorFunc        func(page int) error

	getInputs   []*storagemodels.BatchGetInput
	writeInputs []*storagemodels.BatchWriteInput
	scanInputs  []*storagemodels.ScanInput
}

// New creates an empty mock Backend
func New() *Backend {
	return &Backend{
		tables:    make(map[string]*table),
		keySchema: make(map[string][]string),
	}
}

// WithKeySchema sets the key attribute names of a table
func (m *Backend) WithKeySchema(tableName string, attributes ...string) *Backend {
	m.keySchema[tableName] = attributes
	return m
}

// WithPageSize sets the scan page size used when a scan carries no Limit.
// Zero returns whole tables in one page.
func (m *Backend) WithPageSize(n int) *Backend {
	m.pageSize = n
	return m
}

// WithGetUnprocessedFunc scripts which keys of a batch get round (1-based)
// are reported as unprocessed
func (m *Backend) WithGetUnprocessedFunc(f func(round int, keys []storagemodels.Key) []storagemodels.Key) *Backend {
	m.getUnprocessedFunc = f
	return m
}

// WithGetErrorFunc makes a batch get round fail
func (m *Backend) WithGetErrorFunc(f func(round int) error) *Backend {
	m.getErrorFunc = f
	return m
}

// WithWriteUnprocessedFunc scripts which requests of a batch write round are
// reported as unprocessed
func (m *Backend) WithWriteUnprocessedFunc(f func(round int, requests []storagemodels.WriteRequest) []storagemodels.WriteRequest) *Backend {
	m.writeUnprocessedFunc = f
	return m
}

// WithWriteErrorFunc makes a batch write round fail without applying anything
func (m *Backend) WithWriteErrorFunc(f func(round int, requests []storagemodels.WriteRequest) error) *Backend {
	m.writeErrorFunc = f
	return m
}

// WithScanErrorFunc makes a scan page (1-based) fail
func (m *Backend) WithScanErrorFunc(f func(page int) error) *Backend {
	m.scanErrorFunc = f
	return m
}

// BatchGet returns the stored items for the requested keys
func (m *Backend) BatchGet(ctx context.Context, input *storagemodels.BatchGetInput) (*storagemodels.BatchGetOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.getInputs = append(m.getInputs, input)
	round := len(m.getInputs)

	if m.getErrorFunc != nil {
		if err := m.getErrorFunc(round); err != nil {
			return nil, err
		}
	}

	out := &storagemodels.BatchGetOutput{
		Responses:       make(map[string][]storagemodels.Record),
		UnprocessedKeys: make(map[string]storagemodels.KeysAndOptions),
	}

	for tableName, ko := range input.RequestItems {
		var residual []storagemodels.Key
		if m.getUnprocessedFunc != nil {
			residual = m.getUnprocessedFunc(round, ko.Keys)
		}
		skip := m.keySet(tableName, residual)

		t := m.tables[tableName]
		records := make([]storagemodels.Record, 0, len(ko.Keys))
		for _, key := range ko.Keys {
			id := m.keyOf(tableName, key)
			if skip[id] || t == nil {
				continue
			}
			if item, ok := t.items[id]; ok {
				records = append(records, copyAttributes(item))
			}
		}

		out.Responses[tableName] = records
		if len(residual) > 0 {
			out.UnprocessedKeys[tableName] = ko.WithKeys(residual)
		}
	}

	return out, nil
}

// BatchWrite applies put and delete requests
func (m *Backend) BatchWrite(ctx context.Context, input *storagemodels.BatchWriteInput) (*storagemodels.BatchWriteOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeInputs = append(m.writeInputs, input)
	round := len(m.writeInputs)

	out := &storagemodels.BatchWriteOutput{
		UnprocessedItems: make(map[string][]storagemodels.WriteRequest),
	}

	for tableName, requests := range input.RequestItems {
		if m.writeErrorFunc != nil {
			if err := m.writeErrorFunc(round, requests); err != nil {
				return nil, err
			}
		}

		var residual []storagemodels.WriteRequest
		if m.writeUnprocessedFunc != nil {
			residual = m.writeUnprocessedFunc(round, requests)
		}
		skip := make(map[string]bool, len(residual))
		for _, r := range residual {
			skip[m.keyOf(tableName, r.Attributes())] = true
		}

		for _, r := range requests {
			id := m.keyOf(tableName, r.Attributes())
			if skip[id] {
				continue
			}
			if err := m.apply(tableName, id, r); err != nil {
				return nil, err
			}
		}

		if len(residual) > 0 {
			out.UnprocessedItems[tableName] = residual
		}
	}

	return out, nil
}

// Scan pages through a table in insertion order. FilterExpression and
// ProjectionExpression are ignored.
func (m *Backend) Scan(ctx context.Context, input *storagemodels.ScanInput) (*storagemodels.ScanOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanInputs = append(m.scanInputs, input)
	page := len(m.scanInputs)

	if m.scanErrorFunc != nil {
		if err := m.scanErrorFunc(page); err != nil {
			return nil, err
		}
	}

	t := m.tables[input.TableName]
	if t == nil {
		return nil, errors.NewValidationError("TableName", fmt.Sprintf("table %q does not exist", input.TableName))
	}

	start := 0
	if len(input.ExclusiveStartKey) > 0 {
		cursor := m.keyOf(input.TableName, input.ExclusiveStartKey)
		start = len(t.order)
		for i, id := range t.order {
			if id == cursor {
				start = i + 1
				break
			}
		}
	}

	limit := m.pageSize
	if input.Limit != nil {
		limit = int(*input.Limit)
	}
	end := len(t.order)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	out := &storagemodels.ScanOutput{
		Items: make([]storagemodels.Record, 0, end-start),
	}
	for _, id := range t.order[start:end] {
		out.Items = append(out.Items, copyAttributes(t.items[id]))
	}
	if end < len(t.order) && end > start {
		out.LastEvaluatedKey = m.extractKey(input.TableName, t.items[t.order[end-1]])
	}

	return out, nil
}

// Helper methods for testing

// SetItems replaces the content of a table
func (m *Backend) SetItems(tableName string, items []storagemodels.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables[tableName] = &table{items: make(map[string]storagemodels.Item)}
	for _, item := range items {
		id := m.keyOf(tableName, item)
		_ = m.apply(tableName, id, storagemodels.WriteRequest{PutRequest: &storagemodels.PutRequest{Item: item}})
	}
}

// Items returns a copy of a table's items in insertion order
func (m *Backend) Items(tableName string) []storagemodels.Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.tables[tableName]
	if t == nil {
		return nil
	}
	items := make([]storagemodels.Item, 0, len(t.order))
	for _, id := range t.order {
		items = append(items, copyAttributes(t.items[id]))
	}
	return items
}

// Count returns the number of items stored in a table
func (m *Backend) Count(tableName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t := m.tables[tableName]; t != nil {
		return len(t.order)
	}
	return 0
}

// GetInputs returns the recorded batch get inputs
func (m *Backend) GetInputs() []*storagemodels.BatchGetInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*storagemodels.BatchGetInput(nil), m.getInputs...)
}

// WriteInputs returns the recorded batch write inputs
func (m *Backend) WriteInputs() []*storagemodels.BatchWriteInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*storagemodels.BatchWriteInput(nil), m.writeInputs...)
}

// ScanInputs returns the recorded scan inputs
func (m *Backend) ScanInputs() []*storagemodels.ScanInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*storagemodels.ScanInput(nil), m.scanInputs...)
}

// Clear removes all data and recorded inputs
func (m *Backend) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables = make(map[string]*table)
	m.getInputs = nil
	m.writeInputs = nil
	m.scanInputs = nil
}

func (m *Backend) apply(tableName, id string, r storagemodels.WriteRequest) error {
	t := m.tables[tableName]
	if t == nil {
		t = &table{items: make(map[string]storagemodels.Item)}
		m.tables[tableName] = t
	}

	switch {
	case r.PutRequest != nil:
		if _, exists := t.items[id]; !exists {
			t.order = append(t.order, id)
		}
		t.items[id] = copyAttributes(r.PutRequest.Item)
	case r.DeleteRequest != nil:
		if _, exists := t.items[id]; !exists {
			return nil
		}
		delete(t.items, id)
		for i, o := range t.order {
			if o == id {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	default:
		return errors.NewValidationError("WriteRequest", "neither PutRequest nor DeleteRequest is set")
	}
	return nil
}

func (m *Backend) keyAttributes(tableName string) []string {
	if attrs, ok := m.keySchema[tableName]; ok {
		return attrs
	}
	return DefaultKeyAttributes
}

// extractKey returns the key attributes of an item.
func (m *Backend) extractKey(tableName string, item storagemodels.Item) storagemodels.Key {
	key := make(storagemodels.Key)
	for _, name := range m.keyAttributes(tableName) {
		if v, ok := item[name]; ok {
			key[name] = v
		}
	}
	return key
}

// keyOf renders the identity of an item or key. Attributes outside the key
// schema are ignored; when none of the schema attributes are present every
// attribute is used.
func (m *Backend) keyOf(tableName string, attrs map[string]types.AttributeValue) string {
	names := make([]string, 0, len(attrs))
	for _, name := range m.keyAttributes(tableName) {
		if _, ok := attrs[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(renderValue(attrs[name]))
		sb.WriteByte('|')
	}
	return sb.String()
}

func (m *Backend) keySet(tableName string, keys []storagemodels.Key) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[m.keyOf(tableName, k)] = true
	}
	return set
}

func renderValue(v types.AttributeValue) string {
	switch tv := v.(type) {
	case *types.AttributeValueMemberS:
		return "S:" + tv.Value
	case *types.AttributeValueMemberN:
		return "N:" + tv.Value
	case *types.AttributeValueMemberB:
		return "B:" + base64.StdEncoding.EncodeToString(tv.Value)
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

func copyAttributes(src map[string]types.AttributeValue) map[string]types.AttributeValue {
	dst := make(map[string]types.AttributeValue, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
