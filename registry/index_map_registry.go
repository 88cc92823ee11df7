/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// IndexMap maps attribute names to key templates, e.g. {"PK": "USER#{ID}"}.
type IndexMap map[string]string

var (
	indexMapRegistry = make(map[reflect.Type]IndexMap)
	mu               sync.RWMutex
)

// RegisterIndexMap associates a Go type T with its key templates (PK, SK, etc.).
// Registering T again replaces the previous map.
func RegisterIndexMap[T any](idxMap IndexMap) {
	t := typeOf[T]()

	copied := make(IndexMap, len(idxMap))
	for k, v := range idxMap {
		copied[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[t] = copied
}

// GetIndexMap retrieves the index map for type T, if any.
func GetIndexMap[T any]() (IndexMap, bool) {
	t := typeOf[T]()

	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[t]
	return m, ok
}

// UnregisterIndexMap removes the index map of type T.
func UnregisterIndexMap[T any]() {
	t := typeOf[T]()

	mu.Lock()
	defer mu.Unlock()
	delete(indexMapRegistry, t)
}

// typeOf resolves T through a pointer so that interface and pointer type
// parameters do not collapse to nil.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TypeName returns the unqualified name of T, used as the EntityType
// attribute of persisted entities.
func TypeName[T any]() string {
	t := typeOf[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
