/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"testing"
)

type player struct {
	ID string
}

type match struct {
	ID string
}

func TestRegisterIndexMap(t *testing.T) {
	defer UnregisterIndexMap[player]()

	idx := IndexMap{"PK": "PLAYER#{ID}", "SK": "PROFILE"}
	RegisterIndexMap[player](idx)

	got, ok := GetIndexMap[player]()
	if !ok {
		t.Fatal("expected index map for player")
	}
	if got["PK"] != "PLAYER#{ID}" || got["SK"] != "PROFILE" {
		t.Errorf("unexpected index map: %v", got)
	}

	// The registry keeps its own copy
	idx["PK"] = "changed"
	got, _ = GetIndexMap[player]()
	if got["PK"] != "PLAYER#{ID}" {
		t.Errorf("registry should not alias the caller's map, got %q", got["PK"])
	}

	if _, ok := GetIndexMap[match](); ok {
		t.Error("match should not have an index map")
	}
}

func TestRegisterIndexMapPointerTypesAreDistinct(t *testing.T) {
	defer UnregisterIndexMap[player]()
	defer UnregisterIndexMap[*player]()

	RegisterIndexMap[*player](IndexMap{"PK": "PTR#{ID}"})

	if _, ok := GetIndexMap[player](); ok {
		t.Error("registering *player must not register player")
	}
	if got, ok := GetIndexMap[*player](); !ok || got["PK"] != "PTR#{ID}" {
		t.Errorf("unexpected pointer index map: %v, %v", got, ok)
	}
}

func TestUnregisterIndexMap(t *testing.T) {
	RegisterIndexMap[match](IndexMap{"PK": "MATCH#{ID}"})
	UnregisterIndexMap[match]()

	if _, ok := GetIndexMap[match](); ok {
		t.Error("index map should be gone after UnregisterIndexMap")
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName[player](); got != "player" {
		t.Errorf("TypeName[player]() = %q", got)
	}
	if got := TypeName[*match](); got != "match" {
		t.Errorf("TypeName[*match]() = %q", got)
	}
}
