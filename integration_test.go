//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulkstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/joho/godotenv"

	"github.com/suparena/bulkstore"
	"github.com/suparena/bulkstore/bulk"
	"github.com/suparena/bulkstore/config"
	"github.com/suparena/bulkstore/datastore/testmodels"
	"github.com/suparena/bulkstore/registry"
	"github.com/suparena/bulkstore/storagemodels"
)

func setupIntegrationStore(t *testing.T) *bulkstore.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Load .env if present; the environment may already carry the settings
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Table == "" {
		t.Skip("AWS_DDB_TABLE not set, skipping integration test")
	}

	store, err := bulkstore.NewFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	registry.RegisterIndexMap[testmodels.Player](testmodels.PlayerIndexMap)
	t.Cleanup(registry.UnregisterIndexMap[testmodels.Player])
	return store
}

func TestIntegrationBulkEntities(t *testing.T) {
	store := setupIntegrationStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	club := fmt.Sprintf("it-%d", time.Now().UnixNano())
	roster := make([]testmodels.Player, 0, 120)
	for i := 0; i < 120; i++ {
		roster = append(roster, testmodels.Player{
			ID:       strfmt.UUID(fmt.Sprintf("00000000-0000-4000-8000-%012d", i)),
			Club:     club,
			Name:     fmt.Sprintf("Player %d", i),
			Rating:   1200 + i,
			JoinedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	var rounds int
	progress := bulk.ProgressFunc(func(pending int) { rounds++ })
	if err := bulkstore.PutEntities(ctx, store, roster, bulk.WithProgress(progress)); err != nil {
		t.Fatalf("Failed to put players: %v", err)
	}
	if rounds < 5 {
		t.Errorf("Expected at least 5 write rounds for 120 players, got %d", rounds)
	}

	keys := make([]any, 0, len(roster))
	for _, p := range roster {
		keys = append(keys, p)
	}

	got, err := bulkstore.GetEntities[testmodels.Player](ctx, store, keys)
	if err != nil {
		t.Fatalf("Failed to get players: %v", err)
	}
	if len(got) != len(roster) {
		t.Errorf("Expected %d players, got %d", len(roster), len(got))
	}

	if err := bulkstore.DeleteEntities[testmodels.Player](ctx, store, keys); err != nil {
		t.Fatalf("Failed to delete players: %v", err)
	}

	got, err = bulkstore.GetEntities[testmodels.Player](ctx, store, keys)
	if err != nil {
		t.Fatalf("Failed to get players after delete: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no players after delete, got %d", len(got))
	}
}

func TestIntegrationScan(t *testing.T) {
	store := setupIntegrationStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var streamed int
	err := store.ScanEach(ctx, nil, func(storagemodels.Record) error {
		streamed++
		return nil
	})
	if err != nil {
		t.Fatalf("ScanEach failed: %v", err)
	}

	records, err := store.Scan(ctx, nil)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(records) != streamed {
		t.Logf("Table changed between scans: %d streamed, %d collected", streamed, len(records))
	}
}
