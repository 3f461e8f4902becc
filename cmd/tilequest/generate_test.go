package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/storage"
)

func withGenerateFlags(t *testing.T, dbPath string, timeout time.Duration) {
	t.Helper()
	oldDB, oldRecord, oldTimeout, oldFormat := flagDBPath, flagGenRecord, flagGenTimeout, flagGenFormat
	t.Cleanup(func() {
		flagDBPath, flagGenRecord, flagGenTimeout, flagGenFormat = oldDB, oldRecord, oldTimeout, oldFormat
	})
	flagDBPath = dbPath
	flagGenRecord = true
	flagGenTimeout = timeout
	flagGenFormat = "coords"
}

func TestGenerateRecordsGeneration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	withGenerateFlags(t, dbPath, 5*time.Second)

	cfg := config.Default()
	cfg.World.Seed = 1234
	if err := generate(cfg); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()

	gens, err := store.RecentGenerations(10)
	if err != nil {
		t.Fatalf("RecentGenerations failed: %v", err)
	}
	if len(gens) != 1 || gens[0].Seed != 1234 || gens[0].Level != 0 {
		t.Errorf("generations = %+v, expected one for seed 1234 level 0", gens)
	}
}

func TestGenerateReturnsErrorForMissingLevel(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	withGenerateFlags(t, dbPath, 100*time.Millisecond)

	cfg := config.Default()
	cfg.World.Seed = 1234
	cfg.Levels.Dir = t.TempDir()
	if err := generate(cfg); err == nil {
		t.Fatal("generate should fail when the level cannot be loaded")
	}

	// The database was closed on the error path and is still usable.
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()
	gens, err := store.RecentGenerations(10)
	if err != nil || len(gens) != 0 {
		t.Errorf("generations = %+v, err = %v, expected none", gens, err)
	}
}
