package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tilequest/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreGenerations(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RecordGeneration(1234, 0, 812, 3); err != nil {
		t.Fatalf("RecordGeneration() failed: %v", err)
	}
	// Seeds above MaxInt32 must survive the round trip.
	if err := store.SaveGeneration(sim.GenerationRecord{Seed: 0xfffffff0, Level: 2, Walls: 790, Movables: 2}); err != nil {
		t.Fatalf("SaveGeneration() failed: %v", err)
	}

	entries, err := store.RecentGenerations(10)
	if err != nil {
		t.Fatalf("RecentGenerations() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 generations, got %d", len(entries))
	}

	// Newest first
	if entries[0].Seed != 0xfffffff0 || entries[0].Level != 2 || entries[0].Walls != 790 {
		t.Errorf("Unexpected newest entry: %+v", entries[0])
	}
	if entries[1].Seed != 1234 || entries[1].Movables != 3 {
		t.Errorf("Unexpected oldest entry: %+v", entries[1])
	}
	if entries[1].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreRecentGenerationsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.RecordGeneration(7, i%4, 100+i, 0); err != nil {
			t.Fatalf("RecordGeneration() failed: %v", err)
		}
	}

	entries, err := store.RecentGenerations(5)
	if err != nil {
		t.Fatalf("RecentGenerations() failed: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("Expected 5 entries, got %d", len(entries))
	}
	if entries[0].Walls != 114 {
		t.Errorf("Expected newest entry first, got walls=%d", entries[0].Walls)
	}

	// Zero limit falls back to the default
	entries, err = store.RecentGenerations(0)
	if err != nil {
		t.Fatalf("RecentGenerations() failed: %v", err)
	}
	if len(entries) != 15 {
		t.Errorf("Expected 15 entries, got %d", len(entries))
	}
}

func TestStoreSessions(t *testing.T) {
	store := openTestStore(t)

	records := []SessionRecord{
		{Username: "local", Seed: 1234, Moves: 40, Pushes: 6, Blocked: 2, Levels: 1, DurationSecs: 90},
		{Username: "alice", Seed: 99, Moves: 10, Pushes: 1, Levels: 2, DurationSecs: 30},
		{Username: "local", Seed: 1234, Moves: 5, Pushes: 0, Blocked: 4, Levels: 1, DurationSecs: 12},
	}
	for _, rec := range records {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].Moves != 5 || sessions[0].Blocked != 4 {
		t.Errorf("Unexpected newest session: %+v", sessions[0])
	}
	if sessions[1].Username != "alice" || sessions[1].Levels != 2 {
		t.Errorf("Unexpected middle session: %+v", sessions[1])
	}

	stats, err := store.GetPlayerStats("local")
	if err != nil {
		t.Fatalf("GetPlayerStats() failed: %v", err)
	}
	if stats.Sessions != 2 || stats.TotalMoves != 45 || stats.TotalPushes != 6 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestStorePlayerStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetPlayerStats("nobody")
	if err != nil {
		t.Fatalf("GetPlayerStats() failed: %v", err)
	}
	if stats.Sessions != 0 || stats.TotalMoves != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
