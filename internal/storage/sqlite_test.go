package storage

import (
	"os"
	"path/filepath"
	"testing"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.RecordCompletion(Completion{LevelID: "intro-01", Moves: 3}); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	ok, err := store.IsCompleted(LocalPlayer, "intro-01")
	if err != nil || !ok {
		t.Errorf("IsCompleted() = %v, %v after reopen", ok, err)
	}
}

func TestRecordAndTopCompletions(t *testing.T) {
	store := openTestStore(t)

	for _, c := range []Completion{
		{LevelID: "holes-01", Category: "holes", Player: "ann", Moves: 12},
		{LevelID: "holes-01", Category: "holes", Player: "bob", Moves: 7},
		{LevelID: "holes-01", Category: "holes", Moves: 9},
		{LevelID: "intro-01", Category: "intro", Moves: 3},
	} {
		if _, err := store.RecordCompletion(c); err != nil {
			t.Fatalf("RecordCompletion() failed: %v", err)
		}
	}

	top, err := store.TopCompletions("holes-01", 2)
	if err != nil {
		t.Fatalf("TopCompletions() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Moves != 7 || top[0].Player != "bob" {
		t.Errorf("first entry = %+v", top[0])
	}
	if top[1].Moves != 9 || top[1].Player != LocalPlayer {
		t.Errorf("second entry = %+v, want local player default", top[1])
	}
	if top[0].Category != "holes" {
		t.Errorf("category = %q", top[0].Category)
	}

	best, ok, err := store.BestMoves("holes-01")
	if err != nil || !ok || best != 7 {
		t.Errorf("BestMoves() = %d, %v, %v", best, ok, err)
	}
}

func TestBestMovesUnsolved(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.BestMoves("nobody-solved-this")
	if err != nil {
		t.Fatalf("BestMoves() failed: %v", err)
	}
	if ok {
		t.Error("unsolved level should report ok=false")
	}
}

func TestCompletedLevels(t *testing.T) {
	store := openTestStore(t)

	store.RecordCompletion(Completion{LevelID: "a", Moves: 10})
	store.RecordCompletion(Completion{LevelID: "a", Moves: 8})
	store.RecordCompletion(Completion{LevelID: "b", Moves: 4})
	store.RecordCompletion(Completion{LevelID: "c", Player: "other", Moves: 1})

	done, err := store.CompletedLevels("")
	if err != nil {
		t.Fatalf("CompletedLevels() failed: %v", err)
	}
	if len(done) != 2 || done["a"] != 8 || done["b"] != 4 {
		t.Errorf("CompletedLevels() = %v", done)
	}

	ok, err := store.IsCompleted(LocalPlayer, "c")
	if err != nil || ok {
		t.Errorf("IsCompleted(local, c) = %v, %v", ok, err)
	}
}

func TestRecordCompletionRequiresLevel(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.RecordCompletion(Completion{Moves: 1}); err == nil {
		t.Error("expected error for empty level id")
	}
}

func TestClearAndStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordCompletion(Completion{LevelID: "a", Category: "intro", Moves: 10})
	store.RecordCompletion(Completion{LevelID: "a", Category: "intro", Moves: 6})
	store.RecordCompletion(Completion{LevelID: "b", Category: "intro", Moves: 4})

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	a := stats["a"]
	if a == nil || a.Solves != 2 || a.BestMoves != 6 || a.AvgMoves != 8 || a.Category != "intro" {
		t.Errorf("stats[a] = %+v", a)
	}

	if err := store.ClearCompletions("a"); err != nil {
		t.Fatalf("ClearCompletions() failed: %v", err)
	}
	stats, _ = store.AllLevelStats()
	if _, ok := stats["a"]; ok {
		t.Error("cleared level still has stats")
	}
	if _, ok := stats["b"]; !ok {
		t.Error("other level lost its stats")
	}
}
