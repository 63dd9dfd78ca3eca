package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-runner/internal/runner"
)

var _ runner.HighScoreStore = (*GameScores)(nil)

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

func TestHighScoreKeepsBest(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(DefaultGameID)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	tests := []struct {
		save int
		want int
	}{
		{100, 100},
		{50, 100},
		{100, 100},
		{250, 250},
	}
	for _, tc := range tests {
		if err := store.SaveHighScore(DefaultGameID, tc.save); err != nil {
			t.Fatalf("SaveHighScore(%d) failed: %v", tc.save, err)
		}
		got, err := store.HighScore(DefaultGameID)
		if err != nil {
			t.Fatalf("HighScore() failed: %v", err)
		}
		if got != tc.want {
			t.Errorf("after saving %d: high = %d, expected %d", tc.save, got, tc.want)
		}
	}

	if other, _ := store.HighScore("other"); other != 0 {
		t.Errorf("Expected games to be isolated, got %d", other)
	}

	if err := store.ClearHighScore(DefaultGameID); err != nil {
		t.Fatalf("ClearHighScore() failed: %v", err)
	}
	if got, _ := store.HighScore(DefaultGameID); got != 0 {
		t.Errorf("Expected 0 after clear, got %d", got)
	}
}

func TestHighScorePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Game(DefaultGameID).SaveHighScore(1234); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	got, err := store.Game(DefaultGameID).HighScore()
	if err != nil || got != 1234 {
		t.Errorf("HighScore() = %d, %v; expected 1234", got, err)
	}
}

func TestSaveAndQueryRuns(t *testing.T) {
	store := openTestStore(t)

	scores := []int{100, 50, 200}
	var ids []string
	for i, score := range scores {
		id, err := store.SaveRun(RunRecord{Seed: int64(i), Score: score, Distance: float64(score), Coins: i})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("run ID %q is not a UUID: %v", id, err)
		}
		ids = append(ids, id)
	}
	if _, err := store.SaveRun(RunRecord{GameID: "other", Score: 999}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	top, err := store.TopRuns(DefaultGameID, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	for i, want := range []int{200, 100, 50} {
		if top[i].Score != want {
			t.Errorf("top[%d].Score = %d, expected %d", i, top[i].Score, want)
		}
	}

	recent, err := store.RecentRuns(DefaultGameID, 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].RunID != ids[2] || recent[1].RunID != ids[1] {
		t.Errorf("RecentRuns() returned unexpected order: %+v", recent)
	}

	run, err := store.RunByID(ids[0])
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.Score != 100 || run.Distance != 100 || run.Seed != 0 {
		t.Errorf("RunByID() = %+v", run)
	}
	if run != nil && run.CreatedAt.IsZero() {
		t.Error("Expected created_at to be parsed")
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %+v, %v; expected nil, nil", missing, err)
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{RunID: id, Score: 2}); err == nil {
		t.Error("Expected duplicate run ID to fail")
	}
}

func TestRunStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats(DefaultGameID)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	for _, r := range []RunRecord{
		{Score: 100, Distance: 90.5, Coins: 1},
		{Score: 300, Distance: 270, Coins: 3},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.Stats(DefaultGameID)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.TotalDistance != 360.5 || stats.TotalCoins != 4 {
		t.Errorf("totals = %v distance, %d coins", stats.TotalDistance, stats.TotalCoins)
	}

	if err := store.ClearRuns(DefaultGameID); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns(DefaultGameID, 10); len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
}
