package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndQueryScores(t *testing.T) {
	s := openTestStore(t)

	for _, score := range []int{100, 500, 300} {
		if _, err := s.SaveScore("vanguard", score); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	top, err := s.TopScores("vanguard", 2)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(top) != 2 || top[0].Score != 500 || top[1].Score != 300 {
		t.Errorf("unexpected top scores: %+v", top)
	}

	high, err := s.HighScore("vanguard")
	if err != nil {
		t.Fatalf("HighScore: %v", err)
	}
	if high != 500 {
		t.Errorf("high score = %d, want 500", high)
	}

	high, err = s.HighScore("other")
	if err != nil {
		t.Fatalf("HighScore empty: %v", err)
	}
	if high != 0 {
		t.Errorf("empty game high score = %d, want 0", high)
	}
}

func TestClearScores(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.SaveScore("vanguard", 42); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearScores("vanguard"); err != nil {
		t.Fatalf("ClearScores: %v", err)
	}
	high, err := s.HighScore("vanguard")
	if err != nil {
		t.Fatal(err)
	}
	if high != 0 {
		t.Errorf("high score after clear = %d, want 0", high)
	}
}

func TestSaveAndQueryRuns(t *testing.T) {
	s := openTestStore(t)

	runs := []RunRecord{
		{GameID: "vanguard", Difficulty: "normal", Score: 1200, LevelReached: 2, Rescues: 1, DurationSecs: 90},
		{GameID: "vanguard", Difficulty: "normal", Score: 4800, LevelReached: 3, Rescues: 4, Victory: true, DurationSecs: 300},
		{GameID: "vanguard", Difficulty: "hard", Score: 600, LevelReached: 1, DurationSecs: 45},
	}
	for _, r := range runs {
		if _, err := s.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	recent, err := s.RecentRuns("vanguard", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("recent runs = %d, want 3", len(recent))
	}

	best, err := s.BestRun("vanguard", "normal")
	if err != nil {
		t.Fatalf("BestRun: %v", err)
	}
	if best == nil || best.Score != 4800 || !best.Victory || best.Rescues != 4 {
		t.Errorf("unexpected best run: %+v", best)
	}

	none, err := s.BestRun("vanguard", "easy")
	if err != nil {
		t.Fatalf("BestRun none: %v", err)
	}
	if none != nil {
		t.Errorf("best run on unplayed difficulty = %+v, want nil", none)
	}
}
